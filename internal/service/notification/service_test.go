package notification_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/service/notification"
	"cadastro-social/tests/mocks"
)

func newService() (notification.Service, *mocks.NotificationRepository, *mocks.ProfileRepository) {
	notifRepo := new(mocks.NotificationRepository)
	profileRepo := new(mocks.ProfileRepository)
	// nil email service: notifications must not depend on a mail provider.
	return notification.NewService(notifRepo, profileRepo, nil), notifRepo, profileRepo
}

func TestNotifyNewMessage(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	workerID := uuid.New()

	t.Run("staff message notifies the citizen", func(t *testing.T) {
		svc, notifRepo, _ := newService()
		reg := &domain.Registration{ID: uuid.New(), UserID: owner, AssignedSocialWorkerID: &workerID}
		msg := &domain.Message{ID: uuid.New(), UserID: workerID, IsInternal: true}

		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == owner && n.Type == domain.NotifNewMessage
		})).Return(nil).Once()

		assert.NoError(t, svc.NotifyNewMessage(ctx, reg, msg))
		notifRepo.AssertExpectations(t)
	})

	t.Run("citizen message notifies the assigned worker", func(t *testing.T) {
		svc, notifRepo, _ := newService()
		reg := &domain.Registration{ID: uuid.New(), UserID: owner, AssignedSocialWorkerID: &workerID}
		msg := &domain.Message{ID: uuid.New(), UserID: owner, IsInternal: false}

		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == workerID
		})).Return(nil).Once()

		assert.NoError(t, svc.NotifyNewMessage(ctx, reg, msg))
		notifRepo.AssertExpectations(t)
	})

	t.Run("no assigned worker means no recipient", func(t *testing.T) {
		svc, notifRepo, _ := newService()
		reg := &domain.Registration{ID: uuid.New(), UserID: owner}
		msg := &domain.Message{ID: uuid.New(), UserID: owner, IsInternal: false}

		assert.NoError(t, svc.NotifyNewMessage(ctx, reg, msg))
		notifRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("author never notifies themselves", func(t *testing.T) {
		svc, notifRepo, _ := newService()
		// A staff author who also owns the case.
		reg := &domain.Registration{ID: uuid.New(), UserID: owner, AssignedSocialWorkerID: &workerID}
		msg := &domain.Message{ID: uuid.New(), UserID: owner, IsInternal: true}

		assert.NoError(t, svc.NotifyNewMessage(ctx, reg, msg))
		notifRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})
}

func TestNotifyStatusUpdated(t *testing.T) {
	ctx := context.Background()

	t.Run("notification targets the case owner", func(t *testing.T) {
		svc, notifRepo, _ := newService()
		owner := uuid.New()
		reg := &domain.Registration{ID: uuid.New(), UserID: owner, Name: "Maria Silva"}

		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == owner && n.Type == domain.NotifStatusUpdated
		})).Return(nil).Once()

		assert.NoError(t, svc.NotifyStatusUpdated(ctx, reg, domain.StatusApproved, nil))
		notifRepo.AssertExpectations(t)
	})
}
