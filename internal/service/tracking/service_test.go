package tracking_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/service/tracking"
	"cadastro-social/tests/mocks"
)

func newService() (tracking.Service, *mocks.TrackingRepository, *mocks.RegistrationRepository, *mocks.ProfileRepository) {
	trackingRepo := new(mocks.TrackingRepository)
	regRepo := new(mocks.RegistrationRepository)
	profileRepo := new(mocks.ProfileRepository)
	return tracking.NewService(trackingRepo, regRepo, profileRepo), trackingRepo, regRepo, profileRepo
}

func TestTrackingService_Append(t *testing.T) {
	ctx := context.Background()
	regID := uuid.New()

	t.Run("citizen forbidden", func(t *testing.T) {
		svc, _, _, _ := newService()
		actor := &domain.Profile{ID: uuid.New(), Role: domain.RoleCitizen}

		_, err := svc.Append(ctx, actor, regID, domain.AppendTrackingInput{Status: "visita_agendada"})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("status required", func(t *testing.T) {
		svc, _, _, _ := newService()
		actor := &domain.Profile{ID: uuid.New(), Role: domain.RoleSocialWorker}

		_, err := svc.Append(ctx, actor, regID, domain.AppendTrackingInput{})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("free-form status accepted", func(t *testing.T) {
		svc, trackingRepo, regRepo, _ := newService()
		actor := &domain.Profile{ID: uuid.New(), Role: domain.RoleSocialWorker}
		owner := uuid.New()

		regRepo.On("GetByID", ctx, regID).Return(&domain.Registration{ID: regID, UserID: owner}, nil).Once()
		trackingRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.TrackingEntry) bool {
			return e.Status == "visita_agendada" && e.UserID == owner && e.UpdatedBy == actor.ID
		})).Return(nil).Once()

		entry, err := svc.Append(ctx, actor, regID, domain.AppendTrackingInput{Status: "visita_agendada"})

		assert.NoError(t, err)
		assert.Equal(t, "visita_agendada", entry.Status)
		trackingRepo.AssertExpectations(t)
	})
}

func TestTrackingService_List(t *testing.T) {
	ctx := context.Background()
	regID := uuid.New()
	owner := uuid.New()

	t.Run("unknown order falls back to ascending", func(t *testing.T) {
		svc, trackingRepo, regRepo, profileRepo := newService()

		regRepo.On("GetByID", ctx, regID).Return(&domain.Registration{ID: regID, UserID: owner}, nil).Once()
		trackingRepo.On("ListByRegistration", ctx, regID, domain.TrackingAscending).Return([]domain.TrackingEntry{}, nil).Once()
		_ = profileRepo

		actor := &domain.Profile{ID: owner, Role: domain.RoleCitizen}
		_, err := svc.List(ctx, actor, regID, domain.TrackingOrder("sideways"))

		assert.NoError(t, err)
		trackingRepo.AssertExpectations(t)
	})

	t.Run("descending passes through", func(t *testing.T) {
		svc, trackingRepo, regRepo, _ := newService()

		regRepo.On("GetByID", ctx, regID).Return(&domain.Registration{ID: regID, UserID: owner}, nil).Once()
		trackingRepo.On("ListByRegistration", ctx, regID, domain.TrackingDescending).Return([]domain.TrackingEntry{}, nil).Once()

		actor := &domain.Profile{ID: owner, Role: domain.RoleCitizen}
		_, err := svc.List(ctx, actor, regID, domain.TrackingDescending)

		assert.NoError(t, err)
		trackingRepo.AssertExpectations(t)
	})

	t.Run("attribution with display name fallback chain", func(t *testing.T) {
		svc, trackingRepo, regRepo, profileRepo := newService()
		named := uuid.New()
		emailOnly := uuid.New()
		gone := uuid.New()

		regRepo.On("GetByID", ctx, regID).Return(&domain.Registration{ID: regID, UserID: owner}, nil).Once()
		trackingRepo.On("ListByRegistration", ctx, regID, domain.TrackingAscending).Return([]domain.TrackingEntry{
			{ID: uuid.New(), UpdatedBy: named, Status: "cadastro_criado"},
			{ID: uuid.New(), UpdatedBy: emailOnly, Status: "in_review"},
			{ID: uuid.New(), UpdatedBy: gone, Status: "approved"},
		}, nil).Once()
		profileRepo.On("GetByIDs", ctx, mock.Anything).Return([]domain.Profile{
			{ID: named, FullName: "Ana Souza", Email: "ana@prefeitura.gov.br"},
			{ID: emailOnly, Email: "sem-nome@prefeitura.gov.br"},
		}, nil).Once()

		actor := &domain.Profile{ID: owner, Role: domain.RoleCitizen}
		entries, err := svc.List(ctx, actor, regID, domain.TrackingAscending)

		assert.NoError(t, err)
		assert.Equal(t, "Ana Souza", entries[0].UpdatedByName)
		assert.Equal(t, "sem-nome@prefeitura.gov.br", entries[1].UpdatedByName)
		assert.Equal(t, gone.String(), entries[2].UpdatedByName)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		svc, _, regRepo, _ := newService()

		regRepo.On("GetByID", ctx, regID).Return(&domain.Registration{ID: regID, UserID: uuid.New()}, nil).Once()

		actor := &domain.Profile{ID: uuid.New(), Role: domain.RoleCitizen}
		_, err := svc.List(ctx, actor, regID, domain.TrackingAscending)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
