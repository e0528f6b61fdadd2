package rolerequest_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/service/rolerequest"
	"cadastro-social/tests/mocks"
)

func newService() (rolerequest.Service, *mocks.RoleRequestRepository, *mocks.ProfileRepository) {
	reqRepo := new(mocks.RoleRequestRepository)
	profileRepo := new(mocks.ProfileRepository)
	return rolerequest.NewService(reqRepo, profileRepo), reqRepo, profileRepo
}

func TestRoleRequestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("citizen may request elevation", func(t *testing.T) {
		svc, reqRepo, _ := newService()
		actor := &domain.Profile{ID: uuid.New(), Role: domain.RoleCitizen}

		reqRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.RoleRequest) bool {
			return r.UserID == actor.ID && r.RequestedRole == domain.RoleSocialWorker && r.Status == domain.RoleRequestPending
		})).Return(nil).Once()

		req, err := svc.Create(ctx, actor, domain.CreateRoleRequestInput{RequestedRole: domain.RoleSocialWorker})

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleRequestPending, req.Status)
		reqRepo.AssertExpectations(t)
	})

	t.Run("citizen role is not grantable", func(t *testing.T) {
		svc, _, _ := newService()
		actor := &domain.Profile{ID: uuid.New(), Role: domain.RoleCitizen}

		_, err := svc.Create(ctx, actor, domain.CreateRoleRequestInput{RequestedRole: domain.RoleCitizen})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		svc, _, _ := newService()
		actor := &domain.Profile{ID: uuid.New(), Role: domain.RoleCitizen}

		_, err := svc.Create(ctx, actor, domain.CreateRoleRequestInput{RequestedRole: "root"})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRoleRequestService_Review(t *testing.T) {
	ctx := context.Background()
	reqID := uuid.New()

	superAdmin := &domain.Profile{ID: uuid.New(), Role: domain.RoleAdmin, IsActive: true}
	otherAdmin := &domain.Profile{ID: uuid.New(), Role: domain.RoleAdmin, IsActive: true}

	t.Run("social worker forbidden", func(t *testing.T) {
		svc, _, _ := newService()
		actor := &domain.Profile{ID: uuid.New(), Role: domain.RoleSocialWorker}

		err := svc.Review(ctx, actor, reqID, domain.ReviewRoleRequestInput{Approve: true})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin who is not the first admin forbidden", func(t *testing.T) {
		svc, _, profileRepo := newService()

		profileRepo.On("FirstAdmin", ctx).Return(superAdmin, nil).Once()

		err := svc.Review(ctx, otherAdmin, reqID, domain.ReviewRoleRequestInput{Approve: true})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("approval elevates the requester", func(t *testing.T) {
		svc, reqRepo, profileRepo := newService()
		requester := uuid.New()

		profileRepo.On("FirstAdmin", ctx).Return(superAdmin, nil).Once()
		reqRepo.On("GetByID", ctx, reqID).Return(&domain.RoleRequest{
			ID: reqID, UserID: requester, RequestedRole: domain.RoleSocialWorker, Status: domain.RoleRequestPending,
		}, nil).Once()
		reqRepo.On("ReviewAndElevate", ctx, reqID, domain.RoleRequestApproved, superAdmin.ID, (*string)(nil),
			mock.MatchedBy(func(role *domain.Role) bool {
				return role != nil && *role == domain.RoleSocialWorker
			}),
		).Return(nil).Once()

		err := svc.Review(ctx, superAdmin, reqID, domain.ReviewRoleRequestInput{Approve: true})

		assert.NoError(t, err)
		reqRepo.AssertExpectations(t)
	})

	t.Run("rejection leaves the role untouched", func(t *testing.T) {
		svc, reqRepo, profileRepo := newService()

		profileRepo.On("FirstAdmin", ctx).Return(superAdmin, nil).Once()
		reqRepo.On("GetByID", ctx, reqID).Return(&domain.RoleRequest{
			ID: reqID, UserID: uuid.New(), RequestedRole: domain.RoleAdmin, Status: domain.RoleRequestPending,
		}, nil).Once()
		reqRepo.On("ReviewAndElevate", ctx, reqID, domain.RoleRequestRejected, superAdmin.ID, (*string)(nil),
			(*domain.Role)(nil)).Return(nil).Once()

		err := svc.Review(ctx, superAdmin, reqID, domain.ReviewRoleRequestInput{Approve: false})

		assert.NoError(t, err)
		reqRepo.AssertExpectations(t)
	})

	t.Run("second review surfaces conflict from the guard", func(t *testing.T) {
		svc, reqRepo, profileRepo := newService()

		profileRepo.On("FirstAdmin", ctx).Return(superAdmin, nil).Once()
		reqRepo.On("GetByID", ctx, reqID).Return(&domain.RoleRequest{
			ID: reqID, UserID: uuid.New(), RequestedRole: domain.RoleSocialWorker, Status: domain.RoleRequestApproved,
		}, nil).Once()
		reqRepo.On("ReviewAndElevate", ctx, reqID, domain.RoleRequestApproved, superAdmin.ID, (*string)(nil),
			mock.Anything).Return(domain.ErrConflict).Once()

		err := svc.Review(ctx, superAdmin, reqID, domain.ReviewRoleRequestInput{Approve: true})

		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestRoleRequestService_IsSuperAdmin(t *testing.T) {
	ctx := context.Background()
	superAdmin := &domain.Profile{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("non-admin short-circuits", func(t *testing.T) {
		svc, _, profileRepo := newService()

		ok, err := svc.IsSuperAdmin(ctx, &domain.Profile{ID: uuid.New(), Role: domain.RoleSocialWorker})

		assert.NoError(t, err)
		assert.False(t, ok)
		profileRepo.AssertNotCalled(t, "FirstAdmin", ctx)
	})

	t.Run("first admin matches", func(t *testing.T) {
		svc, _, profileRepo := newService()

		profileRepo.On("FirstAdmin", ctx).Return(superAdmin, nil).Once()

		ok, err := svc.IsSuperAdmin(ctx, superAdmin)

		assert.NoError(t, err)
		assert.True(t, ok)
	})
}
