package profile_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/service/profile"
	"cadastro-social/tests/mocks"
)

func strPtr(s string) *string { return &s }

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("email change checked for conflicts", func(t *testing.T) {
		profileRepo := new(mocks.ProfileRepository)
		svc := profile.NewService(profileRepo)
		actor := &domain.Profile{ID: uuid.New(), Email: "old@example.com", FullName: "Maria Silva", Role: domain.RoleCitizen}

		profileRepo.On("GetByID", ctx, actor.ID).Return(actor, nil).Once()
		profileRepo.On("ExistsByEmail", ctx, "new@example.com").Return(true, nil).Once()

		_, err := svc.Update(ctx, actor, domain.UpdateProfileInput{Email: strPtr("new@example.com")})

		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("same email skips the lookup", func(t *testing.T) {
		profileRepo := new(mocks.ProfileRepository)
		svc := profile.NewService(profileRepo)
		actor := &domain.Profile{ID: uuid.New(), Email: "maria@example.com", FullName: "Maria Silva", Role: domain.RoleCitizen}

		profileRepo.On("GetByID", ctx, actor.ID).Return(actor, nil).Once()
		profileRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

		updated, err := svc.Update(ctx, actor, domain.UpdateProfileInput{
			FullName: strPtr("Maria S. Santos"),
			Email:    strPtr("maria@example.com"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Maria S. Santos", updated.FullName)
		profileRepo.AssertNotCalled(t, "ExistsByEmail", ctx, "maria@example.com")
	})

	t.Run("short name rejected", func(t *testing.T) {
		profileRepo := new(mocks.ProfileRepository)
		svc := profile.NewService(profileRepo)
		actor := &domain.Profile{ID: uuid.New(), Email: "maria@example.com", Role: domain.RoleCitizen}

		profileRepo.On("GetByID", ctx, actor.ID).Return(actor, nil).Once()

		_, err := svc.Update(ctx, actor, domain.UpdateProfileInput{FullName: strPtr("M")})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestProfileService_AdminUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("social worker cannot edit accounts", func(t *testing.T) {
		svc := profile.NewService(new(mocks.ProfileRepository))

		_, err := svc.AdminUpdate(ctx, &domain.Profile{ID: uuid.New(), Role: domain.RoleSocialWorker}, uuid.New(), domain.AdminUpdateProfileInput{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin can deactivate an account", func(t *testing.T) {
		profileRepo := new(mocks.ProfileRepository)
		svc := profile.NewService(profileRepo)
		admin := &domain.Profile{ID: uuid.New(), Role: domain.RoleAdmin}
		target := &domain.Profile{ID: uuid.New(), Email: "joao@example.com", FullName: "João Pereira", Role: domain.RoleCitizen, IsActive: true}
		inactive := false

		profileRepo.On("GetByID", ctx, target.ID).Return(target, nil).Once()
		profileRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.ID == target.ID && !p.IsActive
		})).Return(nil).Once()

		updated, err := svc.AdminUpdate(ctx, admin, target.ID, domain.AdminUpdateProfileInput{IsActive: &inactive})

		assert.NoError(t, err)
		assert.False(t, updated.IsActive)
		profileRepo.AssertExpectations(t)
	})
}

func TestProfileService_Lists(t *testing.T) {
	ctx := context.Background()

	t.Run("citizen cannot list workers", func(t *testing.T) {
		svc := profile.NewService(new(mocks.ProfileRepository))

		_, err := svc.ListSocialWorkers(ctx, &domain.Profile{ID: uuid.New(), Role: domain.RoleCitizen})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("worker listing includes admins", func(t *testing.T) {
		profileRepo := new(mocks.ProfileRepository)
		svc := profile.NewService(profileRepo)

		profileRepo.On("ListByRole", ctx, domain.RoleSocialWorker).Return([]domain.Profile{{ID: uuid.New()}}, nil).Once()
		profileRepo.On("ListByRole", ctx, domain.RoleAdmin).Return([]domain.Profile{{ID: uuid.New()}}, nil).Once()

		workers, err := svc.ListSocialWorkers(ctx, &domain.Profile{ID: uuid.New(), Role: domain.RoleSocialWorker})

		assert.NoError(t, err)
		assert.Len(t, workers, 2)
	})

	t.Run("full listing is admin only", func(t *testing.T) {
		svc := profile.NewService(new(mocks.ProfileRepository))

		_, err := svc.ListAll(ctx, &domain.Profile{ID: uuid.New(), Role: domain.RoleSocialWorker})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
