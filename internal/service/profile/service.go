package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/repository"
)

// Service exposes profile reads and the self-service profile edit.
// Role changes never pass through here; they go through the role
// request queue.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, actor *domain.Profile, input domain.UpdateProfileInput) (*domain.Profile, error)
	AdminUpdate(ctx context.Context, actor *domain.Profile, id uuid.UUID, input domain.AdminUpdateProfileInput) (*domain.Profile, error)
	ListSocialWorkers(ctx context.Context, actor *domain.Profile) ([]domain.Profile, error)
	ListAll(ctx context.Context, actor *domain.Profile) ([]domain.Profile, error)
	SuperAdmin(ctx context.Context) (*domain.Profile, error)
}

type service struct {
	profileRepo repository.ProfileRepository
}

func NewService(profileRepo repository.ProfileRepository) Service {
	return &service{profileRepo: profileRepo}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	return profile, nil
}

func (s *service) Update(ctx context.Context, actor *domain.Profile, input domain.UpdateProfileInput) (*domain.Profile, error) {
	profile, err := s.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if len(name) < 2 {
			return nil, fmt.Errorf("full name is too short: %w", domain.ErrValidation)
		}
		profile.FullName = name
	}
	if input.Email != nil {
		newEmail := strings.ToLower(strings.TrimSpace(*input.Email))
		if newEmail != profile.Email {
			exists, err := s.profileRepo.ExistsByEmail(ctx, newEmail)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
			}
			profile.Email = newEmail
		}
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AdminUpdate edits another account's profile, including deactivation.
func (s *service) AdminUpdate(ctx context.Context, actor *domain.Profile, id uuid.UUID, input domain.AdminUpdateProfileInput) (*domain.Profile, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("admins only: %w", domain.ErrForbidden)
	}

	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if len(name) < 2 {
			return nil, fmt.Errorf("full name is too short: %w", domain.ErrValidation)
		}
		profile.FullName = name
	}
	if input.Email != nil {
		newEmail := strings.ToLower(strings.TrimSpace(*input.Email))
		if newEmail != profile.Email {
			exists, err := s.profileRepo.ExistsByEmail(ctx, newEmail)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
			}
			profile.Email = newEmail
		}
	}
	if input.IsActive != nil {
		profile.IsActive = *input.IsActive
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListSocialWorkers backs the assignment picker: social workers plus
// admins, since both may carry a caseload.
func (s *service) ListSocialWorkers(ctx context.Context, actor *domain.Profile) ([]domain.Profile, error) {
	if !actor.Role.IsStaff() {
		return nil, fmt.Errorf("staff only: %w", domain.ErrForbidden)
	}

	workers, err := s.profileRepo.ListByRole(ctx, domain.RoleSocialWorker)
	if err != nil {
		return nil, err
	}
	admins, err := s.profileRepo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return append(workers, admins...), nil
}

func (s *service) ListAll(ctx context.Context, actor *domain.Profile) ([]domain.Profile, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("admins only: %w", domain.ErrForbidden)
	}
	return s.profileRepo.ListAll(ctx)
}

// SuperAdmin resolves the distinguished reviewer: the earliest-created
// active admin profile.
func (s *service) SuperAdmin(ctx context.Context) (*domain.Profile, error) {
	return s.profileRepo.FirstAdmin(ctx)
}
