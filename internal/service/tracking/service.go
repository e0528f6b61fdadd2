package tracking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/repository"
)

// Service reads and appends the per-case ledger. Entries are immutable;
// the status field is an open string so historical and document-level
// values pass through untouched.
type Service interface {
	Append(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID, input domain.AppendTrackingInput) (*domain.TrackingEntry, error)
	List(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID, order domain.TrackingOrder) ([]domain.TrackingEntry, error)
}

type service struct {
	trackingRepo repository.TrackingRepository
	regRepo      repository.RegistrationRepository
	profileRepo  repository.ProfileRepository
}

func NewService(trackingRepo repository.TrackingRepository, regRepo repository.RegistrationRepository, profileRepo repository.ProfileRepository) Service {
	return &service{
		trackingRepo: trackingRepo,
		regRepo:      regRepo,
		profileRepo:  profileRepo,
	}
}

func (s *service) Append(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID, input domain.AppendTrackingInput) (*domain.TrackingEntry, error) {
	if !actor.Role.IsStaff() {
		return nil, fmt.Errorf("only staff may append tracking entries: %w", domain.ErrForbidden)
	}
	if input.Status == "" {
		return nil, fmt.Errorf("status is required: %w", domain.ErrValidation)
	}

	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("registration %s: %w", registrationID, domain.ErrNotFound)
	}

	entry := &domain.TrackingEntry{
		ID:             uuid.New(),
		RegistrationID: reg.ID,
		UserID:         reg.UserID,
		UpdatedBy:      actor.ID,
		Status:         input.Status,
		Message:        input.Message,
	}

	if err := s.trackingRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) List(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID, order domain.TrackingOrder) ([]domain.TrackingEntry, error) {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("registration %s: %w", registrationID, domain.ErrNotFound)
	}
	if reg.UserID != actor.ID && !actor.Role.IsStaff() {
		return nil, fmt.Errorf("not your registration: %w", domain.ErrForbidden)
	}

	if order != domain.TrackingDescending {
		order = domain.TrackingAscending
	}

	entries, err := s.trackingRepo.ListByRegistration(ctx, registrationID, order)
	if err != nil {
		return nil, err
	}
	return s.resolveAttribution(ctx, entries)
}

// resolveAttribution fills UpdatedByName with one batched profile lookup
// over the distinct actor ids of the result set.
func (s *service) resolveAttribution(ctx context.Context, entries []domain.TrackingEntry) ([]domain.TrackingEntry, error) {
	if len(entries) == 0 {
		return entries, nil
	}

	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		if !seen[entry.UpdatedBy] {
			seen[entry.UpdatedBy] = true
			ids = append(ids, entry.UpdatedBy)
		}
	}

	profiles, err := s.profileRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(profiles))
	for i := range profiles {
		names[profiles[i].ID] = profiles[i].DisplayName()
	}

	for i := range entries {
		if name, ok := names[entries[i].UpdatedBy]; ok {
			entries[i].UpdatedByName = name
		} else {
			entries[i].UpdatedByName = entries[i].UpdatedBy.String()
		}
	}
	return entries, nil
}
