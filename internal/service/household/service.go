package household

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/repository"
)

// Service manages the family composition roster attached to a case.
type Service interface {
	Add(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID, input domain.CreateHouseholdMemberInput) (*domain.HouseholdMember, error)
	List(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID) ([]domain.HouseholdMember, error)
	Update(ctx context.Context, actor *domain.Profile, id uuid.UUID, input domain.UpdateHouseholdMemberInput) (*domain.HouseholdMember, error)
	Remove(ctx context.Context, actor *domain.Profile, id uuid.UUID) error
}

type service struct {
	householdRepo repository.HouseholdRepository
	regRepo       repository.RegistrationRepository
}

func NewService(householdRepo repository.HouseholdRepository, regRepo repository.RegistrationRepository) Service {
	return &service{
		householdRepo: householdRepo,
		regRepo:       regRepo,
	}
}

func (s *service) guardRegistration(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID) (*domain.Registration, error) {
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
	return reg, nil
}

// Add inserts a member. The first member of an empty roster is promoted
// to head of household regardless of the relationship supplied.
func (s *service) Add(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID, input domain.CreateHouseholdMemberInput) (*domain.HouseholdMember, error) {
	if input.MemberName == "" || input.Relationship == "" {
		return nil, fmt.Errorf("member name and relationship are required: %w", domain.ErrValidation)
	}

	reg, err := s.guardRegistration(ctx, actor, registrationID)
	if err != nil {
		return nil, err
	}

	existing, err := s.householdRepo.ListByRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	relationship := input.Relationship
	if len(existing) == 0 {
		relationship = domain.HeadRelationship
	}

	member := &domain.HouseholdMember{
		ID:                    uuid.New(),
		RegistrationID:        reg.ID,
		UserID:                reg.UserID,
		MemberName:            input.MemberName,
		Relationship:          relationship,
		Age:                   input.Age,
		CPF:                   input.CPF,
		Income:                input.Income,
		Profession:            input.Profession,
		Education:             input.Education,
		HasDisability:         input.HasDisability,
		DisabilityDescription: input.DisabilityDescription,
	}

	if err := s.householdRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *service) List(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID) ([]domain.HouseholdMember, error) {
	if _, err := s.guardRegistration(ctx, actor, registrationID); err != nil {
		return nil, err
	}
	return s.householdRepo.ListByRegistration(ctx, registrationID)
}

func (s *service) Update(ctx context.Context, actor *domain.Profile, id uuid.UUID, input domain.UpdateHouseholdMemberInput) (*domain.HouseholdMember, error) {
	member, err := s.householdRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("household member %s: %w", id, domain.ErrNotFound)
	}
	if _, err := s.guardRegistration(ctx, actor, member.RegistrationID); err != nil {
		return nil, err
	}

	if input.MemberName != nil {
		member.MemberName = *input.MemberName
	}
	if input.Relationship != nil {
		member.Relationship = *input.Relationship
	}
	if input.Age != nil {
		member.Age = input.Age
	}
	if input.CPF != nil {
		member.CPF = input.CPF
	}
	if input.Income != nil {
		member.Income = input.Income
	}
	if input.Profession != nil {
		member.Profession = input.Profession
	}
	if input.Education != nil {
		member.Education = input.Education
	}
	if input.HasDisability != nil {
		member.HasDisability = input.HasDisability
	}
	if input.DisabilityDescription != nil {
		member.DisabilityDescription = input.DisabilityDescription
	}

	if err := s.householdRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *service) Remove(ctx context.Context, actor *domain.Profile, id uuid.UUID) error {
	member, err := s.householdRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("household member %s: %w", id, domain.ErrNotFound)
	}
	if _, err := s.guardRegistration(ctx, actor, member.RegistrationID); err != nil {
		return err
	}
	return s.householdRepo.Delete(ctx, id)
}
