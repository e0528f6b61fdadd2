package household_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/service/household"
	"cadastro-social/tests/mocks"
)

func newService() (household.Service, *mocks.HouseholdRepository, *mocks.RegistrationRepository) {
	householdRepo := new(mocks.HouseholdRepository)
	regRepo := new(mocks.RegistrationRepository)
	return household.NewService(householdRepo, regRepo), householdRepo, regRepo
}

func TestHouseholdService_Add(t *testing.T) {
	ctx := context.Background()
	regID := uuid.New()
	owner := &domain.Profile{ID: uuid.New(), Role: domain.RoleCitizen}
	reg := &domain.Registration{ID: regID, UserID: owner.ID}

	t.Run("first member becomes head of household", func(t *testing.T) {
		svc, householdRepo, regRepo := newService()

		regRepo.On("GetByID", ctx, regID).Return(reg, nil).Once()
		householdRepo.On("ListByRegistration", ctx, regID).Return([]domain.HouseholdMember{}, nil).Once()
		householdRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.HouseholdMember) bool {
			return m.Relationship == domain.HeadRelationship && m.MemberName == "Maria Silva"
		})).Return(nil).Once()

		member, err := svc.Add(ctx, owner, regID, domain.CreateHouseholdMemberInput{
			MemberName:   "Maria Silva",
			Relationship: "Filha",
		})

		assert.NoError(t, err)
		assert.True(t, member.IsHead())
		householdRepo.AssertExpectations(t)
	})

	t.Run("later members keep their relationship", func(t *testing.T) {
		svc, householdRepo, regRepo := newService()

		regRepo.On("GetByID", ctx, regID).Return(reg, nil).Once()
		householdRepo.On("ListByRegistration", ctx, regID).Return([]domain.HouseholdMember{
			{ID: uuid.New(), Relationship: domain.HeadRelationship},
		}, nil).Once()
		householdRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.HouseholdMember) bool {
			return m.Relationship == "Filha"
		})).Return(nil).Once()

		member, err := svc.Add(ctx, owner, regID, domain.CreateHouseholdMemberInput{
			MemberName:   "Joana Silva",
			Relationship: "Filha",
		})

		assert.NoError(t, err)
		assert.False(t, member.IsHead())
	})

	t.Run("requires name and relationship", func(t *testing.T) {
		svc, _, _ := newService()

		_, err := svc.Add(ctx, owner, regID, domain.CreateHouseholdMemberInput{MemberName: "Maria"})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		svc, _, regRepo := newService()

		regRepo.On("GetByID", ctx, regID).Return(reg, nil).Once()

		stranger := &domain.Profile{ID: uuid.New(), Role: domain.RoleCitizen}
		_, err := svc.Add(ctx, stranger, regID, domain.CreateHouseholdMemberInput{MemberName: "X", Relationship: "Primo"})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestHouseholdService_Update(t *testing.T) {
	ctx := context.Background()
	regID := uuid.New()
	memberID := uuid.New()
	owner := &domain.Profile{ID: uuid.New(), Role: domain.RoleCitizen}

	t.Run("partial update touches only supplied fields", func(t *testing.T) {
		svc, householdRepo, regRepo := newService()
		age := 34

		householdRepo.On("GetByID", ctx, memberID).Return(&domain.HouseholdMember{
			ID: memberID, RegistrationID: regID, MemberName: "Joana Silva", Relationship: "Filha",
		}, nil).Once()
		regRepo.On("GetByID", ctx, regID).Return(&domain.Registration{ID: regID, UserID: owner.ID}, nil).Once()
		householdRepo.On("Update", ctx, mock.MatchedBy(func(m *domain.HouseholdMember) bool {
			return m.MemberName == "Joana Silva" && m.Age != nil && *m.Age == 34
		})).Return(nil).Once()

		member, err := svc.Update(ctx, owner, memberID, domain.UpdateHouseholdMemberInput{Age: &age})

		assert.NoError(t, err)
		assert.Equal(t, "Joana Silva", member.MemberName)
		householdRepo.AssertExpectations(t)
	})

	t.Run("missing member not found", func(t *testing.T) {
		svc, householdRepo, _ := newService()

		householdRepo.On("GetByID", ctx, memberID).Return(nil, nil).Once()

		_, err := svc.Update(ctx, owner, memberID, domain.UpdateHouseholdMemberInput{})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestHouseholdService_Remove(t *testing.T) {
	ctx := context.Background()
	regID := uuid.New()
	memberID := uuid.New()

	t.Run("staff may manage any roster", func(t *testing.T) {
		svc, householdRepo, regRepo := newService()
		staff := &domain.Profile{ID: uuid.New(), Role: domain.RoleSocialWorker}

		householdRepo.On("GetByID", ctx, memberID).Return(&domain.HouseholdMember{ID: memberID, RegistrationID: regID}, nil).Once()
		regRepo.On("GetByID", ctx, regID).Return(&domain.Registration{ID: regID, UserID: uuid.New()}, nil).Once()
		householdRepo.On("Delete", ctx, memberID).Return(nil).Once()

		assert.NoError(t, svc.Remove(ctx, staff, memberID))
		householdRepo.AssertExpectations(t)
	})
}
