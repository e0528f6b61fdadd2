package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cadastro-social/internal/domain"
)

type HouseholdRepository struct {
	mock.Mock
}

func (m *HouseholdRepository) Create(ctx context.Context, member *domain.HouseholdMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *HouseholdRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.HouseholdMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HouseholdMember), args.Error(1)
}

func (m *HouseholdRepository) ListByRegistration(ctx context.Context, registrationID uuid.UUID) ([]domain.HouseholdMember, error) {
	args := m.Called(ctx, registrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HouseholdMember), args.Error(1)
}

func (m *HouseholdRepository) Update(ctx context.Context, member *domain.HouseholdMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *HouseholdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
