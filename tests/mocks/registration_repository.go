package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cadastro-social/internal/domain"
)

type RegistrationRepository struct {
	mock.Mock
}

func (m *RegistrationRepository) CreateWithTracking(ctx context.Context, reg *domain.Registration, entry *domain.TrackingEntry) error {
	args := m.Called(ctx, reg, entry)
	return args.Error(0)
}

func (m *RegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *RegistrationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Registration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *RegistrationRepository) ListAll(ctx context.Context) ([]domain.Registration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *RegistrationRepository) ListForWorker(ctx context.Context, workerID uuid.UUID) ([]domain.Registration, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *RegistrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *RegistrationRepository) UpdateStatusWithTracking(ctx context.Context, id uuid.UUID, status domain.Status, claimWorkerID *uuid.UUID, entry *domain.TrackingEntry) error {
	args := m.Called(ctx, id, status, claimWorkerID, entry)
	return args.Error(0)
}

func (m *RegistrationRepository) AssignWorker(ctx context.Context, id uuid.UUID, workerID uuid.UUID) error {
	args := m.Called(ctx, id, workerID)
	return args.Error(0)
}

func (m *RegistrationRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RegistrationRepository) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Status]int64), args.Error(1)
}
