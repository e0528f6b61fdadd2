package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cadastro-social/internal/domain"
)

type RoleRequestRepository struct {
	mock.Mock
}

func (m *RoleRequestRepository) Create(ctx context.Context, req *domain.RoleRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *RoleRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RoleRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoleRequest), args.Error(1)
}

func (m *RoleRequestRepository) List(ctx context.Context, status *domain.RoleRequestStatus, params domain.PaginationParams) ([]domain.RoleRequest, int64, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.RoleRequest), args.Get(1).(int64), args.Error(2)
}

func (m *RoleRequestRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.RoleRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoleRequest), args.Error(1)
}

func (m *RoleRequestRepository) ReviewAndElevate(ctx context.Context, id uuid.UUID, status domain.RoleRequestStatus, reviewerID uuid.UUID, note *string, elevate *domain.Role) error {
	args := m.Called(ctx, id, status, reviewerID, note, elevate)
	return args.Error(0)
}
