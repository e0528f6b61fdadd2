package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cadastro-social/internal/domain"
)

type TrackingRepository struct {
	mock.Mock
}

func (m *TrackingRepository) Create(ctx context.Context, entry *domain.TrackingEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *TrackingRepository) ListByRegistration(ctx context.Context, registrationID uuid.UUID, order domain.TrackingOrder) ([]domain.TrackingEntry, error) {
	args := m.Called(ctx, registrationID, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackingEntry), args.Error(1)
}
