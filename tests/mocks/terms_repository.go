package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cadastro-social/internal/domain"
)

type TermsRepository struct {
	mock.Mock
}

func (m *TermsRepository) Create(ctx context.Context, agreement *domain.TermsAgreement) error {
	args := m.Called(ctx, agreement)
	return args.Error(0)
}

func (m *TermsRepository) GetByRegistration(ctx context.Context, registrationID uuid.UUID) (*domain.TermsAgreement, error) {
	args := m.Called(ctx, registrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TermsAgreement), args.Error(1)
}
