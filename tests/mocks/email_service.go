package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	args := m.Called(ctx, toEmail, fullName)
	return args.Error(0)
}

func (m *EmailService) SendStatusUpdateEmail(ctx context.Context, toEmail, fullName, statusLabel string, note *string) error {
	args := m.Called(ctx, toEmail, fullName, statusLabel, note)
	return args.Error(0)
}

func (m *EmailService) SendNewMessageEmail(ctx context.Context, toEmail, fullName string) error {
	args := m.Called(ctx, toEmail, fullName)
	return args.Error(0)
}

func (m *EmailService) SendRoleRequestReviewedEmail(ctx context.Context, toEmail, fullName, roleLabel string, approved bool) error {
	args := m.Called(ctx, toEmail, fullName, roleLabel, approved)
	return args.Error(0)
}
