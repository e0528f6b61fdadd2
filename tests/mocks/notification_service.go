package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cadastro-social/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) NotifyStatusUpdated(ctx context.Context, reg *domain.Registration, status domain.Status, note *string) error {
	args := m.Called(ctx, reg, status, note)
	return args.Error(0)
}

func (m *NotificationService) NotifyNewMessage(ctx context.Context, reg *domain.Registration, msg *domain.Message) error {
	args := m.Called(ctx, reg, msg)
	return args.Error(0)
}

func (m *NotificationService) NotifyDocumentReviewed(ctx context.Context, doc *domain.Document, status string) error {
	args := m.Called(ctx, doc, status)
	return args.Error(0)
}

func (m *NotificationService) NotifyCaseAssigned(ctx context.Context, reg *domain.Registration, workerID uuid.UUID) error {
	args := m.Called(ctx, reg, workerID)
	return args.Error(0)
}

func (m *NotificationService) NotifyRoleRequestReviewed(ctx context.Context, req *domain.RoleRequest, approved bool) error {
	args := m.Called(ctx, req, approved)
	return args.Error(0)
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
