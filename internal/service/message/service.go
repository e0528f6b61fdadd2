package message

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/repository"
	"cadastro-social/internal/service/notification"
)

// Service is the per-case conversation log. A message is acknowledged
// only after the durable insert; the Redis publish that lets open views
// refetch is best effort and carries no payload the client should trust.
type Service interface {
	Send(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID, input domain.CreateMessageInput) (*domain.Message, error)
	List(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID) ([]domain.Message, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	msgRepo     repository.MessageRepository
	regRepo     repository.RegistrationRepository
	profileRepo repository.ProfileRepository
	redis       *redis.Client
	notifSvc    notification.Service
}

func NewService(msgRepo repository.MessageRepository, regRepo repository.RegistrationRepository, profileRepo repository.ProfileRepository, redisClient *redis.Client) Service {
	return &service{
		msgRepo:     msgRepo,
		regRepo:     regRepo,
		profileRepo: profileRepo,
		redis:       redisClient,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

// ChannelFor is the Redis Pub/Sub channel carrying new-message events
// for one case. Subscribers refetch the list; the event itself is only a
// poke.
func ChannelFor(registrationID uuid.UUID) string {
	return "registrations:" + registrationID.String() + ":messages"
}

func (s *service) Send(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID, input domain.CreateMessageInput) (*domain.Message, error) {
	if input.Message == "" {
		return nil, fmt.Errorf("message body is required: %w", domain.ErrValidation)
	}

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

	// is_internal comes from the author's role at write time. A client
	// cannot supply it.
	msg := &domain.Message{
		ID:             uuid.New(),
		RegistrationID: reg.ID,
		UserID:         actor.ID,
		Message:        input.Message,
		MessageType:    domain.MessageTypeUser,
		IsInternal:     actor.Role.IsStaff(),
	}

	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.redis != nil {
		_ = s.redis.Publish(ctx, ChannelFor(reg.ID), msg.ID.String()).Err()
	}

	if s.notifSvc != nil {
		go func() {
			_ = s.notifSvc.NotifyNewMessage(context.Background(), reg, msg)
		}()
	}

	msg.UserName = actor.DisplayName()
	msg.UserRole = actor.Role
	return msg, nil
}

func (s *service) List(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID) ([]domain.Message, error) {
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

	msgs, err := s.msgRepo.ListByRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	return s.resolveAttribution(ctx, msgs)
}

func (s *service) resolveAttribution(ctx context.Context, msgs []domain.Message) ([]domain.Message, error) {
	if len(msgs) == 0 {
		return msgs, nil
	}

	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(msgs))
	for _, msg := range msgs {
		if !seen[msg.UserID] {
			seen[msg.UserID] = true
			ids = append(ids, msg.UserID)
		}
	}

	profiles, err := s.profileRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}

	for i := range msgs {
		if p, ok := byID[msgs[i].UserID]; ok {
			msgs[i].UserName = p.DisplayName()
			msgs[i].UserRole = p.Role
		} else {
			msgs[i].UserName = msgs[i].UserID.String()
			msgs[i].UserRole = domain.RoleCitizen
		}
	}
	return msgs, nil
}
