package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/pkg/i18n"
	"cadastro-social/internal/repository"
	"cadastro-social/internal/service/email"
)

// Service fans workflow events out to in-app notifications and email.
// Every Notify method is best effort: callers fire them after the
// authoritative write has committed and ignore their errors.
type Service interface {
	NotifyStatusUpdated(ctx context.Context, reg *domain.Registration, status domain.Status, note *string) error
	NotifyNewMessage(ctx context.Context, reg *domain.Registration, msg *domain.Message) error
	NotifyDocumentReviewed(ctx context.Context, doc *domain.Document, status string) error
	NotifyCaseAssigned(ctx context.Context, reg *domain.Registration, workerID uuid.UUID) error
	NotifyRoleRequestReviewed(ctx context.Context, req *domain.RoleRequest, approved bool) error

	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	notifRepo   repository.NotificationRepository
	profileRepo repository.ProfileRepository
	emailSvc    email.Service
}

func NewService(notifRepo repository.NotificationRepository, profileRepo repository.ProfileRepository, emailSvc email.Service) Service {
	return &service{
		notifRepo:   notifRepo,
		profileRepo: profileRepo,
		emailSvc:    emailSvc,
	}
}

func registrationData(registrationID uuid.UUID) json.RawMessage {
	data, _ := json.Marshal(map[string]string{"registration_id": registrationID.String()})
	return data
}

func (s *service) NotifyStatusUpdated(ctx context.Context, reg *domain.Registration, status domain.Status, note *string) error {
	label := i18n.StatusLabel("pt-BR", string(status))

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  reg.UserID,
		Type:    domain.NotifStatusUpdated,
		Title:   "Status atualizado",
		Message: "O status do seu cadastro foi atualizado para: " + label,
		Data:    registrationData(reg.ID),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}

	if s.emailSvc != nil {
		if owner, err := s.profileRepo.GetByID(ctx, reg.UserID); err == nil && owner != nil {
			if err := s.emailSvc.SendStatusUpdateEmail(ctx, owner.Email, owner.FullName, label, note); err != nil {
				log.Printf("Failed to send status update email: %v", err)
			}
		}
	}
	return nil
}

// NotifyNewMessage tells the counterpart of the conversation: the case
// owner when staff writes, the assigned worker when the citizen writes.
func (s *service) NotifyNewMessage(ctx context.Context, reg *domain.Registration, msg *domain.Message) error {
	var recipient uuid.UUID
	if msg.IsInternal {
		recipient = reg.UserID
	} else if reg.AssignedSocialWorkerID != nil {
		recipient = *reg.AssignedSocialWorkerID
	} else {
		return nil
	}
	if recipient == msg.UserID {
		return nil
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  recipient,
		Type:    domain.NotifNewMessage,
		Title:   "Nova mensagem",
		Message: "Você recebeu uma nova mensagem sobre o cadastro",
		Data:    registrationData(reg.ID),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}

	if s.emailSvc != nil && msg.IsInternal {
		if owner, err := s.profileRepo.GetByID(ctx, reg.UserID); err == nil && owner != nil {
			if err := s.emailSvc.SendNewMessageEmail(ctx, owner.Email, owner.FullName); err != nil {
				log.Printf("Failed to send new message email: %v", err)
			}
		}
	}
	return nil
}

func (s *service) NotifyDocumentReviewed(ctx context.Context, doc *domain.Document, status string) error {
	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  doc.UserID,
		Type:    domain.NotifDocumentReviewed,
		Title:   i18n.StatusLabel("pt-BR", status),
		Message: "Seu documento \"" + doc.DocumentName + "\" foi revisado",
		Data:    registrationData(doc.RegistrationID),
	}
	return s.notifRepo.Create(ctx, notif)
}

func (s *service) NotifyCaseAssigned(ctx context.Context, reg *domain.Registration, workerID uuid.UUID) error {
	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  workerID,
		Type:    domain.NotifCaseAssigned,
		Title:   "Caso atribuído",
		Message: "Um cadastro foi atribuído a você: " + reg.Name,
		Data:    registrationData(reg.ID),
	}
	return s.notifRepo.Create(ctx, notif)
}

func (s *service) NotifyRoleRequestReviewed(ctx context.Context, req *domain.RoleRequest, approved bool) error {
	result := "rejeitada"
	if approved {
		result = "aprovada"
	}
	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  req.UserID,
		Type:    domain.NotifRoleRequestReviewed,
		Title:   "Solicitação de acesso revisada",
		Message: "Sua solicitação de acesso foi " + result,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}

	if s.emailSvc != nil {
		if requester, err := s.profileRepo.GetByID(ctx, req.UserID); err == nil && requester != nil {
			if err := s.emailSvc.SendRoleRequestReviewedEmail(ctx, requester.Email, requester.FullName, string(req.RequestedRole), approved); err != nil {
				log.Printf("Failed to send role request email: %v", err)
			}
		}
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}
