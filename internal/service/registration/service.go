package registration

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/repository"
	"cadastro-social/internal/service/notification"
)

// Service owns the case lifecycle: creation, status transitions, worker
// assignment and deletion. The status graph is deliberately loose — any
// staff actor may set any of the five statuses at any time; only enum
// membership is validated.
type Service interface {
	Create(ctx context.Context, actor *domain.Profile, input domain.CreateRegistrationInput) (*domain.Registration, error)
	GetByID(ctx context.Context, actor *domain.Profile, id uuid.UUID) (*domain.Registration, error)
	GetMine(ctx context.Context, userID uuid.UUID) (*domain.Registration, error)
	ListAll(ctx context.Context, actor *domain.Profile) ([]domain.Registration, error)
	MyCases(ctx context.Context, actor *domain.Profile) ([]domain.Registration, error)
	Update(ctx context.Context, actor *domain.Profile, id uuid.UUID, input domain.CreateRegistrationInput) (*domain.Registration, error)
	UpdateStatus(ctx context.Context, actor *domain.Profile, id uuid.UUID, input domain.UpdateStatusInput) error
	AssignWorker(ctx context.Context, actor *domain.Profile, id uuid.UUID, workerID uuid.UUID) error
	Delete(ctx context.Context, actor *domain.Profile, id uuid.UUID) error
	AcceptTerms(ctx context.Context, actor *domain.Profile, id uuid.UUID, ipAddress, userAgent string) (*domain.TermsAgreement, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	regRepo     repository.RegistrationRepository
	profileRepo repository.ProfileRepository
	termsRepo   repository.TermsRepository
	notifSvc    notification.Service
}

func NewService(regRepo repository.RegistrationRepository, profileRepo repository.ProfileRepository, termsRepo repository.TermsRepository) Service {
	return &service{
		regRepo:     regRepo,
		profileRepo: profileRepo,
		termsRepo:   termsRepo,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

// Create opens a case as pending and writes the opening ledger entry in
// the same transaction.
func (s *service) Create(ctx context.Context, actor *domain.Profile, input domain.CreateRegistrationInput) (*domain.Registration, error) {
	if input.Name == "" || input.CPF == "" {
		return nil, fmt.Errorf("name and cpf are required: %w", domain.ErrValidation)
	}

	reg := &domain.Registration{
		ID:                    uuid.New(),
		UserID:                actor.ID,
		Status:                domain.StatusPending,
		Name:                  input.Name,
		CPF:                   input.CPF,
		RG:                    input.RG,
		BirthDate:             input.BirthDate,
		Phone:                 input.Phone,
		Address:               input.Address,
		Neighborhood:          input.Neighborhood,
		City:                  input.City,
		State:                 input.State,
		ZipCode:               input.ZipCode,
		MaritalStatus:         input.MaritalStatus,
		Profession:            input.Profession,
		Income:                input.Income,
		Education:             input.Education,
		HousingSituation:      input.HousingSituation,
		HasChildren:           input.HasChildren,
		ReceivesBenefits:      input.ReceivesBenefits,
		BenefitsDescription:   input.BenefitsDescription,
		EmergencyContactName:  input.EmergencyContactName,
		EmergencyContactPhone: input.EmergencyContactPhone,
		Observations:          input.Observations,
	}

	entry := &domain.TrackingEntry{
		ID:             uuid.New(),
		RegistrationID: reg.ID,
		UserID:         actor.ID,
		UpdatedBy:      actor.ID,
		Status:         domain.TrackRegistrationCreated,
	}

	if err := s.regRepo.CreateWithTracking(ctx, reg, entry); err != nil {
		return nil, err
	}

	return reg, nil
}

func (s *service) GetByID(ctx context.Context, actor *domain.Profile, id uuid.UUID) (*domain.Registration, error) {
	reg, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("registration %s: %w", id, domain.ErrNotFound)
	}

	if reg.UserID != actor.ID && !actor.Role.IsStaff() {
		return nil, fmt.Errorf("not your registration: %w", domain.ErrForbidden)
	}

	return reg, nil
}

func (s *service) GetMine(ctx context.Context, userID uuid.UUID) (*domain.Registration, error) {
	return s.regRepo.GetByUserID(ctx, userID)
}

func (s *service) ListAll(ctx context.Context, actor *domain.Profile) ([]domain.Registration, error) {
	if !actor.Role.IsStaff() {
		return nil, fmt.Errorf("staff only: %w", domain.ErrForbidden)
	}

	regs, err := s.regRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachCitizenEmails(ctx, regs)
}

// MyCases is the assignment-policy read: explicitly assigned cases plus
// cases the worker has approved, newest first, no duplicates.
func (s *service) MyCases(ctx context.Context, actor *domain.Profile) ([]domain.Registration, error) {
	if !actor.Role.IsStaff() {
		return nil, fmt.Errorf("staff only: %w", domain.ErrForbidden)
	}

	regs, err := s.regRepo.ListForWorker(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.attachCitizenEmails(ctx, regs)
}

// attachCitizenEmails resolves owner emails with one batched profile
// lookup over the distinct owner ids. Missing profiles show as "N/A".
func (s *service) attachCitizenEmails(ctx context.Context, regs []domain.Registration) ([]domain.Registration, error) {
	if len(regs) == 0 {
		return regs, nil
	}

	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(regs))
	for _, reg := range regs {
		if !seen[reg.UserID] {
			seen[reg.UserID] = true
			ids = append(ids, reg.UserID)
		}
	}

	profiles, err := s.profileRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	emails := make(map[uuid.UUID]string, len(profiles))
	for _, p := range profiles {
		emails[p.ID] = p.Email
	}

	for i := range regs {
		if email, ok := emails[regs[i].UserID]; ok && email != "" {
			regs[i].CitizenEmail = email
		} else {
			regs[i].CitizenEmail = "N/A"
		}
	}
	return regs, nil
}

// Update lets the owner correct their data while the case is still
// pending; staff may edit at any time.
func (s *service) Update(ctx context.Context, actor *domain.Profile, id uuid.UUID, input domain.CreateRegistrationInput) (*domain.Registration, error) {
	reg, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsStaff() && reg.Status != domain.StatusPending {
		return nil, fmt.Errorf("registration is already under review: %w", domain.ErrConflict)
	}

	reg.Name = input.Name
	reg.CPF = input.CPF
	reg.RG = input.RG
	reg.BirthDate = input.BirthDate
	reg.Phone = input.Phone
	reg.Address = input.Address
	reg.Neighborhood = input.Neighborhood
	reg.City = input.City
	reg.State = input.State
	reg.ZipCode = input.ZipCode
	reg.MaritalStatus = input.MaritalStatus
	reg.Profession = input.Profession
	reg.Income = input.Income
	reg.Education = input.Education
	reg.HousingSituation = input.HousingSituation
	reg.HasChildren = input.HasChildren
	reg.ReceivesBenefits = input.ReceivesBenefits
	reg.BenefitsDescription = input.BenefitsDescription
	reg.EmergencyContactName = input.EmergencyContactName
	reg.EmergencyContactPhone = input.EmergencyContactPhone
	reg.Observations = input.Observations

	if err := s.regRepo.Update(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// UpdateStatus is the central transition: the case mutation and the
// ledger append commit together or not at all. When a social worker
// approves, the case is claimed for them even without an explicit
// assignment.
func (s *service) UpdateStatus(ctx context.Context, actor *domain.Profile, id uuid.UUID, input domain.UpdateStatusInput) error {
	if !actor.Role.IsStaff() {
		return fmt.Errorf("only staff may update case status: %w", domain.ErrForbidden)
	}
	if !input.Status.IsValid() {
		return fmt.Errorf("unknown status %q: %w", input.Status, domain.ErrValidation)
	}

	reg, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reg == nil {
		return fmt.Errorf("registration %s: %w", id, domain.ErrNotFound)
	}

	var claimWorkerID *uuid.UUID
	if input.Status == domain.StatusApproved && actor.Role == domain.RoleSocialWorker {
		claimWorkerID = &actor.ID
	}

	entry := &domain.TrackingEntry{
		ID:             uuid.New(),
		RegistrationID: reg.ID,
		UserID:         reg.UserID,
		UpdatedBy:      actor.ID,
		Status:         string(input.Status),
		Message:        input.Message,
	}

	if err := s.regRepo.UpdateStatusWithTracking(ctx, id, input.Status, claimWorkerID, entry); err != nil {
		return err
	}

	if s.notifSvc != nil {
		go func() {
			_ = s.notifSvc.NotifyStatusUpdated(context.Background(), reg, input.Status, input.Message)
		}()
	}
	return nil
}

func (s *service) AssignWorker(ctx context.Context, actor *domain.Profile, id uuid.UUID, workerID uuid.UUID) error {
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("only admins may assign cases: %w", domain.ErrForbidden)
	}

	worker, err := s.profileRepo.GetByID(ctx, workerID)
	if err != nil {
		return err
	}
	if worker == nil || !worker.Role.IsStaff() {
		return fmt.Errorf("assignee is not a social worker: %w", domain.ErrValidation)
	}

	reg, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reg == nil {
		return fmt.Errorf("registration %s: %w", id, domain.ErrNotFound)
	}

	if err := s.regRepo.AssignWorker(ctx, id, workerID); err != nil {
		return err
	}

	if s.notifSvc != nil {
		go func() {
			_ = s.notifSvc.NotifyCaseAssigned(context.Background(), reg, workerID)
		}()
	}
	return nil
}

// Delete removes the case and all dependent rows in one transaction.
func (s *service) Delete(ctx context.Context, actor *domain.Profile, id uuid.UUID) error {
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("only admins may delete registrations: %w", domain.ErrForbidden)
	}
	return s.regRepo.DeleteCascade(ctx, id)
}

func (s *service) AcceptTerms(ctx context.Context, actor *domain.Profile, id uuid.UUID, ipAddress, userAgent string) (*domain.TermsAgreement, error) {
	reg, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	agreement := &domain.TermsAgreement{
		ID:             uuid.New(),
		UserID:         actor.ID,
		RegistrationID: reg.ID,
		TermsAccepted:  true,
	}
	if ipAddress != "" {
		agreement.IPAddress = &ipAddress
	}
	if userAgent != "" {
		agreement.UserAgent = &userAgent
	}

	if err := s.termsRepo.Create(ctx, agreement); err != nil {
		return nil, err
	}
	return agreement, nil
}
