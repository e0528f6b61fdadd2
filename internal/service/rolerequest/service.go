package rolerequest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/repository"
	"cadastro-social/internal/service/notification"
)

// Service is the role elevation queue. Anyone may file a request for an
// elevated role; only the super admin (the earliest-created active
// admin) may review, and each request is reviewed exactly once.
type Service interface {
	Create(ctx context.Context, actor *domain.Profile, input domain.CreateRoleRequestInput) (*domain.RoleRequest, error)
	List(ctx context.Context, actor *domain.Profile, status *domain.RoleRequestStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.RoleRequest], error)
	ListMine(ctx context.Context, actor *domain.Profile) ([]domain.RoleRequest, error)
	Review(ctx context.Context, actor *domain.Profile, id uuid.UUID, input domain.ReviewRoleRequestInput) error
	IsSuperAdmin(ctx context.Context, actor *domain.Profile) (bool, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	reqRepo     repository.RoleRequestRepository
	profileRepo repository.ProfileRepository
	notifSvc    notification.Service
}

func NewService(reqRepo repository.RoleRequestRepository, profileRepo repository.ProfileRepository) Service {
	return &service{
		reqRepo:     reqRepo,
		profileRepo: profileRepo,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Create(ctx context.Context, actor *domain.Profile, input domain.CreateRoleRequestInput) (*domain.RoleRequest, error) {
	if input.RequestedRole != domain.RoleSocialWorker && input.RequestedRole != domain.RoleAdmin {
		return nil, fmt.Errorf("requested role %q is not grantable: %w", input.RequestedRole, domain.ErrValidation)
	}

	req := &domain.RoleRequest{
		ID:            uuid.New(),
		UserID:        actor.ID,
		RequestedRole: input.RequestedRole,
		Status:        domain.RoleRequestPending,
		Notes:         input.Notes,
	}

	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) List(ctx context.Context, actor *domain.Profile, status *domain.RoleRequestStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.RoleRequest], error) {
	if actor.Role != domain.RoleAdmin {
		return domain.PaginatedResponse[domain.RoleRequest]{}, fmt.Errorf("admins only: %w", domain.ErrForbidden)
	}

	requests, total, err := s.reqRepo.List(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.RoleRequest]{}, err
	}

	if err := s.resolveRequesters(ctx, requests); err != nil {
		return domain.PaginatedResponse[domain.RoleRequest]{}, err
	}
	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *service) ListMine(ctx context.Context, actor *domain.Profile) ([]domain.RoleRequest, error) {
	return s.reqRepo.ListByUser(ctx, actor.ID)
}

// Review decides a pending request. The decision and the role elevation
// commit in one transaction guarded on status='pending', so a second
// review of the same request surfaces as a conflict.
func (s *service) Review(ctx context.Context, actor *domain.Profile, id uuid.UUID, input domain.ReviewRoleRequestInput) error {
	super, err := s.IsSuperAdmin(ctx, actor)
	if err != nil {
		return err
	}
	if !super {
		return fmt.Errorf("only the super admin may review role requests: %w", domain.ErrForbidden)
	}

	req, err := s.reqRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req == nil {
		return fmt.Errorf("role request %s: %w", id, domain.ErrNotFound)
	}

	status := domain.RoleRequestRejected
	var elevate *domain.Role
	if input.Approve {
		status = domain.RoleRequestApproved
		role := req.RequestedRole
		elevate = &role
	}

	if err := s.reqRepo.ReviewAndElevate(ctx, id, status, actor.ID, input.Note, elevate); err != nil {
		return err
	}

	if s.notifSvc != nil {
		go func() {
			_ = s.notifSvc.NotifyRoleRequestReviewed(context.Background(), req, input.Approve)
		}()
	}
	return nil
}

// IsSuperAdmin reports whether the actor is the earliest-created active
// admin profile.
func (s *service) IsSuperAdmin(ctx context.Context, actor *domain.Profile) (bool, error) {
	if actor.Role != domain.RoleAdmin {
		return false, nil
	}
	first, err := s.profileRepo.FirstAdmin(ctx)
	if err != nil {
		return false, err
	}
	return first != nil && first.ID == actor.ID, nil
}

func (s *service) resolveRequesters(ctx context.Context, requests []domain.RoleRequest) error {
	if len(requests) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(requests))
	for _, req := range requests {
		if !seen[req.UserID] {
			seen[req.UserID] = true
			ids = append(ids, req.UserID)
		}
	}

	profiles, err := s.profileRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[uuid.UUID]*domain.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}
	for i := range requests {
		requests[i].Requester = byID[requests[i].UserID]
	}
	return nil
}
