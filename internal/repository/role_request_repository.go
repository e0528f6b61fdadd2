package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cadastro-social/internal/domain"
)

type RoleRequestRepository interface {
	Create(ctx context.Context, req *domain.RoleRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RoleRequest, error)
	List(ctx context.Context, status *domain.RoleRequestStatus, params domain.PaginationParams) ([]domain.RoleRequest, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.RoleRequest, error)
	ReviewAndElevate(ctx context.Context, id uuid.UUID, status domain.RoleRequestStatus, reviewerID uuid.UUID, note *string, elevate *domain.Role) error
}

type roleRequestRepository struct {
	db *sqlx.DB
}

func NewRoleRequestRepository(db *sqlx.DB) RoleRequestRepository {
	return &roleRequestRepository{db: db}
}

func (r *roleRequestRepository) Create(ctx context.Context, req *domain.RoleRequest) error {
	query := `
		INSERT INTO role_requests (id, user_id, requested_role, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.UserID, req.RequestedRole, req.Status, req.Notes,
	).Scan(&req.CreatedAt)
}

func (r *roleRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RoleRequest, error) {
	var req domain.RoleRequest
	query := `SELECT * FROM role_requests WHERE id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *roleRequestRepository) List(ctx context.Context, status *domain.RoleRequestStatus, params domain.PaginationParams) ([]domain.RoleRequest, int64, error) {
	params.Validate()

	var total int64
	var requests []domain.RoleRequest

	if status != nil {
		countQuery := `SELECT COUNT(*) FROM role_requests WHERE status = $1`
		if err := r.db.GetContext(ctx, &total, countQuery, *status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM role_requests
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &requests, query, *status, params.PageSize, params.Offset())
		return requests, total, err
	}

	countQuery := `SELECT COUNT(*) FROM role_requests`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM role_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &requests, query, params.PageSize, params.Offset())
	return requests, total, err
}

func (r *roleRequestRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.RoleRequest, error) {
	var requests []domain.RoleRequest
	query := `SELECT * FROM role_requests WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &requests, query, userID)
	return requests, err
}

// ReviewAndElevate settles a pending request and, on approval, elevates
// the requester's profile role inside the same transaction. The WHERE
// status = 'pending' guard makes the review single-shot: a second review
// matches no row and comes back as ErrConflict.
func (r *roleRequestRepository) ReviewAndElevate(ctx context.Context, id uuid.UUID, status domain.RoleRequestStatus, reviewerID uuid.UUID, note *string, elevate *domain.Role) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var userID uuid.UUID
	err = tx.QueryRowxContext(ctx, `
		UPDATE role_requests
		SET status = $2, reviewed_by = $3, review_note = $4, reviewed_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING user_id`, id, status, reviewerID, note,
	).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrConflict
	}
	if err != nil {
		return err
	}

	if elevate != nil {
		res, err := tx.ExecContext(ctx, `
			UPDATE profiles SET role = $2, updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL`, userID, *elevate)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}
	}

	return tx.Commit()
}
