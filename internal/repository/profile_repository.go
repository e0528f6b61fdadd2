package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"cadastro-social/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role domain.Role) error
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error)
	ListAll(ctx context.Context) ([]domain.Profile, error)
	FirstAdmin(ctx context.Context) (*domain.Profile, error)
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		profile.ID, profile.Email, profile.PasswordHash, profile.FullName,
		profile.Role, profile.IsActive,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &profile, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE email = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &profile, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByIDs is the batch lookup backing attribution on ledgers, messages
// and staff listings. One query per result set, keyed by the distinct
// actor ids.
func (r *profileRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return []domain.Profile{}, nil
	}

	var profiles []domain.Profile
	query := `SELECT * FROM profiles WHERE id = ANY($1) AND deleted_at IS NULL`

	err := r.db.SelectContext(ctx, &profiles, query, pq.Array(ids))
	return profiles, err
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET email = :email, password_hash = :password_hash, full_name = :full_name,
			role = :role, is_active = :is_active, updated_at = NOW()
		WHERE id = :id AND deleted_at IS NULL`

	_, err := r.db.NamedExecContext(ctx, query, profile)
	return err
}

func (r *profileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1 AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *profileRepository) AssignRole(ctx context.Context, userID uuid.UUID, role domain.Role) error {
	query := `
		UPDATE profiles
		SET role = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	var updatedAt time.Time
	err := r.db.QueryRowxContext(ctx, query, userID, role).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *profileRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error) {
	var profiles []domain.Profile
	query := `SELECT * FROM profiles WHERE role = $1 AND deleted_at IS NULL ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &profiles, query, role)
	return profiles, err
}

func (r *profileRepository) ListAll(ctx context.Context) ([]domain.Profile, error) {
	var profiles []domain.Profile
	query := `SELECT * FROM profiles WHERE deleted_at IS NULL ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &profiles, query)
	return profiles, err
}

// FirstAdmin resolves the distinguished super admin: the oldest active
// admin account. Role-request review authority hangs off this single
// identity.
func (r *profileRepository) FirstAdmin(ctx context.Context) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT * FROM profiles
		WHERE role = 'admin' AND is_active = TRUE AND deleted_at IS NULL
		ORDER BY created_at ASC
		LIMIT 1`

	err := r.db.GetContext(ctx, &profile, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
