package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cadastro-social/internal/domain"
)

// TrackingRepository is append-only: entries are never updated or removed
// outside a full case delete.
type TrackingRepository interface {
	Create(ctx context.Context, entry *domain.TrackingEntry) error
	ListByRegistration(ctx context.Context, registrationID uuid.UUID, order domain.TrackingOrder) ([]domain.TrackingEntry, error)
}

type trackingRepository struct {
	db *sqlx.DB
}

func NewTrackingRepository(db *sqlx.DB) TrackingRepository {
	return &trackingRepository{db: db}
}

func (r *trackingRepository) Create(ctx context.Context, entry *domain.TrackingEntry) error {
	query := `
		INSERT INTO registration_tracking (id, registration_id, user_id, updated_by, status, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.RegistrationID, entry.UserID, entry.UpdatedBy, entry.Status, entry.Message,
	).Scan(&entry.CreatedAt)
}

func (r *trackingRepository) ListByRegistration(ctx context.Context, registrationID uuid.UUID, order domain.TrackingOrder) ([]domain.TrackingEntry, error) {
	// id breaks created_at ties so both directions stay stable.
	query := `SELECT * FROM registration_tracking WHERE registration_id = $1 ORDER BY created_at ASC, id ASC`
	if order == domain.TrackingDescending {
		query = `SELECT * FROM registration_tracking WHERE registration_id = $1 ORDER BY created_at DESC, id DESC`
	}

	var entries []domain.TrackingEntry
	err := r.db.SelectContext(ctx, &entries, query, registrationID)
	return entries, err
}
