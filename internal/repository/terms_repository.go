package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cadastro-social/internal/domain"
)

type TermsRepository interface {
	Create(ctx context.Context, agreement *domain.TermsAgreement) error
	GetByRegistration(ctx context.Context, registrationID uuid.UUID) (*domain.TermsAgreement, error)
}

type termsRepository struct {
	db *sqlx.DB
}

func NewTermsRepository(db *sqlx.DB) TermsRepository {
	return &termsRepository{db: db}
}

func (r *termsRepository) Create(ctx context.Context, agreement *domain.TermsAgreement) error {
	query := `
		INSERT INTO terms_agreements (id, user_id, registration_id, terms_accepted, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING acceptance_date`

	return r.db.QueryRowxContext(ctx, query,
		agreement.ID, agreement.UserID, agreement.RegistrationID,
		agreement.TermsAccepted, agreement.IPAddress, agreement.UserAgent,
	).Scan(&agreement.AcceptanceDate)
}

func (r *termsRepository) GetByRegistration(ctx context.Context, registrationID uuid.UUID) (*domain.TermsAgreement, error) {
	var agreement domain.TermsAgreement
	query := `SELECT * FROM terms_agreements WHERE registration_id = $1 ORDER BY acceptance_date DESC LIMIT 1`

	err := r.db.GetContext(ctx, &agreement, query, registrationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}
