package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cadastro-social/internal/domain"
)

type HouseholdRepository interface {
	Create(ctx context.Context, member *domain.HouseholdMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.HouseholdMember, error)
	ListByRegistration(ctx context.Context, registrationID uuid.UUID) ([]domain.HouseholdMember, error)
	Update(ctx context.Context, member *domain.HouseholdMember) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type householdRepository struct {
	db *sqlx.DB
}

func NewHouseholdRepository(db *sqlx.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

func (r *householdRepository) Create(ctx context.Context, member *domain.HouseholdMember) error {
	query := `
		INSERT INTO family_compositions (
			id, registration_id, user_id, member_name, relationship, age, cpf,
			income, profession, education, has_disability, disability_description
		) VALUES (
			:id, :registration_id, :user_id, :member_name, :relationship, :age, :cpf,
			:income, :profession, :education, :has_disability, :disability_description
		) RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, member)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&member.CreatedAt, &member.UpdatedAt)
	}
	return rows.Err()
}

func (r *householdRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.HouseholdMember, error) {
	var member domain.HouseholdMember
	query := `SELECT * FROM family_compositions WHERE id = $1`

	err := r.db.GetContext(ctx, &member, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *householdRepository) ListByRegistration(ctx context.Context, registrationID uuid.UUID) ([]domain.HouseholdMember, error) {
	var members []domain.HouseholdMember
	query := `SELECT * FROM family_compositions WHERE registration_id = $1 ORDER BY created_at ASC, id ASC`

	err := r.db.SelectContext(ctx, &members, query, registrationID)
	return members, err
}

func (r *householdRepository) Update(ctx context.Context, member *domain.HouseholdMember) error {
	query := `
		UPDATE family_compositions
		SET member_name = :member_name, relationship = :relationship, age = :age,
			cpf = :cpf, income = :income, profession = :profession,
			education = :education, has_disability = :has_disability,
			disability_description = :disability_description, updated_at = NOW()
		WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, member)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *householdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM family_compositions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
