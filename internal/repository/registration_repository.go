package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cadastro-social/internal/domain"
)

type RegistrationRepository interface {
	CreateWithTracking(ctx context.Context, reg *domain.Registration, entry *domain.TrackingEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Registration, error)
	ListAll(ctx context.Context) ([]domain.Registration, error)
	ListForWorker(ctx context.Context, workerID uuid.UUID) ([]domain.Registration, error)
	Update(ctx context.Context, reg *domain.Registration) error
	UpdateStatusWithTracking(ctx context.Context, id uuid.UUID, status domain.Status, claimWorkerID *uuid.UUID, entry *domain.TrackingEntry) error
	AssignWorker(ctx context.Context, id uuid.UUID, workerID uuid.UUID) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[domain.Status]int64, error)
}

type registrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

const registrationInsert = `
	INSERT INTO social_registrations (
		id, user_id, status, name, cpf, rg, birth_date, phone, address,
		neighborhood, city, state, zip_code, marital_status, profession,
		income, education, housing_situation, has_children, receives_benefits,
		benefits_description, emergency_contact_name, emergency_contact_phone,
		observations
	) VALUES (
		:id, :user_id, :status, :name, :cpf, :rg, :birth_date, :phone, :address,
		:neighborhood, :city, :state, :zip_code, :marital_status, :profession,
		:income, :education, :housing_situation, :has_children, :receives_benefits,
		:benefits_description, :emergency_contact_name, :emergency_contact_phone,
		:observations
	) RETURNING created_at, updated_at`

const trackingInsert = `
	INSERT INTO registration_tracking (id, registration_id, user_id, updated_by, status, message)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at`

// CreateWithTracking opens the case and writes its first ledger entry in a
// single transaction, so a registration never exists without its
// "cadastro_criado" record.
func (r *registrationRepository) CreateWithTracking(ctx context.Context, reg *domain.Registration, entry *domain.TrackingEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.NamedQuery(registrationInsert, reg)
	if err != nil {
		return err
	}
	if rows.Next() {
		if err := rows.Scan(&reg.CreatedAt, &reg.UpdatedAt); err != nil {
			rows.Close()
			return err
		}
	}
	rows.Close()

	err = tx.QueryRowxContext(ctx, trackingInsert,
		entry.ID, entry.RegistrationID, entry.UserID, entry.UpdatedBy, entry.Status, entry.Message,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *registrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	var reg domain.Registration
	query := `SELECT * FROM social_registrations WHERE id = $1`

	err := r.db.GetContext(ctx, &reg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Registration, error) {
	var reg domain.Registration
	query := `SELECT * FROM social_registrations WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`

	err := r.db.GetContext(ctx, &reg, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) ListAll(ctx context.Context) ([]domain.Registration, error) {
	var regs []domain.Registration
	query := `SELECT * FROM social_registrations ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &regs, query)
	return regs, err
}

// ListForWorker computes "my cases": explicitly assigned cases unioned
// with cases the worker has an 'approved' ledger entry on. The EXISTS
// branch keeps the result free of duplicate case rows.
func (r *registrationRepository) ListForWorker(ctx context.Context, workerID uuid.UUID) ([]domain.Registration, error) {
	var regs []domain.Registration
	query := `
		SELECT * FROM social_registrations r
		WHERE r.assigned_social_worker_id = $1
		   OR EXISTS (
			SELECT 1 FROM registration_tracking t
			WHERE t.registration_id = r.id
			  AND t.status = 'approved'
			  AND t.updated_by = $1
		   )
		ORDER BY r.created_at DESC`

	err := r.db.SelectContext(ctx, &regs, query, workerID)
	return regs, err
}

func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	query := `
		UPDATE social_registrations
		SET name = :name, cpf = :cpf, rg = :rg, birth_date = :birth_date,
			phone = :phone, address = :address, neighborhood = :neighborhood,
			city = :city, state = :state, zip_code = :zip_code,
			marital_status = :marital_status, profession = :profession,
			income = :income, education = :education,
			housing_situation = :housing_situation, has_children = :has_children,
			receives_benefits = :receives_benefits,
			benefits_description = :benefits_description,
			emergency_contact_name = :emergency_contact_name,
			emergency_contact_phone = :emergency_contact_phone,
			observations = :observations, updated_at = NOW()
		WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, reg)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatusWithTracking persists the new status and appends the ledger
// entry in one transaction. claimWorkerID, when set, also writes
// assigned_social_worker_id (the approve-claims-the-case policy).
func (r *registrationRepository) UpdateStatusWithTracking(ctx context.Context, id uuid.UUID, status domain.Status, claimWorkerID *uuid.UUID, entry *domain.TrackingEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var res sql.Result
	if claimWorkerID != nil {
		res, err = tx.ExecContext(ctx, `
			UPDATE social_registrations
			SET status = $2, assigned_social_worker_id = $3, updated_at = NOW()
			WHERE id = $1`, id, status, *claimWorkerID)
	} else {
		res, err = tx.ExecContext(ctx, `
			UPDATE social_registrations
			SET status = $2, updated_at = NOW()
			WHERE id = $1`, id, status)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	err = tx.QueryRowxContext(ctx, trackingInsert,
		entry.ID, entry.RegistrationID, entry.UserID, entry.UpdatedBy, entry.Status, entry.Message,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("append tracking entry: %w", err)
	}

	return tx.Commit()
}

func (r *registrationRepository) AssignWorker(ctx context.Context, id uuid.UUID, workerID uuid.UUID) error {
	query := `
		UPDATE social_registrations
		SET assigned_social_worker_id = $2, updated_at = NOW()
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, workerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the case and every dependent row transactionally.
// Stored blobs are left behind; only metadata rows go.
func (r *registrationRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, query := range []string{
		`DELETE FROM messages WHERE registration_id = $1`,
		`DELETE FROM registration_tracking WHERE registration_id = $1`,
		`DELETE FROM documents WHERE registration_id = $1`,
		`DELETE FROM family_compositions WHERE registration_id = $1`,
		`DELETE FROM terms_agreements WHERE registration_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM social_registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}

func (r *registrationRepository) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT status, COUNT(*) FROM social_registrations GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Status]int64)
	for rows.Next() {
		var status domain.Status
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
