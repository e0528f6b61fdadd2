package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cadastro-social/internal/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByRegistration(ctx context.Context, registrationID uuid.UUID) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, observations *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (id, registration_id, user_id, document_name, document_type, file_path, file_type, file_size, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING upload_date`

	return r.db.QueryRowxContext(ctx, query,
		doc.ID, doc.RegistrationID, doc.UserID, doc.DocumentName, doc.DocumentType,
		doc.FilePath, doc.FileType, doc.FileSize, doc.Status,
	).Scan(&doc.UploadDate)
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	query := `SELECT * FROM documents WHERE id = $1`

	err := r.db.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByRegistration(ctx context.Context, registrationID uuid.UUID) ([]domain.Document, error) {
	var docs []domain.Document
	query := `SELECT * FROM documents WHERE registration_id = $1 ORDER BY upload_date ASC, id ASC`

	err := r.db.SelectContext(ctx, &docs, query, registrationID)
	return docs, err
}

// UpdateStatus is the only mutation a document row sees after creation:
// staff review of its sub-status and observations.
func (r *documentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, observations *string) error {
	query := `UPDATE documents SET status = $2, observations = $3 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, status, observations)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
