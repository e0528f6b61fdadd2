package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cadastro-social/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByRegistration(ctx context.Context, registrationID uuid.UUID) ([]domain.Message, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, registration_id, user_id, message, message_type, is_internal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		msg.ID, msg.RegistrationID, msg.UserID, msg.Message, msg.MessageType, msg.IsInternal,
	).Scan(&msg.CreatedAt)
}

// ListByRegistration reads the conversation oldest first; the channel has
// no descending view.
func (r *messageRepository) ListByRegistration(ctx context.Context, registrationID uuid.UUID) ([]domain.Message, error) {
	var msgs []domain.Message
	query := `SELECT * FROM messages WHERE registration_id = $1 ORDER BY created_at ASC, id ASC`

	err := r.db.SelectContext(ctx, &msgs, query, registrationID)
	return msgs, err
}
