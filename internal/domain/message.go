package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is one entry of the per-case conversation log, a stream kept
// separate from the tracking ledger. IsInternal is derived from the
// author's role at write time and never taken from the client.
type Message struct {
	ID             uuid.UUID `json:"id" db:"id"`
	RegistrationID uuid.UUID `json:"registration_id" db:"registration_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	Message        string    `json:"message" db:"message"`
	MessageType    string    `json:"message_type" db:"message_type"`
	IsInternal     bool      `json:"is_internal" db:"is_internal"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	// Resolved attribution, never stored.
	UserName string `json:"user_name,omitempty" db:"-"`
	UserRole Role   `json:"user_role,omitempty" db:"-"`
}

const MessageTypeUser = "user_message"

type CreateMessageInput struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}
