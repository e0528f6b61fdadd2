package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrackingEntry is an immutable status-transition record. Status is an
// open string: besides the five case statuses it carries document
// pseudo-statuses and milestones such as TrackRegistrationCreated, so no
// enum is enforced on read or append.
type TrackingEntry struct {
	ID             uuid.UUID `json:"id" db:"id"`
	RegistrationID uuid.UUID `json:"registration_id" db:"registration_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	UpdatedBy      uuid.UUID `json:"updated_by" db:"updated_by"`
	Status         string    `json:"status" db:"status"`
	Message        *string   `json:"message,omitempty" db:"message"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`

	// Resolved attribution, never stored.
	UpdatedByName string `json:"updated_by_name,omitempty" db:"-"`
}

// TrackRegistrationCreated marks the opening entry written when a citizen
// submits a new registration.
const TrackRegistrationCreated = "cadastro_criado"

type AppendTrackingInput struct {
	Status  string  `json:"status" validate:"required"`
	Message *string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

// TrackingOrder selects the sort direction for ledger reads. Both
// directions share the same stable key: created_at with id tiebreak.
type TrackingOrder string

const (
	TrackingAscending  TrackingOrder = "asc"
	TrackingDescending TrackingOrder = "desc"
)
