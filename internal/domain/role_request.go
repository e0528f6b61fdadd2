package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoleRequest is a promotion request reviewed by the distinguished super
// admin. It transitions exactly once: pending to approved or rejected.
type RoleRequest struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	UserID        uuid.UUID         `json:"user_id" db:"user_id"`
	RequestedRole Role              `json:"requested_role" db:"requested_role"`
	Status        RoleRequestStatus `json:"status" db:"status"`
	Notes         *string           `json:"notes,omitempty" db:"notes"`
	ReviewedBy    *uuid.UUID        `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewNote    *string           `json:"review_note,omitempty" db:"review_note"`
	ReviewedAt    *time.Time        `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`

	Requester *Profile `json:"requester,omitempty" db:"-"`
	Reviewer  *Profile `json:"reviewer,omitempty" db:"-"`
}

type RoleRequestStatus string

const (
	RoleRequestPending  RoleRequestStatus = "pending"
	RoleRequestApproved RoleRequestStatus = "approved"
	RoleRequestRejected RoleRequestStatus = "rejected"
)

type CreateRoleRequestInput struct {
	RequestedRole Role    `json:"requested_role" validate:"required"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type ReviewRoleRequestInput struct {
	Approve bool    `json:"approve"`
	Note    *string `json:"note,omitempty" validate:"omitempty,max=500"`
}
