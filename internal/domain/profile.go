package domain

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	Role         Role       `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

// DisplayName resolves attribution for ledger and message views:
// full name first, then email, then the raw id.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	if p.Email != "" {
		return p.Email
	}
	return p.ID.String()
}

type Role string

const (
	RoleCitizen      Role = "citizen"
	RoleSocialWorker Role = "social_worker"
	RoleAdmin        Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCitizen, RoleSocialWorker, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role may review cases and documents.
func (r Role) IsStaff() bool {
	return r == RoleSocialWorker || r == RoleAdmin
}

// HasRole implements the access hierarchy used by route middleware:
// admin covers social_worker, and every authenticated role covers citizen.
func (p *Profile) HasRole(required Role) bool {
	switch required {
	case RoleAdmin:
		return p.Role == RoleAdmin
	case RoleSocialWorker:
		return p.Role == RoleSocialWorker || p.Role == RoleAdmin
	case RoleCitizen:
		return p.Role.IsValid()
	default:
		return false
	}
}

type CreateProfileInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2"`
}

type UpdateProfileInput struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

// AdminUpdateProfileInput is the admin-side profile edit. Role is
// deliberately absent; elevation goes through the role request queue.
type AdminUpdateProfileInput struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
