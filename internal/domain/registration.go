package domain

import (
	"time"

	"github.com/google/uuid"
)

// Registration is one citizen's social/housing case. Status is the only
// staff-mutated field with workflow meaning; the profile attributes mirror
// the intake form.
type Registration struct {
	ID                     uuid.UUID  `json:"id" db:"id"`
	UserID                 uuid.UUID  `json:"user_id" db:"user_id"`
	AssignedSocialWorkerID *uuid.UUID `json:"assigned_social_worker_id,omitempty" db:"assigned_social_worker_id"`
	Status                 Status     `json:"status" db:"status"`

	Name                  string     `json:"name" db:"name"`
	CPF                   string     `json:"cpf" db:"cpf"`
	RG                    *string    `json:"rg,omitempty" db:"rg"`
	BirthDate             *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	Phone                 *string    `json:"phone,omitempty" db:"phone"`
	Address               *string    `json:"address,omitempty" db:"address"`
	Neighborhood          *string    `json:"neighborhood,omitempty" db:"neighborhood"`
	City                  *string    `json:"city,omitempty" db:"city"`
	State                 *string    `json:"state,omitempty" db:"state"`
	ZipCode               *string    `json:"zip_code,omitempty" db:"zip_code"`
	MaritalStatus         *string    `json:"marital_status,omitempty" db:"marital_status"`
	Profession            *string    `json:"profession,omitempty" db:"profession"`
	Income                *float64   `json:"income,omitempty" db:"income"`
	Education             *string    `json:"education,omitempty" db:"education"`
	HousingSituation      *string    `json:"housing_situation,omitempty" db:"housing_situation"`
	HasChildren           *bool      `json:"has_children,omitempty" db:"has_children"`
	ReceivesBenefits      *bool      `json:"receives_benefits,omitempty" db:"receives_benefits"`
	BenefitsDescription   *string    `json:"benefits_description,omitempty" db:"benefits_description"`
	EmergencyContactName  *string    `json:"emergency_contact_name,omitempty" db:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone,omitempty" db:"emergency_contact_phone"`
	Observations          *string    `json:"observations,omitempty" db:"observations"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Resolved from the profile directory on staff listings, never stored.
	CitizenEmail string `json:"citizen_email,omitempty" db:"-"`
}

type Status string

const (
	StatusPending          Status = "pending"
	StatusInReview         Status = "in_review"
	StatusWaitingDocuments Status = "waiting_documents"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusWaitingDocuments, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

type CreateRegistrationInput struct {
	Name                  string     `json:"name" validate:"required,min=2"`
	CPF                   string     `json:"cpf" validate:"required"`
	RG                    *string    `json:"rg,omitempty"`
	BirthDate             *time.Time `json:"birth_date,omitempty"`
	Phone                 *string    `json:"phone,omitempty"`
	Address               *string    `json:"address,omitempty"`
	Neighborhood          *string    `json:"neighborhood,omitempty"`
	City                  *string    `json:"city,omitempty"`
	State                 *string    `json:"state,omitempty"`
	ZipCode               *string    `json:"zip_code,omitempty"`
	MaritalStatus         *string    `json:"marital_status,omitempty"`
	Profession            *string    `json:"profession,omitempty"`
	Income                *float64   `json:"income,omitempty"`
	Education             *string    `json:"education,omitempty"`
	HousingSituation      *string    `json:"housing_situation,omitempty"`
	HasChildren           *bool      `json:"has_children,omitempty"`
	ReceivesBenefits      *bool      `json:"receives_benefits,omitempty"`
	BenefitsDescription   *string    `json:"benefits_description,omitempty"`
	EmergencyContactName  *string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone,omitempty"`
	Observations          *string    `json:"observations,omitempty"`
}

type UpdateStatusInput struct {
	Status  Status  `json:"status" validate:"required"`
	Message *string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

type AssignWorkerInput struct {
	SocialWorkerID uuid.UUID `json:"social_worker_id" validate:"required"`
}

// TermsAgreement records acceptance of the data-use terms for a
// registration, including where the acceptance came from.
type TermsAgreement struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	RegistrationID uuid.UUID `json:"registration_id" db:"registration_id"`
	TermsAccepted  bool      `json:"terms_accepted" db:"terms_accepted"`
	IPAddress      *string   `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent      *string   `json:"user_agent,omitempty" db:"user_agent"`
	AcceptanceDate time.Time `json:"acceptance_date" db:"acceptance_date"`
}
