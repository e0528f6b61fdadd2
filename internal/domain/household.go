package domain

import (
	"time"

	"github.com/google/uuid"
)

// HeadRelationship is the conventional relationship label marking the
// head of household in a roster.
const HeadRelationship = "Responsável"

type HouseholdMember struct {
	ID                    uuid.UUID `json:"id" db:"id"`
	RegistrationID        uuid.UUID `json:"registration_id" db:"registration_id"`
	UserID                uuid.UUID `json:"user_id" db:"user_id"`
	MemberName            string    `json:"member_name" db:"member_name"`
	Relationship          string    `json:"relationship" db:"relationship"`
	Age                   *int      `json:"age,omitempty" db:"age"`
	CPF                   *string   `json:"cpf,omitempty" db:"cpf"`
	Income                *float64  `json:"income,omitempty" db:"income"`
	Profession            *string   `json:"profession,omitempty" db:"profession"`
	Education             *string   `json:"education,omitempty" db:"education"`
	HasDisability         *bool     `json:"has_disability,omitempty" db:"has_disability"`
	DisabilityDescription *string   `json:"disability_description,omitempty" db:"disability_description"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`
}

func (m *HouseholdMember) IsHead() bool {
	return m.Relationship == HeadRelationship
}

type CreateHouseholdMemberInput struct {
	MemberName            string   `json:"member_name" validate:"required,min=2"`
	Relationship          string   `json:"relationship" validate:"required"`
	Age                   *int     `json:"age,omitempty"`
	CPF                   *string  `json:"cpf,omitempty"`
	Income                *float64 `json:"income,omitempty"`
	Profession            *string  `json:"profession,omitempty"`
	Education             *string  `json:"education,omitempty"`
	HasDisability         *bool    `json:"has_disability,omitempty"`
	DisabilityDescription *string  `json:"disability_description,omitempty"`
}

type UpdateHouseholdMemberInput struct {
	MemberName            *string  `json:"member_name,omitempty" validate:"omitempty,min=2"`
	Relationship          *string  `json:"relationship,omitempty"`
	Age                   *int     `json:"age,omitempty"`
	CPF                   *string  `json:"cpf,omitempty"`
	Income                *float64 `json:"income,omitempty"`
	Profession            *string  `json:"profession,omitempty"`
	Education             *string  `json:"education,omitempty"`
	HasDisability         *bool    `json:"has_disability,omitempty"`
	DisabilityDescription *string  `json:"disability_description,omitempty"`
}
