package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxDocumentSize is the accepted upload limit in bytes.
const MaxDocumentSize = 10 << 20

// AllowedDocumentTypes lists the accepted declared media types.
var AllowedDocumentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
}

// Document has its own sub-lifecycle decoupled from the case status.
// Status is an open string; the named values below are the ones this
// service writes, historical rows may carry others.
type Document struct {
	ID             uuid.UUID `json:"id" db:"id"`
	RegistrationID uuid.UUID `json:"registration_id" db:"registration_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	DocumentName   string    `json:"document_name" db:"document_name"`
	DocumentType   string    `json:"document_type" db:"document_type"`
	FilePath       *string   `json:"-" db:"file_path"`
	FileType       *string   `json:"file_type,omitempty" db:"file_type"`
	FileSize       *int64    `json:"file_size,omitempty" db:"file_size"`
	Status         *string   `json:"status,omitempty" db:"status"`
	Observations   *string   `json:"observations,omitempty" db:"observations"`
	UploadDate     time.Time `json:"upload_date" db:"upload_date"`

	// Presigned URL, issued on demand and never stored.
	URL string `json:"url,omitempty" db:"-"`
}

const (
	DocStatusSent     = "documento_enviado"
	DocStatusApproved = "documento_aprovado"
	DocStatusRejected = "documento_rejeitado"
	DocStatusUpdated  = "documento_atualizado"
	DocStatusRemoved  = "documento_removido"
)

type UploadDocumentInput struct {
	DocumentName string `json:"document_name" validate:"required"`
	DocumentType string `json:"document_type" validate:"required"`
}

type ReviewDocumentInput struct {
	Approve      bool    `json:"approve"`
	Observations *string `json:"observations,omitempty" validate:"omitempty,max=1000"`
}
