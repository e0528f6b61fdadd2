package document

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"cadastro-social/internal/config"
	"cadastro-social/internal/domain"
	"cadastro-social/internal/repository"
	"cadastro-social/internal/service/notification"
)

// Service runs the document sub-lifecycle, independent of the case
// status: upload, staff review, owner delete and signed downloads.
type Service interface {
	Upload(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID, input domain.UploadDocumentInput, fileSize int64, mimeType string, reader io.Reader) (*domain.Document, error)
	GetByID(ctx context.Context, actor *domain.Profile, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID) ([]domain.Document, error)
	Review(ctx context.Context, actor *domain.Profile, id uuid.UUID, input domain.ReviewDocumentInput) error
	Delete(ctx context.Context, actor *domain.Profile, id uuid.UUID) error
	SignedURL(ctx context.Context, actor *domain.Profile, id uuid.UUID) (string, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	docRepo      repository.DocumentRepository
	regRepo      repository.RegistrationRepository
	trackingRepo repository.TrackingRepository
	minioClient  *minio.Client
	cfg          *config.Config
	notifSvc     notification.Service
}

func NewService(docRepo repository.DocumentRepository, regRepo repository.RegistrationRepository, trackingRepo repository.TrackingRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		docRepo:      docRepo,
		regRepo:      regRepo,
		trackingRepo: trackingRepo,
		minioClient:  minioClient,
		cfg:          cfg,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

// Upload validates the declared size and media type before anything is
// written: at most 10 MiB, PDF or JPEG. The blob goes to storage first
// and the metadata row second; a failed row insert leaves the blob
// behind (upload is at-least-once, the row is authoritative).
func (s *service) Upload(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID, input domain.UploadDocumentInput, fileSize int64, mimeType string, reader io.Reader) (*domain.Document, error) {
	if input.DocumentName == "" || input.DocumentType == "" {
		return nil, fmt.Errorf("document name and type are required: %w", domain.ErrValidation)
	}
	if fileSize <= 0 || fileSize > domain.MaxDocumentSize {
		return nil, fmt.Errorf("file size %d exceeds the 10 MiB limit: %w", fileSize, domain.ErrValidation)
	}
	if !domain.AllowedDocumentTypes[mimeType] {
		return nil, fmt.Errorf("media type %q is not accepted (PDF or JPEG only): %w", mimeType, domain.ErrValidation)
	}

	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("registration %s: %w", registrationID, domain.ErrNotFound)
	}
	if reg.UserID != actor.ID && !actor.Role.IsStaff() {
		return nil, fmt.Errorf("not your registration: %w", domain.ErrForbidden)
	}

	docID := uuid.New()
	storagePath := fmt.Sprintf("%s/%s_%s", reg.ID, docID, sanitizeFileName(input.DocumentName))

	if _, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	}); err != nil {
		return nil, fmt.Errorf("storing document: %w", domain.ErrUnavailable)
	}

	status := domain.DocStatusSent
	doc := &domain.Document{
		ID:             docID,
		RegistrationID: reg.ID,
		UserID:         reg.UserID,
		DocumentName:   input.DocumentName,
		DocumentType:   input.DocumentType,
		FilePath:       &storagePath,
		FileType:       &mimeType,
		FileSize:       &fileSize,
		Status:         &status,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	entry := &domain.TrackingEntry{
		ID:             uuid.New(),
		RegistrationID: reg.ID,
		UserID:         reg.UserID,
		UpdatedBy:      actor.ID,
		Status:         domain.DocStatusSent,
		Message:        &input.DocumentName,
	}
	if err := s.trackingRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return doc, nil
}

func (s *service) GetByID(ctx context.Context, actor *domain.Profile, id uuid.UUID) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	if doc.UserID != actor.ID && !actor.Role.IsStaff() {
		return nil, fmt.Errorf("not your document: %w", domain.ErrForbidden)
	}
	return doc, nil
}

func (s *service) List(ctx context.Context, actor *domain.Profile, registrationID uuid.UUID) ([]domain.Document, error) {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("registration %s: %w", registrationID, domain.ErrNotFound)
	}
	if reg.UserID != actor.ID && !actor.Role.IsStaff() {
		return nil, fmt.Errorf("not your registration: %w", domain.ErrForbidden)
	}

	return s.docRepo.ListByRegistration(ctx, registrationID)
}

// Review sets the document sub-status and mirrors the decision into the
// tracking ledger as a pseudo-status entry.
func (s *service) Review(ctx context.Context, actor *domain.Profile, id uuid.UUID, input domain.ReviewDocumentInput) error {
	if !actor.Role.IsStaff() {
		return fmt.Errorf("only staff may review documents: %w", domain.ErrForbidden)
	}

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	status := domain.DocStatusRejected
	if input.Approve {
		status = domain.DocStatusApproved
	}

	if err := s.docRepo.UpdateStatus(ctx, id, status, input.Observations); err != nil {
		return err
	}

	entry := &domain.TrackingEntry{
		ID:             uuid.New(),
		RegistrationID: doc.RegistrationID,
		UserID:         doc.UserID,
		UpdatedBy:      actor.ID,
		Status:         status,
		Message:        &doc.DocumentName,
	}
	if err := s.trackingRepo.Create(ctx, entry); err != nil {
		return err
	}

	if s.notifSvc != nil {
		go func() {
			_ = s.notifSvc.NotifyDocumentReviewed(context.Background(), doc, status)
		}()
	}
	return nil
}

// Delete removes only the metadata row, and only for the owning citizen.
// Staff use Review to reject a document instead of deleting it.
func (s *service) Delete(ctx context.Context, actor *domain.Profile, id uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	if doc.UserID != actor.ID {
		return fmt.Errorf("only the owner may delete a document: %w", domain.ErrForbidden)
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	entry := &domain.TrackingEntry{
		ID:             uuid.New(),
		RegistrationID: doc.RegistrationID,
		UserID:         doc.UserID,
		UpdatedBy:      actor.ID,
		Status:         domain.DocStatusRemoved,
		Message:        &doc.DocumentName,
	}
	return s.trackingRepo.Create(ctx, entry)
}

func (s *service) SignedURL(ctx context.Context, actor *domain.Profile, id uuid.UUID) (string, error) {
	doc, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return "", err
	}
	if doc.FilePath == nil || *doc.FilePath == "" {
		return "", fmt.Errorf("document %s has no stored file: %w", id, domain.ErrNotFound)
	}

	storagePath := NormalizeStoragePath(*doc.FilePath)

	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", downloadName(doc)))

	signed, err := s.minioClient.PresignedGetObject(ctx, s.cfg.MinIOBucket, storagePath, s.cfg.SignedURLTTL, reqParams)
	if err != nil {
		return "", fmt.Errorf("issuing signed url: %w", domain.ErrUnavailable)
	}
	return signed.String(), nil
}

// NormalizeStoragePath strips leading slashes and the legacy
// "documents/" bucket prefix older rows carry.
func NormalizeStoragePath(p string) string {
	p = strings.TrimLeft(strings.TrimSpace(p), "/")
	if strings.HasPrefix(strings.ToLower(p), "documents/") {
		p = p[len("documents/"):]
	}
	return p
}

func downloadName(doc *domain.Document) string {
	if doc.DocumentName != "" {
		name := sanitizeFileName(doc.DocumentName)
		if !strings.Contains(name, ".") && doc.FilePath != nil {
			if ext := path.Ext(*doc.FilePath); ext != "" {
				name += ext
			}
		}
		return name
	}
	if doc.FilePath != nil {
		return path.Base(*doc.FilePath)
	}
	return "arquivo"
}

func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
