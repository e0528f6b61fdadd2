package document_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cadastro-social/internal/config"
	"cadastro-social/internal/domain"
	"cadastro-social/internal/service/document"
	"cadastro-social/tests/mocks"
)

func newService() (document.Service, *mocks.DocumentRepository, *mocks.RegistrationRepository, *mocks.TrackingRepository) {
	docRepo := new(mocks.DocumentRepository)
	regRepo := new(mocks.RegistrationRepository)
	trackingRepo := new(mocks.TrackingRepository)
	svc := document.NewService(docRepo, regRepo, trackingRepo, nil, &config.Config{MinIOBucket: "cadastro-documentos"})
	return svc, docRepo, regRepo, trackingRepo
}

func citizen() *domain.Profile {
	return &domain.Profile{ID: uuid.New(), Email: "maria@example.com", Role: domain.RoleCitizen}
}

func worker() *domain.Profile {
	return &domain.Profile{ID: uuid.New(), Email: "ana@prefeitura.gov.br", Role: domain.RoleSocialWorker}
}

func strPtr(s string) *string { return &s }

func TestDocumentService_UploadValidation(t *testing.T) {
	ctx := context.Background()
	regID := uuid.New()
	input := domain.UploadDocumentInput{DocumentName: "RG frente", DocumentType: "identidade"}

	t.Run("over the size limit", func(t *testing.T) {
		svc, _, _, _ := newService()

		_, err := svc.Upload(ctx, citizen(), regID, input, 11*1024*1024, "application/pdf", bytes.NewReader(nil))

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("exactly at the limit passes the size check", func(t *testing.T) {
		svc, _, regRepo, _ := newService()

		// Ownership is checked after validation; a not-found here proves
		// the 10 MiB payload got past the size gate.
		regRepo.On("GetByID", ctx, regID).Return(nil, nil).Once()

		_, err := svc.Upload(ctx, citizen(), regID, input, 10*1024*1024, "application/pdf", bytes.NewReader(nil))

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("rejects media type outside the allow list", func(t *testing.T) {
		svc, _, _, _ := newService()

		for _, mime := range []string{"text/plain", "image/png", "application/zip", ""} {
			_, err := svc.Upload(ctx, citizen(), regID, input, 1024, mime, bytes.NewReader(nil))
			assert.ErrorIs(t, err, domain.ErrValidation, mime)
		}
	})

	t.Run("rejects empty file", func(t *testing.T) {
		svc, _, _, _ := newService()

		_, err := svc.Upload(ctx, citizen(), regID, input, 0, "application/pdf", bytes.NewReader(nil))

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("requires name and type", func(t *testing.T) {
		svc, _, _, _ := newService()

		_, err := svc.Upload(ctx, citizen(), regID, domain.UploadDocumentInput{}, 1024, "image/jpeg", bytes.NewReader(nil))

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("stranger cannot upload to the case", func(t *testing.T) {
		svc, _, regRepo, _ := newService()

		regRepo.On("GetByID", ctx, regID).Return(&domain.Registration{ID: regID, UserID: uuid.New()}, nil).Once()

		_, err := svc.Upload(ctx, citizen(), regID, input, 1024, "image/jpeg", bytes.NewReader(nil))

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestDocumentService_Review(t *testing.T) {
	ctx := context.Background()
	docID := uuid.New()

	t.Run("citizen forbidden", func(t *testing.T) {
		svc, _, _, _ := newService()

		err := svc.Review(ctx, citizen(), docID, domain.ReviewDocumentInput{Approve: true})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("approval mirrors into the ledger", func(t *testing.T) {
		svc, docRepo, _, trackingRepo := newService()
		actor := worker()
		owner := uuid.New()
		regID := uuid.New()

		docRepo.On("GetByID", ctx, docID).Return(&domain.Document{
			ID: docID, RegistrationID: regID, UserID: owner, DocumentName: "RG frente",
		}, nil).Once()
		docRepo.On("UpdateStatus", ctx, docID, domain.DocStatusApproved, (*string)(nil)).Return(nil).Once()
		trackingRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.TrackingEntry) bool {
			return e.Status == domain.DocStatusApproved && e.RegistrationID == regID && e.UpdatedBy == actor.ID
		})).Return(nil).Once()

		err := svc.Review(ctx, actor, docID, domain.ReviewDocumentInput{Approve: true})

		assert.NoError(t, err)
		docRepo.AssertExpectations(t)
		trackingRepo.AssertExpectations(t)
	})

	t.Run("rejection carries observations", func(t *testing.T) {
		svc, docRepo, _, trackingRepo := newService()
		obs := strPtr("Documento ilegível")

		docRepo.On("GetByID", ctx, docID).Return(&domain.Document{ID: docID, RegistrationID: uuid.New(), UserID: uuid.New(), DocumentName: "CPF"}, nil).Once()
		docRepo.On("UpdateStatus", ctx, docID, domain.DocStatusRejected, obs).Return(nil).Once()
		trackingRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.TrackingEntry) bool {
			return e.Status == domain.DocStatusRejected
		})).Return(nil).Once()

		err := svc.Review(ctx, worker(), docID, domain.ReviewDocumentInput{Approve: false, Observations: obs})

		assert.NoError(t, err)
		docRepo.AssertExpectations(t)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	docID := uuid.New()

	t.Run("only the owner may delete", func(t *testing.T) {
		svc, docRepo, _, _ := newService()

		docRepo.On("GetByID", ctx, docID).Return(&domain.Document{ID: docID, UserID: uuid.New()}, nil).Twice()

		assert.ErrorIs(t, svc.Delete(ctx, citizen(), docID), domain.ErrForbidden)
		// Staff go through Review instead of deleting.
		assert.ErrorIs(t, svc.Delete(ctx, worker(), docID), domain.ErrForbidden)
	})

	t.Run("owner delete appends removal entry", func(t *testing.T) {
		svc, docRepo, _, trackingRepo := newService()
		actor := citizen()
		regID := uuid.New()

		docRepo.On("GetByID", ctx, docID).Return(&domain.Document{
			ID: docID, RegistrationID: regID, UserID: actor.ID, DocumentName: "Comprovante",
		}, nil).Once()
		docRepo.On("Delete", ctx, docID).Return(nil).Once()
		trackingRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.TrackingEntry) bool {
			return e.Status == domain.DocStatusRemoved && e.RegistrationID == regID
		})).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, actor, docID))
		trackingRepo.AssertExpectations(t)
	})
}

func TestNormalizeStoragePath(t *testing.T) {
	cases := map[string]string{
		"documents/abc/file.pdf":  "abc/file.pdf",
		"/documents/abc/file.pdf": "abc/file.pdf",
		"abc/file.pdf":            "abc/file.pdf",
		" Documents/x.jpg":        "x.jpg",
		"abc/documents.pdf":       "abc/documents.pdf",
	}
	for in, want := range cases {
		assert.Equal(t, want, document.NormalizeStoragePath(in), in)
	}
}
