package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/middleware"
	"cadastro-social/internal/service/document"
)

type DocumentHandler struct {
	docService document.Service
}

func NewDocumentHandler(docService document.Service) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regID, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	input := domain.UploadDocumentInput{
		DocumentName: c.FormValue("document_name", file.Filename),
		DocumentType: c.FormValue("document_type"),
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	doc, err := h.docService.Upload(c.Context(), user, regID, input, file.Size, mimeType, fileReader)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regID, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	docs, err := h.docService.List(c.Context(), user, regID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(docs)
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	docID, err := uuid.Parse(c.Params("documentId"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	doc, err := h.docService.GetByID(c.Context(), user, docID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(doc)
}

func (h *DocumentHandler) Review(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	docID, err := uuid.Parse(c.Params("documentId"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	var input domain.ReviewDocumentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.docService.Review(c.Context(), user, docID, input); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Document reviewed"})
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	docID, err := uuid.Parse(c.Params("documentId"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	if err := h.docService.Delete(c.Context(), user, docID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Download redirects to a short-lived signed storage URL instead of
// proxying the blob.
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	docID, err := uuid.Parse(c.Params("documentId"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	signedURL, err := h.docService.SignedURL(c.Context(), user, docID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": signedURL})
}
