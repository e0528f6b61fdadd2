package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"cadastro-social/internal/middleware"
	"cadastro-social/internal/service/dossier"
)

type DossierHandler struct {
	dossierService dossier.Service
}

func NewDossierHandler(dossierService dossier.Service) *DossierHandler {
	return &DossierHandler{dossierService: dossierService}
}

func (h *DossierHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regID, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	d, err := h.dossierService.Build(c.Context(), user, regID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(d)
}

func (h *DossierHandler) ExportHTML(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regID, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	d, err := h.dossierService.Build(c.Context(), user, regID)
	if err != nil {
		return err
	}

	html, err := h.dossierService.RenderHTML(d)
	if err != nil {
		return err
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(html)
}

func (h *DossierHandler) ExportZip(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regID, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	name, archive, err := h.dossierService.BuildZip(c.Context(), user, regID)
	if err != nil {
		return err
	}

	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	c.Set("Content-Type", "application/zip")
	return c.Send(archive)
}
