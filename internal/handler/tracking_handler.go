package handler

import (
	"github.com/gofiber/fiber/v2"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/middleware"
	"cadastro-social/internal/service/tracking"
)

type TrackingHandler struct {
	trackingService tracking.Service
}

func NewTrackingHandler(trackingService tracking.Service) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

func (h *TrackingHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regID, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	order := domain.TrackingOrder(c.Query("order", string(domain.TrackingAscending)))

	entries, err := h.trackingService.List(c.Context(), user, regID, order)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}

func (h *TrackingHandler) Append(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regID, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	var input domain.AppendTrackingInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	entry, err := h.trackingService.Append(c.Context(), user, regID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}
