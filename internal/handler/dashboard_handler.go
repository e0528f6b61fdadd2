package handler

import (
	"github.com/gofiber/fiber/v2"

	"cadastro-social/internal/middleware"
	"cadastro-social/internal/service/dashboard"
)

type DashboardHandler struct {
	dashService dashboard.Service
}

func NewDashboardHandler(dashService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashService: dashService}
}

func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	summary, err := h.dashService.Summary(c.Context(), user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
