package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/middleware"
	"cadastro-social/internal/service/profile"
)

type ProfileHandler struct {
	profileService profile.Service
}

func NewProfileHandler(profileService profile.Service) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	idStr := c.Params("profileId")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return middleware.BadRequest("Invalid profile ID")
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}
	if user.ID != id && !user.Role.IsStaff() {
		return middleware.Forbidden("Access denied")
	}

	result, err := h.profileService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.profileService.Update(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProfileHandler) AdminUpdate(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := uuid.Parse(c.Params("profileId"))
	if err != nil {
		return middleware.BadRequest("Invalid profile ID")
	}

	var input domain.AdminUpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.profileService.AdminUpdate(c.Context(), user, id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProfileHandler) ListSocialWorkers(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	workers, err := h.profileService.ListSocialWorkers(c.Context(), user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(workers)
}

func (h *ProfileHandler) ListAll(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	profiles, err := h.profileService.ListAll(c.Context(), user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profiles)
}
