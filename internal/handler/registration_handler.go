package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/middleware"
	"cadastro-social/internal/service/registration"
)

type RegistrationHandler struct {
	regService registration.Service
}

func NewRegistrationHandler(regService registration.Service) *RegistrationHandler {
	return &RegistrationHandler{regService: regService}
}

func parseRegistrationID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("registrationId"))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid registration ID")
	}
	return id, nil
}

func (h *RegistrationHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateRegistrationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	reg, err := h.regService.Create(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(reg)
}

func (h *RegistrationHandler) GetMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	reg, err := h.regService.GetMine(c.Context(), userID)
	if err != nil {
		return err
	}
	if reg == nil {
		return middleware.NotFound("No registration found")
	}

	return c.Status(fiber.StatusOK).JSON(reg)
}

func (h *RegistrationHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	reg, err := h.regService.GetByID(c.Context(), user, id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(reg)
}

func (h *RegistrationHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regs, err := h.regService.ListAll(c.Context(), user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(regs)
}

func (h *RegistrationHandler) MyCases(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regs, err := h.regService.MyCases(c.Context(), user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(regs)
}

func (h *RegistrationHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	var input domain.CreateRegistrationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	reg, err := h.regService.Update(c.Context(), user, id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(reg)
}

func (h *RegistrationHandler) UpdateStatus(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.regService.UpdateStatus(c.Context(), user, id, input); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Status updated"})
}

func (h *RegistrationHandler) AssignWorker(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	var input domain.AssignWorkerInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.regService.AssignWorker(c.Context(), user, id, input.SocialWorkerID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Social worker assigned"})
}

func (h *RegistrationHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	if err := h.regService.Delete(c.Context(), user, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RegistrationHandler) AcceptTerms(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	agreement, err := h.regService.AcceptTerms(c.Context(), user, id,
		middleware.GetIPAddress(c), middleware.GetUserAgent(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(agreement)
}
