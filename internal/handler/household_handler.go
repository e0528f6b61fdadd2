package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/middleware"
	"cadastro-social/internal/service/household"
)

type HouseholdHandler struct {
	householdService household.Service
}

func NewHouseholdHandler(householdService household.Service) *HouseholdHandler {
	return &HouseholdHandler{householdService: householdService}
}

func (h *HouseholdHandler) Add(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regID, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	var input domain.CreateHouseholdMemberInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	member, err := h.householdService.Add(c.Context(), user, regID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(member)
}

func (h *HouseholdHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regID, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	members, err := h.householdService.List(c.Context(), user, regID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(members)
}

func (h *HouseholdHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return middleware.BadRequest("Invalid member ID")
	}

	var input domain.UpdateHouseholdMemberInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	member, err := h.householdService.Update(c.Context(), user, memberID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(member)
}

func (h *HouseholdHandler) Remove(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return middleware.BadRequest("Invalid member ID")
	}

	if err := h.householdService.Remove(c.Context(), user, memberID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
