package handler

import (
	"github.com/gofiber/fiber/v2"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/middleware"
	"cadastro-social/internal/service/message"
)

type MessageHandler struct {
	msgService message.Service
}

func NewMessageHandler(msgService message.Service) *MessageHandler {
	return &MessageHandler{msgService: msgService}
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regID, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	var input domain.CreateMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	msg, err := h.msgService.Send(c.Context(), user, regID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *MessageHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	regID, err := parseRegistrationID(c)
	if err != nil {
		return err
	}

	msgs, err := h.msgService.List(c.Context(), user, regID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(msgs)
}
