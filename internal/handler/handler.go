package handler

import (
	"github.com/gofiber/fiber/v2"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Registration *RegistrationHandler
	Household    *HouseholdHandler
	Document     *DocumentHandler
	Tracking     *TrackingHandler
	Message      *MessageHandler
	RoleRequest  *RoleRequestHandler
	Notification *NotificationHandler
	Dashboard    *DashboardHandler
	Dossier      *DossierHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Profile:      NewProfileHandler(services.Profile),
		Registration: NewRegistrationHandler(services.Registration),
		Household:    NewHouseholdHandler(services.Household),
		Document:     NewDocumentHandler(services.Document),
		Tracking:     NewTrackingHandler(services.Tracking),
		Message:      NewMessageHandler(services.Message),
		RoleRequest:  NewRoleRequestHandler(services.RoleRequest),
		Notification: NewNotificationHandler(services.Notification),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		Dossier:      NewDossierHandler(services.Dossier),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
