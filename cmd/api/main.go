package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"cadastro-social/internal/config"
	"cadastro-social/internal/handler"
	"cadastro-social/internal/middleware"
	"cadastro-social/internal/pkg/i18n"
	"cadastro-social/internal/repository"
	"cadastro-social/internal/service"
	"cadastro-social/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := i18n.LoadStatusLabels("locales"); err != nil {
		log.Printf("Warning: failed to load status labels: %v (raw statuses will be shown)", err)
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (document upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    12 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// Real client IP (behind Cloudflare) and User-Agent, used by the
	// terms agreement audit trail.
	app.Use(middleware.RequestInfo())

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.Refresh)
	authGroup.Post("/logout", h.Auth.Logout)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/auth/me", h.Auth.Me)

	profiles := protected.Group("/profiles")
	profiles.Put("/me", h.Profile.UpdateMe)
	profiles.Get("/social-workers", middleware.RequireStaff(), h.Profile.ListSocialWorkers)
	profiles.Get("/", middleware.RequireRole("admin"), h.Profile.ListAll)
	profiles.Get("/:profileId", h.Profile.Get)
	profiles.Put("/:profileId", middleware.RequireRole("admin"), h.Profile.AdminUpdate)

	registrations := protected.Group("/registrations")
	registrations.Post("/", h.Registration.Create)
	registrations.Get("/me", h.Registration.GetMine)
	registrations.Get("/", middleware.RequireStaff(), h.Registration.List)
	registrations.Get("/my-cases", middleware.RequireStaff(), h.Registration.MyCases)
	registrations.Get("/:registrationId", h.Registration.Get)
	registrations.Put("/:registrationId", h.Registration.Update)
	registrations.Patch("/:registrationId/status", middleware.RequireStaff(), h.Registration.UpdateStatus)
	registrations.Patch("/:registrationId/assign", middleware.RequireRole("admin"), h.Registration.AssignWorker)
	registrations.Delete("/:registrationId", middleware.RequireRole("admin"), h.Registration.Delete)
	registrations.Post("/:registrationId/terms", h.Registration.AcceptTerms)

	household := protected.Group("/registrations/:registrationId/household")
	household.Post("/", h.Household.Add)
	household.Get("/", h.Household.List)
	household.Put("/:memberId", h.Household.Update)
	household.Delete("/:memberId", h.Household.Remove)

	documents := protected.Group("/registrations/:registrationId/documents")
	documents.Post("/", h.Document.Upload)
	documents.Get("/", h.Document.List)

	docOps := protected.Group("/documents")
	docOps.Get("/:documentId", h.Document.Get)
	docOps.Patch("/:documentId/review", middleware.RequireStaff(), h.Document.Review)
	docOps.Delete("/:documentId", h.Document.Delete)
	docOps.Get("/:documentId/download", h.Document.Download)

	tracking := protected.Group("/registrations/:registrationId/tracking")
	tracking.Get("/", h.Tracking.List)
	tracking.Post("/", middleware.RequireStaff(), h.Tracking.Append)

	messages := protected.Group("/registrations/:registrationId/messages")
	messages.Post("/", h.Message.Send)
	messages.Get("/", h.Message.List)

	roleRequests := protected.Group("/role-requests")
	roleRequests.Post("/", h.RoleRequest.Create)
	roleRequests.Get("/me", h.RoleRequest.ListMine)
	roleRequests.Get("/", middleware.RequireRole("admin"), h.RoleRequest.List)
	roleRequests.Post("/:requestId/review", middleware.RequireRole("admin"), h.RoleRequest.Review)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.CountUnread)
	notifications.Patch("/:notificationId/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	dashboard := protected.Group("/dashboard", middleware.RequireStaff())
	dashboard.Get("/summary", h.Dashboard.Summary)

	dossier := protected.Group("/registrations/:registrationId/dossier", middleware.RequireStaff())
	dossier.Get("/", h.Dossier.Get)
	dossier.Get("/html", h.Dossier.ExportHTML)
	dossier.Get("/zip", h.Dossier.ExportZip)
}
