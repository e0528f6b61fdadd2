package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"cadastro-social/internal/config"
	"cadastro-social/internal/repository"
	"cadastro-social/internal/service/auth"
	"cadastro-social/internal/service/dashboard"
	"cadastro-social/internal/service/document"
	"cadastro-social/internal/service/dossier"
	"cadastro-social/internal/service/email"
	"cadastro-social/internal/service/household"
	"cadastro-social/internal/service/message"
	"cadastro-social/internal/service/notification"
	"cadastro-social/internal/service/profile"
	"cadastro-social/internal/service/registration"
	"cadastro-social/internal/service/rolerequest"
	"cadastro-social/internal/service/tracking"
)

// Services bundles every service for handler wiring.
type Services struct {
	Auth         auth.Service
	Profile      profile.Service
	Registration registration.Service
	Household    household.Service
	Document     document.Service
	Tracking     tracking.Service
	Message      message.Service
	RoleRequest  rolerequest.Service
	Notification notification.Service
	Dashboard    dashboard.Service
	Dossier      dossier.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailSvc := email.NewService(cfg)
	notifSvc := notification.NewService(repos.Notification, repos.Profile, emailSvc)

	regSvc := registration.NewService(repos.Registration, repos.Profile, repos.Terms)
	regSvc.SetNotificationService(notifSvc)

	docSvc := document.NewService(repos.Document, repos.Registration, repos.Tracking, minioClient, cfg)
	docSvc.SetNotificationService(notifSvc)

	msgSvc := message.NewService(repos.Message, repos.Registration, repos.Profile, redisClient)
	msgSvc.SetNotificationService(notifSvc)

	roleSvc := rolerequest.NewService(repos.RoleRequest, repos.Profile)
	roleSvc.SetNotificationService(notifSvc)

	return &Services{
		Auth:         auth.NewService(repos.Profile, repos.Session, emailSvc, cfg),
		Profile:      profile.NewService(repos.Profile),
		Registration: regSvc,
		Household:    household.NewService(repos.Household, repos.Registration),
		Document:     docSvc,
		Tracking:     tracking.NewService(repos.Tracking, repos.Registration, repos.Profile),
		Message:      msgSvc,
		RoleRequest:  roleSvc,
		Notification: notifSvc,
		Dashboard:    dashboard.NewService(repos.Registration, redisClient),
		Dossier:      dossier.NewService(repos.Registration, repos.Household, repos.Document, repos.Tracking, repos.Message, repos.Terms, repos.Profile, minioClient, cfg),
		Email:        emailSvc,
	}
}
