package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Profile      ProfileRepository
	Registration RegistrationRepository
	Household    HouseholdRepository
	Document     DocumentRepository
	Tracking     TrackingRepository
	Message      MessageRepository
	RoleRequest  RoleRequestRepository
	Notification NotificationRepository
	Terms        TermsRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Profile:      NewProfileRepository(db),
		Registration: NewRegistrationRepository(db),
		Household:    NewHouseholdRepository(db),
		Document:     NewDocumentRepository(db),
		Tracking:     NewTrackingRepository(db),
		Message:      NewMessageRepository(db),
		RoleRequest:  NewRoleRequestRepository(db),
		Notification: NewNotificationRepository(db),
		Terms:        NewTermsRepository(db),
		Session:      NewSessionRepository(db),
	}
}
