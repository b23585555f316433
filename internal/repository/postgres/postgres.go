package postgres

import (
	"database/sql"

	"crewvar-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.OnboardingRepository
	repository.ConnectionRepository
	repository.ShipRepository
	repository.NotificationRepository
	repository.DeviceTokenRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		OnboardingRepository:   NewOnboardingRepository(db),
		ConnectionRepository:   NewConnectionRepository(db),
		ShipRepository:         NewShipRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		DeviceTokenRepository:  NewDeviceTokenRepository(db),
	}
}
