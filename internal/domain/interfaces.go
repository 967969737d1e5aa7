package domain

import (
	"context"
	"time"

	"harustay/internal/models"
)

type Repository interface {
	SeedRooms(ctx context.Context, rooms []models.Room) error
	GetAllRooms(ctx context.Context) ([]models.Room, error)
	GetBookableRooms(ctx context.Context) ([]models.Room, error)
	GetRoomByID(ctx context.Context, id int64) (*models.Room, error)
	UpdateRoomFields(ctx context.Context, id int64, patch *models.RoomPatch) error

	CreateReservation(ctx context.Context, r *models.Reservation) error
	CreateReservationChecked(ctx context.Context, r *models.Reservation) error
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id, status string) error
	GetActiveReservations(ctx context.Context) ([]models.Reservation, error)
	GetReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	GetReservationStats(ctx context.Context) (*models.ReservationStats, error)
	GetDailyReservations(ctx context.Context, start, end time.Time) (map[string][]models.Reservation, error)

	CreateBlockedDate(ctx context.Context, bd *models.BlockedDate) error
	DeleteBlockedDate(ctx context.Context, id int64) error
	GetBlockedDates(ctx context.Context, roomID int64) ([]models.BlockedDate, error)
	GetBlockedRoomIDs(ctx context.Context, dates []time.Time) (map[int64]bool, error)
}

type SessionRepository interface {
	SaveSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type SyncWorker interface {
	EnqueueTask(ctx context.Context, taskType string, reservationID string, r *models.Reservation, status string) error
}

type AvailabilityService interface {
	AvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]models.Room, error)
	IsRoomAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error)
}

type ReservationService interface {
	CreateReservation(ctx context.Context, r *models.Reservation) error
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) error
	GuestCancel(ctx context.Context, id, email string) error
	Stats(ctx context.Context) (*models.ReservationStats, error)
}

type RoomService interface {
	ListBookableRooms(ctx context.Context) ([]models.Room, error)
	ListAllRooms(ctx context.Context) ([]models.Room, error)
	GetRoomByID(ctx context.Context, id int64) (*models.Room, error)
	UpdateRoom(ctx context.Context, id int64, patch *models.RoomPatch) error
}

type SessionManager interface {
	Login(ctx context.Context, password string) (string, error)
	Validate(ctx context.Context, token string) (bool, error)
	Logout(ctx context.Context, token string) error
}
