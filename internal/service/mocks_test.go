package service

import (
	"context"
	"time"

	"harustay/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) SeedRooms(ctx context.Context, rooms []models.Room) error {
	return m.Called(ctx, rooms).Error(0)
}
func (m *mockRepo) GetAllRooms(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}
func (m *mockRepo) GetBookableRooms(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}
func (m *mockRepo) GetRoomByID(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}
func (m *mockRepo) UpdateRoomFields(ctx context.Context, id int64, patch *models.RoomPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *mockRepo) CreateReservation(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockRepo) CreateReservationChecked(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockRepo) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}
func (m *mockRepo) UpdateReservationStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockRepo) GetActiveReservations(ctx context.Context) ([]models.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}
func (m *mockRepo) GetReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}
func (m *mockRepo) GetReservationStats(ctx context.Context) (*models.ReservationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationStats), args.Error(1)
}
func (m *mockRepo) GetDailyReservations(ctx context.Context, start, end time.Time) (map[string][]models.Reservation, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]models.Reservation), args.Error(1)
}

func (m *mockRepo) CreateBlockedDate(ctx context.Context, bd *models.BlockedDate) error {
	return m.Called(ctx, bd).Error(0)
}
func (m *mockRepo) DeleteBlockedDate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) GetBlockedDates(ctx context.Context, roomID int64) ([]models.BlockedDate, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlockedDate), args.Error(1)
}
func (m *mockRepo) GetBlockedRoomIDs(ctx context.Context, dates []time.Time) (map[int64]bool, error) {
	args := m.Called(ctx, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

type mockWorker struct {
	mock.Mock
}

func (m *mockWorker) EnqueueTask(ctx context.Context, taskType string, reservationID string, r *models.Reservation, status string) error {
	return m.Called(ctx, taskType, reservationID, r, status).Error(0)
}
