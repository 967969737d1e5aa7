package service

import (
	"context"
	"time"

	"harustay/internal/database"
	"harustay/internal/domain"
	"harustay/internal/metrics"
	"harustay/internal/models"

	"github.com/rs/zerolog"
)

// AvailabilityService computes which rooms are free for a requested stay.
type AvailabilityService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewAvailabilityService(repo domain.Repository, logger *zerolog.Logger) *AvailabilityService {
	return &AvailabilityService{
		repo:   repo,
		logger: logger,
	}
}

// AvailableRooms returns the bookable rooms with no conflicting active
// reservation and no blocked date anywhere in [checkIn, checkOut), sorted
// by display order. Pure read.
func (s *AvailabilityService) AvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]models.Room, error) {
	if !checkIn.Before(checkOut) {
		return nil, database.ErrInvalidDateRange
	}

	metrics.IncAvailabilityQuery()

	rooms, err := s.repo.GetBookableRooms(ctx)
	if err != nil {
		return nil, err
	}

	conflicting, err := s.conflictingRoomIDs(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	blocked, err := s.repo.GetBlockedRoomIDs(ctx, models.EnumerateNights(checkIn, checkOut))
	if err != nil {
		return nil, err
	}

	// Rooms arrive sorted from the store; filtering preserves the order.
	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if conflicting[room.ID] || blocked[room.ID] {
			continue
		}
		available = append(available, room)
	}
	return available, nil
}

// IsRoomAvailable reports whether one specific room is free for the range.
func (s *AvailabilityService) IsRoomAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	rooms, err := s.AvailableRooms(ctx, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	for _, room := range rooms {
		if room.ID == roomID {
			return true, nil
		}
	}
	return false, nil
}

// conflictingRoomIDs collects room ids with at least one active reservation
// overlapping the query range. Cancelled and completed reservations never
// block future availability.
func (s *AvailabilityService) conflictingRoomIDs(ctx context.Context, checkIn, checkOut time.Time) (map[int64]bool, error) {
	reservations, err := s.repo.GetActiveReservations(ctx)
	if err != nil {
		return nil, err
	}

	conflicting := make(map[int64]bool)
	for _, r := range reservations {
		if r.Overlaps(checkIn, checkOut) {
			conflicting[r.RoomID] = true
		}
	}
	return conflicting, nil
}
