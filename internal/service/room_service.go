package service

import (
	"context"
	"fmt"
	"sync"

	"harustay/internal/database"
	"harustay/internal/domain"
	"harustay/internal/models"

	"github.com/rs/zerolog"
)

// RoomService serves the room catalog from an in-memory snapshot refreshed
// after every admin write. The catalog is small and read-heavy.
type RoomService struct {
	repo   domain.Repository
	logger *zerolog.Logger

	mu    sync.RWMutex
	rooms []models.Room
}

func NewRoomService(repo domain.Repository, logger *zerolog.Logger) *RoomService {
	return &RoomService{
		repo:   repo,
		logger: logger,
	}
}

// Refresh reloads the snapshot from the store.
func (s *RoomService) Refresh(ctx context.Context) error {
	rooms, err := s.repo.GetAllRooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rooms: %w", err)
	}

	s.mu.Lock()
	s.rooms = rooms
	s.mu.Unlock()

	s.logger.Debug().Int("count", len(rooms)).Msg("room catalog refreshed")
	return nil
}

func (s *RoomService) snapshot(ctx context.Context) ([]models.Room, error) {
	s.mu.RLock()
	rooms := s.rooms
	s.mu.RUnlock()
	if rooms != nil {
		return rooms, nil
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms, nil
}

// ListBookableRooms returns the public catalog in display order.
func (s *RoomService) ListBookableRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	bookable := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.IsBookable {
			bookable = append(bookable, room)
		}
	}
	return bookable, nil
}

// ListAllRooms returns every room, hidden ones included, for the admin view.
func (s *RoomService) ListAllRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Room, len(rooms))
	copy(out, rooms)
	return out, nil
}

func (s *RoomService) GetRoomByID(ctx context.Context, id int64) (*models.Room, error) {
	rooms, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].ID == id {
			room := rooms[i]
			return &room, nil
		}
	}
	return nil, database.ErrRoomNotFound
}

// UpdateRoom applies a sparse admin patch and refreshes the snapshot.
func (s *RoomService) UpdateRoom(ctx context.Context, id int64, patch *models.RoomPatch) error {
	if patch == nil || patch.IsEmpty() {
		return fmt.Errorf("empty room update")
	}
	if patch.PricePerNight != nil && *patch.PricePerNight <= 0 {
		return fmt.Errorf("price per night must be positive")
	}
	if patch.Capacity != nil && *patch.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive")
	}

	if err := s.repo.UpdateRoomFields(ctx, id, patch); err != nil {
		return err
	}

	s.logger.Info().Int64("room_id", id).Msg("room updated")
	return s.Refresh(ctx)
}
