package service

import (
	"context"
	"testing"
	"time"

	"harustay/internal/database"
	"harustay/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAvailableRooms(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	rooms := []models.Room{
		{ID: 1, Name: "온돌방", IsBookable: true, SortOrder: 1},
		{ID: 2, Name: "별채", IsBookable: true, SortOrder: 2},
		{ID: 3, Name: "다락방", IsBookable: true, SortOrder: 3},
	}

	// Room 1 is occupied 2026-02-10 .. 2026-02-12.
	active := []models.Reservation{
		{
			ID:       "res-1",
			RoomID:   1,
			CheckIn:  date("2026-02-10"),
			CheckOut: date("2026-02-12"),
			Status:   models.StatusConfirmed,
		},
	}

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		blocked  map[int64]bool
		wantIDs  []int64
	}{
		{
			name:     "overlap excludes the occupied room",
			checkIn:  "2026-02-11",
			checkOut: "2026-02-13",
			wantIDs:  []int64{2, 3},
		},
		{
			name:     "checkout day frees the room for a same-day check-in",
			checkIn:  "2026-02-12",
			checkOut: "2026-02-14",
			wantIDs:  []int64{1, 2, 3},
		},
		{
			name:     "checkout on the guest's check-in day does not conflict",
			checkIn:  "2026-02-08",
			checkOut: "2026-02-10",
			wantIDs:  []int64{1, 2, 3},
		},
		{
			name:     "fully contained stay conflicts",
			checkIn:  "2026-02-10",
			checkOut: "2026-02-11",
			wantIDs:  []int64{2, 3},
		},
		{
			name:     "blocked date removes the room",
			checkIn:  "2026-03-01",
			checkOut: "2026-03-03",
			blocked:  map[int64]bool{2: true},
			wantIDs:  []int64{1, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			repo.On("GetBookableRooms", ctx).Return(rooms, nil)
			repo.On("GetActiveReservations", ctx).Return(active, nil)
			blocked := tt.blocked
			if blocked == nil {
				blocked = map[int64]bool{}
			}
			repo.On("GetBlockedRoomIDs", ctx, mock.Anything).Return(blocked, nil)

			svc := NewAvailabilityService(repo, &logger)
			got, err := svc.AvailableRooms(ctx, date(tt.checkIn), date(tt.checkOut))
			require.NoError(t, err)

			ids := make([]int64, 0, len(got))
			for _, room := range got {
				ids = append(ids, room.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestAvailableRoomsInvalidRange(t *testing.T) {
	logger := zerolog.Nop()
	svc := NewAvailabilityService(new(mockRepo), &logger)
	ctx := context.Background()

	_, err := svc.AvailableRooms(ctx, date("2026-02-12"), date("2026-02-10"))
	assert.ErrorIs(t, err, database.ErrInvalidDateRange)

	// Zero-length range is rejected too.
	_, err = svc.AvailableRooms(ctx, date("2026-02-10"), date("2026-02-10"))
	assert.ErrorIs(t, err, database.ErrInvalidDateRange)
}

func TestIsRoomAvailable(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(mockRepo)
	repo.On("GetBookableRooms", ctx).Return([]models.Room{
		{ID: 1, IsBookable: true},
	}, nil)
	repo.On("GetActiveReservations", ctx).Return([]models.Reservation{}, nil)
	repo.On("GetBlockedRoomIDs", ctx, mock.Anything).Return(map[int64]bool{}, nil)

	svc := NewAvailabilityService(repo, &logger)

	ok, err := svc.IsRoomAvailable(ctx, 1, date("2026-05-01"), date("2026-05-03"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsRoomAvailable(ctx, 99, date("2026-05-01"), date("2026-05-03"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAvailableRoomsIgnoresCancelled(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(mockRepo)
	repo.On("GetBookableRooms", ctx).Return([]models.Room{{ID: 1, IsBookable: true}}, nil)
	// The active-reservation query already filters terminal statuses; the
	// service sees none for a cancelled booking.
	repo.On("GetActiveReservations", ctx).Return([]models.Reservation{}, nil)
	repo.On("GetBlockedRoomIDs", ctx, mock.Anything).Return(map[int64]bool{}, nil)

	svc := NewAvailabilityService(repo, &logger)
	got, err := svc.AvailableRooms(ctx, date("2026-02-10"), date("2026-02-12"))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
