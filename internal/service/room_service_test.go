package service

import (
	"context"
	"testing"

	"harustay/internal/database"
	"harustay/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogRooms() []models.Room {
	return []models.Room{
		{ID: 1, Name: "온돌방", IsBookable: true, SortOrder: 1, PricePerNight: 90000, Capacity: 2},
		{ID: 2, Name: "별채", IsBookable: false, SortOrder: 2, PricePerNight: 150000, Capacity: 4},
		{ID: 3, Name: "다락방", IsBookable: true, SortOrder: 3, PricePerNight: 70000, Capacity: 2},
	}
}

func TestRoomServiceListing(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(mockRepo)
	repo.On("GetAllRooms", ctx).Return(catalogRooms(), nil).Once()

	svc := NewRoomService(repo, &logger)

	bookable, err := svc.ListBookableRooms(ctx)
	require.NoError(t, err)
	require.Len(t, bookable, 2)
	assert.Equal(t, int64(1), bookable[0].ID)
	assert.Equal(t, int64(3), bookable[1].ID)

	all, err := svc.ListAllRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Second listing is served from the snapshot.
	_, err = svc.ListBookableRooms(ctx)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "GetAllRooms", 1)
}

func TestRoomServiceGetByID(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(mockRepo)
	repo.On("GetAllRooms", ctx).Return(catalogRooms(), nil)

	svc := NewRoomService(repo, &logger)

	room, err := svc.GetRoomByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "별채", room.Name)

	_, err = svc.GetRoomByID(ctx, 99)
	assert.ErrorIs(t, err, database.ErrRoomNotFound)
}

func TestRoomServiceUpdate(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	price := int64(95000)
	bookable := false
	patch := &models.RoomPatch{PricePerNight: &price, IsBookable: &bookable}

	repo := new(mockRepo)
	repo.On("UpdateRoomFields", ctx, int64(1), patch).Return(nil)

	updated := catalogRooms()
	updated[0].PricePerNight = price
	updated[0].IsBookable = bookable
	repo.On("GetAllRooms", ctx).Return(updated, nil)

	svc := NewRoomService(repo, &logger)
	require.NoError(t, svc.UpdateRoom(ctx, 1, patch))

	room, err := svc.GetRoomByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, price, room.PricePerNight)
	assert.False(t, room.IsBookable)
}

func TestRoomServiceUpdateValidation(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	svc := NewRoomService(new(mockRepo), &logger)

	assert.Error(t, svc.UpdateRoom(ctx, 1, nil))
	assert.Error(t, svc.UpdateRoom(ctx, 1, &models.RoomPatch{}))

	zero := int64(0)
	assert.Error(t, svc.UpdateRoom(ctx, 1, &models.RoomPatch{PricePerNight: &zero}))
	assert.Error(t, svc.UpdateRoom(ctx, 1, &models.RoomPatch{Capacity: &zero}))
}
