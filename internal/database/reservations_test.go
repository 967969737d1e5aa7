package database

import (
	"context"
	"testing"
	"time"

	"harustay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(models.DateLayout, value)
	require.NoError(t, err)
	return parsed
}

func testReservation(roomID int64, checkIn, checkOut time.Time) *models.Reservation {
	return &models.Reservation{
		RoomID:     roomID,
		RoomName:   "Ondol Room",
		GuestName:  "Kim Minji",
		GuestEmail: "minji@example.com",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     2,
		TotalPrice: 180000,
		Status:     models.StatusConfirmed,
	}
}

func TestCreateAndGetReservation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	r := testReservation(1, day(t, "2026-02-10"), day(t, "2026-02-12"))
	require.NoError(t, db.CreateReservation(ctx, r))
	require.NotEmpty(t, r.ID)

	got, err := db.GetReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kim Minji", got.GuestName)
	assert.Equal(t, day(t, "2026-02-10"), got.CheckIn)
	assert.Equal(t, day(t, "2026-02-12"), got.CheckOut)
	assert.Equal(t, int64(180000), got.TotalPrice)

	_, err = db.GetReservation(ctx, "missing")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCreateReservationCheckedOverlap(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	first := testReservation(1, day(t, "2026-02-10"), day(t, "2026-02-12"))
	require.NoError(t, db.CreateReservationChecked(ctx, first))

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  error
	}{
		{"overlapping stay", "2026-02-11", "2026-02-13", ErrNotAvailable},
		{"contained stay", "2026-02-10", "2026-02-11", ErrNotAvailable},
		{"same-day turnover after checkout", "2026-02-12", "2026-02-14", nil},
		{"ends on check-in day", "2026-02-08", "2026-02-10", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testReservation(1, day(t, tt.checkIn), day(t, tt.checkOut))
			err := db.CreateReservationChecked(ctx, r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateReservationCheckedIgnoresTerminalStatuses(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	cancelled := testReservation(1, day(t, "2026-02-10"), day(t, "2026-02-12"))
	cancelled.Status = models.StatusCancelled
	require.NoError(t, db.CreateReservation(ctx, cancelled))

	// A cancelled reservation does not block the same dates.
	r := testReservation(1, day(t, "2026-02-10"), day(t, "2026-02-12"))
	assert.NoError(t, db.CreateReservationChecked(ctx, r))
}

func TestCreateReservationCheckedBlockedDate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	bd := &models.BlockedDate{RoomID: 1, Date: day(t, "2026-02-11"), Reason: "maintenance"}
	require.NoError(t, db.CreateBlockedDate(ctx, bd))

	// Stay spanning the blocked night is rejected.
	r := testReservation(1, day(t, "2026-02-10"), day(t, "2026-02-12"))
	assert.ErrorIs(t, db.CreateReservationChecked(ctx, r), ErrNotAvailable)

	// A stay ending on the blocked date does not occupy that night.
	before := testReservation(1, day(t, "2026-02-09"), day(t, "2026-02-11"))
	assert.NoError(t, db.CreateReservationChecked(ctx, before))
}

func TestUpdateReservationStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	r := testReservation(1, day(t, "2026-02-10"), day(t, "2026-02-12"))
	require.NoError(t, db.CreateReservation(ctx, r))

	require.NoError(t, db.UpdateReservationStatus(ctx, r.ID, models.StatusCompleted))

	got, err := db.GetReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)

	err = db.UpdateReservationStatus(ctx, "missing", models.StatusCancelled)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetReservationsFilter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	a := testReservation(1, day(t, "2026-02-10"), day(t, "2026-02-12"))
	a.Status = models.StatusPending
	require.NoError(t, db.CreateReservation(ctx, a))

	b := testReservation(2, day(t, "2026-03-01"), day(t, "2026-03-05"))
	require.NoError(t, db.CreateReservation(ctx, b))

	byStatus, err := db.GetReservations(ctx, models.ReservationFilter{Status: models.StatusPending})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, a.ID, byStatus[0].ID)

	// Range filter uses the same half-open overlap as availability.
	inMarch, err := db.GetReservations(ctx, models.ReservationFilter{
		From: day(t, "2026-02-20"), To: day(t, "2026-03-10"),
	})
	require.NoError(t, err)
	require.Len(t, inMarch, 1)
	assert.Equal(t, b.ID, inMarch[0].ID)

	all, err := db.GetReservations(ctx, models.ReservationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetActiveReservations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	for _, status := range []string{
		models.StatusPending, models.StatusConfirmed,
		models.StatusCancelled, models.StatusCompleted,
	} {
		r := testReservation(1, day(t, "2026-02-10"), day(t, "2026-02-12"))
		r.Status = status
		require.NoError(t, db.CreateReservation(ctx, r))
	}

	active, err := db.GetActiveReservations(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, r := range active {
		assert.Contains(t, []string{models.StatusPending, models.StatusConfirmed}, r.Status)
	}
}

func TestGetReservationStats(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	seed := []struct {
		status string
		price  int64
	}{
		{models.StatusPending, 90000},
		{models.StatusConfirmed, 180000},
		{models.StatusCompleted, 300000},
		{models.StatusCancelled, 150000},
	}
	for _, s := range seed {
		r := testReservation(1, day(t, "2026-02-10"), day(t, "2026-02-12"))
		r.Status = s.status
		r.TotalPrice = s.price
		require.NoError(t, db.CreateReservation(ctx, r))
	}

	stats, err := db.GetReservationStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Confirmed)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(1), stats.Cancelled)
	// Revenue counts confirmed and completed stays only.
	assert.Equal(t, int64(480000), stats.TotalRevenue)
}

func TestGetDailyReservations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	r := testReservation(1, day(t, "2026-02-10"), day(t, "2026-02-12"))
	require.NoError(t, db.CreateReservation(ctx, r))

	daily, err := db.GetDailyReservations(ctx, day(t, "2026-02-09"), day(t, "2026-02-13"))
	require.NoError(t, err)

	assert.Empty(t, daily["2026-02-09"])
	assert.Len(t, daily["2026-02-10"], 1)
	assert.Len(t, daily["2026-02-11"], 1)
	// Checkout day is not an occupied night.
	assert.Empty(t, daily["2026-02-12"])
}
