package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRangesOverlap(t *testing.T) {
	// Confirmed stay 02-10 -> 02-12 against the two query examples.
	checkIn := date("2026-02-10")
	checkOut := date("2026-02-12")

	assert.True(t, RangesOverlap(checkIn, checkOut, date("2026-02-11"), date("2026-02-13")))
	// Same-day turnover: checkout on the 12th does not conflict with
	// a check-in on the 12th.
	assert.False(t, RangesOverlap(checkIn, checkOut, date("2026-02-12"), date("2026-02-14")))
	assert.False(t, RangesOverlap(checkIn, checkOut, date("2026-02-08"), date("2026-02-10")))
	assert.True(t, RangesOverlap(checkIn, checkOut, date("2026-02-09"), date("2026-02-11")))

	// Zero-length query range overlaps nothing.
	assert.False(t, RangesOverlap(checkIn, checkOut, date("2026-02-11"), date("2026-02-11")))
}

func TestEnumerateNights(t *testing.T) {
	nights := EnumerateNights(date("2026-02-10"), date("2026-02-13"))
	require.Len(t, nights, 3)
	assert.Equal(t, date("2026-02-10"), nights[0])
	assert.Equal(t, date("2026-02-12"), nights[2])

	assert.Empty(t, EnumerateNights(date("2026-02-10"), date("2026-02-10")))
	assert.Empty(t, EnumerateNights(date("2026-02-13"), date("2026-02-10")))
}

func TestReservationNights(t *testing.T) {
	r := Reservation{CheckIn: date("2026-02-10"), CheckOut: date("2026-02-13")}
	assert.Equal(t, int64(3), r.Nights())
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusPending, StatusCompleted, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusPending, false},
		{StatusPending, StatusPending, true},
		{StatusCompleted, StatusCompleted, true},
		{StatusPending, "rejected", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestLocalizedName(t *testing.T) {
	room := Room{Name: "온돌방", NameKo: "온돌방", NameEn: "Ondol Room"}

	assert.Equal(t, "Ondol Room", room.LocalizedName("en"))
	assert.Equal(t, "Ondol Room", room.LocalizedName("en-US"))
	assert.Equal(t, "온돌방", room.LocalizedName("ko"))
	// Unknown locale falls back to the default name.
	assert.Equal(t, "온돌방", room.LocalizedName("ja"))
	assert.Equal(t, "온돌방", room.LocalizedName(""))

	// Missing translation falls back too.
	bare := Room{Name: "별채"}
	assert.Equal(t, "별채", bare.LocalizedName("en"))
}

func TestRoomPatchApply(t *testing.T) {
	room := Room{ID: 1, Name: "별채", PricePerNight: 90000, Capacity: 2, IsBookable: true}

	price := int64(110000)
	bookable := false
	patch := RoomPatch{PricePerNight: &price, IsBookable: &bookable}
	require.False(t, patch.IsEmpty())

	patch.Apply(&room)
	assert.Equal(t, int64(110000), room.PricePerNight)
	assert.False(t, room.IsBookable)
	// Untouched fields survive.
	assert.Equal(t, "별채", room.Name)
	assert.Equal(t, int64(2), room.Capacity)

	empty := RoomPatch{}
	assert.True(t, empty.IsEmpty())
}
