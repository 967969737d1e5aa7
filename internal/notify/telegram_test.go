package notify

import (
	"strings"
	"testing"
	"time"

	"harustay/internal/events"

	"github.com/stretchr/testify/assert"
)

func samplePayload() events.ReservationEventPayload {
	return events.ReservationEventPayload{
		ReservationID: "res-1",
		RoomID:        1,
		RoomName:      "온돌방",
		GuestName:     "Kim Minji",
		CheckIn:       time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC),
		TotalPrice:    180000,
		Status:        "pending",
	}
}

func TestFormatMessage(t *testing.T) {
	p := samplePayload()

	created := formatMessage(events.EventReservationCreated, p)
	assert.Contains(t, created, "res-1")
	assert.Contains(t, created, "온돌방")
	assert.Contains(t, created, "2026-02-10 → 2026-02-12")
	assert.Contains(t, created, "₩180000")

	confirmed := formatMessage(events.EventReservationConfirmed, p)
	assert.True(t, strings.HasPrefix(confirmed, "✅"))

	cancelled := formatMessage(events.EventReservationCancelled, p)
	assert.Contains(t, cancelled, "Kim Minji")

	completed := formatMessage(events.EventReservationCompleted, p)
	assert.Contains(t, completed, "res-1")

	assert.Empty(t, formatMessage("unrelated_event", p))
}
