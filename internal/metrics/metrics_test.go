package metrics

import "testing"

func TestRegisterIsIdempotent(t *testing.T) {
	Register()
	// Second call must not panic on duplicate registration.
	Register()

	IncHTTP("/api/v1/rooms")
	IncReservationCreated()
	IncAvailabilityQuery()
}
