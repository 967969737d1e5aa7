package models

import "time"

type Reservation struct {
	ID             string    `json:"id"`
	RoomID         int64     `json:"room_id"`
	RoomName       string    `json:"room_name"`
	GuestName      string    `json:"guest_name"`
	GuestEmail     string    `json:"guest_email"`
	GuestPhone     string    `json:"guest_phone"`
	GuestCountry   string    `json:"guest_country"`
	CheckIn        time.Time `json:"check_in"`
	CheckOut       time.Time `json:"check_out"`
	Adults         int64     `json:"adults"`
	Children       int64     `json:"children"`
	TotalPrice     int64     `json:"total_price"`
	Status         string    `json:"status"` // pending, confirmed, cancelled, completed
	SpecialRequest string    `json:"special_request,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Nights returns the length of the stay in nights.
func (r *Reservation) Nights() int64 {
	return int64(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Overlaps applies the half-open range test against a query range:
// a checkout on day N does not conflict with a check-in on day N.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return RangesOverlap(r.CheckIn, r.CheckOut, start, end)
}

// IsActive reports whether the reservation counts toward availability
// conflicts. Terminal statuses never block future availability.
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// ReservationFilter narrows the admin listing; zero values mean "any".
type ReservationFilter struct {
	Status string
	From   time.Time
	To     time.Time
}

// RangesOverlap reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// EnumerateNights lists every calendar date in [checkIn, checkOut).
func EnumerateNights(checkIn, checkOut time.Time) []time.Time {
	var nights []time.Time
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}
