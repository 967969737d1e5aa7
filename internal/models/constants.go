package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	LocaleKo = "ko"
	LocaleEn = "en"
)

const (
	// DateLayout is the calendar-date wire and storage format. Reservations
	// carry no time-of-day component.
	DateLayout = "2006-01-02"

	// DefaultSessionTTL admin session lifetime
	DefaultSessionTTL = 24 * 60 * 60 // 24 hours in seconds

	// DefaultRatesTTL exchange-rate cache lifetime
	DefaultRatesTTL = 60 * 60 // 1 hour in seconds

	// WorkerQueueSize in-memory sync queue capacity
	WorkerQueueSize = 128

	// RateLimitRPS default API request limit
	RateLimitRPS   = 10
	RateLimitBurst = 20

	// MaxBookingDays booking horizon
	MaxBookingDays = 365
)

// ValidStatus reports whether s is one of the four reservation statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransition validates a reservation status change. Same-status updates
// are allowed so an idempotent retry still refreshes the timestamp.
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled || to == StatusCompleted
	}
	// cancelled and completed are terminal
	return false
}
