package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"harustay/internal/database"
	"harustay/internal/domain"
	"harustay/internal/events"
	"harustay/internal/metrics"
	"harustay/internal/models"

	"github.com/rs/zerolog"
)

// ReservationService owns the reservation lifecycle: guest-facing creation
// and cancellation plus the admin status transitions.
type ReservationService struct {
	repo   domain.Repository
	bus    domain.EventPublisher
	worker domain.SyncWorker
	logger *zerolog.Logger
	now    func() time.Time
}

func NewReservationService(repo domain.Repository, bus domain.EventPublisher, worker domain.SyncWorker, logger *zerolog.Logger) *ReservationService {
	return &ReservationService{
		repo:   repo,
		bus:    bus,
		worker: worker,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *ReservationService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateReservation validates the request, confirms availability and inserts
// the reservation in a single transaction, then fans out notifications. A
// conflicting concurrent request loses with ErrNotAvailable.
func (s *ReservationService) CreateReservation(ctx context.Context, r *models.Reservation) error {
	if !r.CheckIn.Before(r.CheckOut) {
		return database.ErrInvalidDateRange
	}

	today := truncateToDate(s.now())
	if r.CheckIn.Before(today) {
		return database.ErrPastDate
	}
	if r.CheckIn.After(today.AddDate(0, 0, models.MaxBookingDays)) {
		return database.ErrDateTooFar
	}

	room, err := s.repo.GetRoomByID(ctx, r.RoomID)
	if err != nil {
		return err
	}
	if !room.IsBookable {
		return database.ErrNotAvailable
	}
	if r.Adults+r.Children > room.Capacity {
		return database.ErrCapacityExceeded
	}

	r.RoomName = room.Name
	if r.Status == "" {
		r.Status = models.StatusPending
	}
	if r.TotalPrice <= 0 {
		r.TotalPrice = r.Nights() * room.PricePerNight
	}
	r.GuestEmail = strings.ToLower(strings.TrimSpace(r.GuestEmail))

	if err := s.repo.CreateReservationChecked(ctx, r); err != nil {
		return err
	}

	metrics.IncReservationCreated()
	s.logger.Info().
		Str("reservation_id", r.ID).
		Int64("room_id", r.RoomID).
		Str("check_in", r.CheckIn.Format(models.DateLayout)).
		Str("check_out", r.CheckOut.Format(models.DateLayout)).
		Msg("reservation created")

	s.publish(events.EventReservationCreated, r)
	s.enqueueSync(ctx, "upsert", r.ID, r, "")

	return nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	return s.repo.GetReservation(ctx, id)
}

func (s *ReservationService) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return nil, fmt.Errorf("unknown status filter %q", filter.Status)
	}
	return s.repo.GetReservations(ctx, filter)
}

// UpdateStatus performs an admin transition. Terminal states reject every
// change, and the allowed moves follow the lifecycle table in models.
func (s *ReservationService) UpdateStatus(ctx context.Context, id, status string) error {
	if !models.ValidStatus(status) {
		return database.ErrInvalidTransition
	}

	r, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(r.Status, status) {
		return database.ErrInvalidTransition
	}

	if err := s.repo.UpdateReservationStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info().
		Str("reservation_id", id).
		Str("from", r.Status).
		Str("to", status).
		Msg("reservation status updated")

	if r.Status != status {
		r.Status = status
		s.publish(statusEvent(status), r)
		s.enqueueSync(ctx, "status", id, nil, status)
	}

	return nil
}

// GuestCancel is the self-service cancellation path. It requires the email
// the reservation was made with and only works while the reservation is
// still pending.
func (s *ReservationService) GuestCancel(ctx context.Context, id, email string) error {
	r, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return err
	}

	if !strings.EqualFold(strings.TrimSpace(email), r.GuestEmail) {
		return database.ErrEmailMismatch
	}
	if r.Status != models.StatusPending {
		return database.ErrNotCancellable
	}

	if err := s.repo.UpdateReservationStatus(ctx, id, models.StatusCancelled); err != nil {
		return err
	}

	s.logger.Info().Str("reservation_id", id).Msg("reservation cancelled by guest")

	r.Status = models.StatusCancelled
	s.publish(events.EventReservationCancelled, r)
	s.enqueueSync(ctx, "status", id, nil, models.StatusCancelled)

	return nil
}

func (s *ReservationService) Stats(ctx context.Context) (*models.ReservationStats, error) {
	return s.repo.GetReservationStats(ctx)
}

func (s *ReservationService) publish(eventType string, r *models.Reservation) {
	if s.bus == nil || eventType == "" {
		return
	}
	payload := events.ReservationEventPayload{
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		RoomName:      r.RoomName,
		GuestName:     r.GuestName,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		TotalPrice:    r.TotalPrice,
		Status:        r.Status,
	}
	if err := s.bus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}

func (s *ReservationService) enqueueSync(ctx context.Context, taskType, id string, r *models.Reservation, status string) {
	if s.worker == nil {
		return
	}
	if err := s.worker.EnqueueTask(ctx, taskType, id, r, status); err != nil {
		s.logger.Error().Err(err).Str("reservation_id", id).Msg("failed to enqueue sync task")
	}
}

func statusEvent(status string) string {
	switch status {
	case models.StatusConfirmed:
		return events.EventReservationConfirmed
	case models.StatusCancelled:
		return events.EventReservationCancelled
	case models.StatusCompleted:
		return events.EventReservationCompleted
	}
	return ""
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
