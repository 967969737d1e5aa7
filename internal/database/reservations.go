package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"harustay/internal/models"

	"github.com/google/uuid"
)

const reservationColumns = `id, room_id, room_name, guest_name, guest_email, guest_phone,
                 guest_country, check_in, check_out, adults, children,
                 total_price, status, special_request, created_at, updated_at`

// CreateReservation inserts a reservation without an availability check.
// Callers are expected to have consulted the availability resolver; use
// CreateReservationChecked to close the race at write time.
func (db *DB) CreateReservation(ctx context.Context, r *models.Reservation) error {
	now := time.Now()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = models.StatusPending
	}

	_, err := db.ExecContext(ctx, insertReservationQuery, reservationArgs(r, now)...)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

// CreateReservationChecked re-checks availability inside a transaction
// before inserting, so two concurrent overlapping requests cannot both
// land as active reservations for the same room.
func (db *DB) CreateReservationChecked(ctx context.Context, r *models.Reservation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 1. Conflicting active reservations under the half-open overlap rule.
	var overlapping int
	overlapQuery := `SELECT COUNT(*) FROM reservations
	                 WHERE room_id = ? AND status IN (?, ?)
	                 AND check_in < ? AND check_out > ?`
	err = tx.QueryRowContext(ctx, overlapQuery, r.RoomID,
		models.StatusPending, models.StatusConfirmed,
		r.CheckOut.Format(models.DateLayout), r.CheckIn.Format(models.DateLayout),
	).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check overlap in tx: %w", err)
	}
	if overlapping > 0 {
		return ErrNotAvailable
	}

	// 2. Blocked dates anywhere in [check_in, check_out).
	var blocked int
	blockedQuery := `SELECT COUNT(*) FROM blocked_dates
	                 WHERE room_id = ? AND date >= ? AND date < ?`
	err = tx.QueryRowContext(ctx, blockedQuery, r.RoomID,
		r.CheckIn.Format(models.DateLayout), r.CheckOut.Format(models.DateLayout),
	).Scan(&blocked)
	if err != nil {
		return fmt.Errorf("failed to check blocked dates in tx: %w", err)
	}
	if blocked > 0 {
		return ErrNotAvailable
	}

	// 3. Insert.
	now := time.Now()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = models.StatusPending
	}
	if _, err := tx.ExecContext(ctx, insertReservationQuery, reservationArgs(r, now)...); err != nil {
		return fmt.Errorf("failed to insert reservation in tx: %w", err)
	}
	r.CreatedAt = now
	r.UpdatedAt = now

	return tx.Commit()
}

const insertReservationQuery = `INSERT INTO reservations (
			id, room_id, room_name, guest_name, guest_email, guest_phone,
			guest_country, check_in, check_out, adults, children,
			total_price, status, special_request, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func reservationArgs(r *models.Reservation, now time.Time) []any {
	return []any{
		r.ID, r.RoomID, r.RoomName, r.GuestName, r.GuestEmail, r.GuestPhone,
		r.GuestCountry,
		r.CheckIn.Format(models.DateLayout), r.CheckOut.Format(models.DateLayout),
		r.Adults, r.Children, r.TotalPrice, r.Status, r.SpecialRequest,
		now, now,
	}
}

func (db *DB) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	row := db.QueryRowContext(ctx, query, id)

	r, err := scanReservation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return r, nil
}

// UpdateReservationStatus sets the status and refreshes updated_at, also
// when the status value is unchanged.
func (db *DB) UpdateReservationStatus(ctx context.Context, id, status string) error {
	query := `UPDATE reservations SET status = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// GetActiveReservations returns every pending or confirmed reservation.
// Terminal statuses are excluded from availability conflicts.
func (db *DB) GetActiveReservations(ctx context.Context) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE status IN (?, ?) ORDER BY check_in, created_at`
	return db.queryReservations(ctx, query, models.StatusPending, models.StatusConfirmed)
}

func (db *DB) GetReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if !filter.From.IsZero() {
		query += ` AND check_out > ?`
		args = append(args, filter.From.Format(models.DateLayout))
	}
	if !filter.To.IsZero() {
		query += ` AND check_in < ?`
		args = append(args, filter.To.Format(models.DateLayout))
	}
	query += ` ORDER BY created_at DESC`

	return db.queryReservations(ctx, query, args...)
}

// GetReservationStats recomputes the per-status counts and the revenue sum
// on every call; nothing is maintained incrementally.
func (db *DB) GetReservationStats(ctx context.Context) (*models.ReservationStats, error) {
	var stats models.ReservationStats

	query := `SELECT status, COUNT(*), COALESCE(SUM(total_price), 0)
	          FROM reservations GROUP BY status`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count, sum int64
		if err := rows.Scan(&status, &count, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}

		stats.Total += count
		switch status {
		case models.StatusPending:
			stats.Pending = count
		case models.StatusConfirmed:
			stats.Confirmed = count
			stats.TotalRevenue += sum
		case models.StatusCancelled:
			stats.Cancelled = count
		case models.StatusCompleted:
			stats.Completed = count
			stats.TotalRevenue += sum
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetDailyReservations maps each calendar date in [start, end) to the
// reservations occupying a room that night. Used by the calendar export.
func (db *DB) GetDailyReservations(ctx context.Context, start, end time.Time) (map[string][]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE check_in < ? AND check_out > ? ORDER BY check_in, created_at`
	reservations, err := db.queryReservations(ctx, query,
		end.Format(models.DateLayout), start.Format(models.DateLayout))
	if err != nil {
		return nil, err
	}

	daily := make(map[string][]models.Reservation)
	for _, r := range reservations {
		for _, night := range models.EnumerateNights(r.CheckIn, r.CheckOut) {
			if night.Before(start) || !night.Before(end) {
				continue
			}
			key := night.Format(models.DateLayout)
			daily[key] = append(daily[key], r)
		}
	}
	return daily, nil
}

func (db *DB) queryReservations(ctx context.Context, query string, args ...any) ([]models.Reservation, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var result []models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		result = append(result, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanReservation(scan func(...any) error) (*models.Reservation, error) {
	var r models.Reservation
	var checkIn, checkOut string
	err := scan(
		&r.ID, &r.RoomID, &r.RoomName, &r.GuestName, &r.GuestEmail, &r.GuestPhone,
		&r.GuestCountry, &checkIn, &checkOut, &r.Adults, &r.Children,
		&r.TotalPrice, &r.Status, &r.SpecialRequest, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.CheckIn, err = time.Parse(models.DateLayout, checkIn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse check_in %s: %w", checkIn, err)
	}
	r.CheckOut, err = time.Parse(models.DateLayout, checkOut)
	if err != nil {
		return nil, fmt.Errorf("failed to parse check_out %s: %w", checkOut, err)
	}
	return &r, nil
}
