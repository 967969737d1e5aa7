package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"harustay/internal/models"
)

func (db *DB) CreateBlockedDate(ctx context.Context, bd *models.BlockedDate) error {
	query := `INSERT INTO blocked_dates (room_id, date, reason, created_at) VALUES (?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		bd.RoomID, bd.Date.Format(models.DateLayout), bd.Reason, now)
	if err != nil {
		return fmt.Errorf("failed to create blocked date: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	bd.ID = id
	bd.CreatedAt = now
	return nil
}

func (db *DB) DeleteBlockedDate(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM blocked_dates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blocked date: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("blocked date %d: %w", id, ErrBlockedDateNotFound)
	}
	return nil
}

// GetBlockedDates lists blocked dates, optionally for a single room.
func (db *DB) GetBlockedDates(ctx context.Context, roomID int64) ([]models.BlockedDate, error) {
	query := `SELECT id, room_id, date, reason, created_at FROM blocked_dates`
	var args []any
	if roomID != 0 {
		query += ` WHERE room_id = ?`
		args = append(args, roomID)
	}
	query += ` ORDER BY date, room_id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocked dates: %w", err)
	}
	defer rows.Close()

	var result []models.BlockedDate
	for rows.Next() {
		var bd models.BlockedDate
		var dateStr string
		if err := rows.Scan(&bd.ID, &bd.RoomID, &dateStr, &bd.Reason, &bd.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blocked date: %w", err)
		}
		bd.Date, err = time.Parse(models.DateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse blocked date %s: %w", dateStr, err)
		}
		result = append(result, bd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetBlockedRoomIDs returns the set of room ids that have a block on any of
// the given calendar dates.
func (db *DB) GetBlockedRoomIDs(ctx context.Context, dates []time.Time) (map[int64]bool, error) {
	blocked := make(map[int64]bool)
	if len(dates) == 0 {
		return blocked, nil
	}

	placeholders := make([]string, len(dates))
	args := make([]any, len(dates))
	for i, d := range dates {
		placeholders[i] = "?"
		args[i] = d.Format(models.DateLayout)
	}

	query := fmt.Sprintf(`SELECT DISTINCT room_id FROM blocked_dates WHERE date IN (%s)`,
		strings.Join(placeholders, ", "))
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocked room ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var roomID int64
		if err := rows.Scan(&roomID); err != nil {
			return nil, fmt.Errorf("failed to scan blocked room id: %w", err)
		}
		blocked[roomID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return blocked, nil
}
