package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"harustay/internal/models"
)

const roomColumns = `id, name, name_ko, name_en, description, description_ko, description_en,
                 price_per_night, capacity, bed_type, amenities, images,
                 is_bookable, sort_order, created_at, updated_at`

// SeedRooms upserts the configured room list. Metadata follows the config;
// created_at of existing rows is preserved.
func (db *DB) SeedRooms(ctx context.Context, rooms []models.Room) error {
	query := `INSERT INTO rooms (
				id, name, name_ko, name_en, description, description_ko, description_en,
				price_per_night, capacity, bed_type, amenities, images,
				is_bookable, sort_order, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				name_ko = excluded.name_ko,
				name_en = excluded.name_en,
				description = excluded.description,
				description_ko = excluded.description_ko,
				description_en = excluded.description_en,
				price_per_night = excluded.price_per_night,
				capacity = excluded.capacity,
				bed_type = excluded.bed_type,
				amenities = excluded.amenities,
				images = excluded.images,
				is_bookable = excluded.is_bookable,
				sort_order = excluded.sort_order,
				updated_at = excluded.updated_at`

	now := time.Now()
	for _, room := range rooms {
		amenities, images, err := encodeRoomLists(&room)
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx, query,
			room.ID, room.Name, room.NameKo, room.NameEn,
			room.Description, room.DescriptionKo, room.DescriptionEn,
			room.PricePerNight, room.Capacity, room.BedType,
			amenities, images, room.IsBookable, room.SortOrder,
			now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed room %d: %w", room.ID, err)
		}
	}
	return nil
}

// GetAllRooms returns every room sorted by (sort_order, id). Admin view.
func (db *DB) GetAllRooms(ctx context.Context) ([]models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY sort_order, id`
	return db.queryRooms(ctx, query)
}

// GetBookableRooms returns rooms with the availability flag set, sorted by
// (sort_order, id). Guest view.
func (db *DB) GetBookableRooms(ctx context.Context) ([]models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE is_bookable = 1 ORDER BY sort_order, id`
	return db.queryRooms(ctx, query)
}

func (db *DB) GetRoomByID(ctx context.Context, id int64) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	row := db.QueryRowContext(ctx, query, id)

	room, err := scanRoom(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// UpdateRoomFields applies a sparse patch inside a transaction: only fields
// carried by the patch are written, everything else keeps its stored value.
func (db *DB) UpdateRoomFields(ctx context.Context, id int64, patch *models.RoomPatch) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row := tx.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id)
	room, err := scanRoom(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load room for update: %w", err)
	}

	patch.Apply(room)

	amenities, images, err := encodeRoomLists(room)
	if err != nil {
		return err
	}

	query := `UPDATE rooms SET
				name = ?, name_ko = ?, name_en = ?,
				description = ?, description_ko = ?, description_en = ?,
				price_per_night = ?, capacity = ?, bed_type = ?,
				amenities = ?, images = ?, is_bookable = ?, sort_order = ?,
				updated_at = ?
			  WHERE id = ?`
	_, err = tx.ExecContext(ctx, query,
		room.Name, room.NameKo, room.NameEn,
		room.Description, room.DescriptionKo, room.DescriptionEn,
		room.PricePerNight, room.Capacity, room.BedType,
		amenities, images, room.IsBookable, room.SortOrder,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	return tx.Commit()
}

func (db *DB) queryRooms(ctx context.Context, query string, args ...any) ([]models.Room, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var result []models.Room
	for rows.Next() {
		room, err := scanRoom(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		result = append(result, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanRoom(scan func(...any) error) (*models.Room, error) {
	var room models.Room
	var amenities, images string
	err := scan(
		&room.ID, &room.Name, &room.NameKo, &room.NameEn,
		&room.Description, &room.DescriptionKo, &room.DescriptionEn,
		&room.PricePerNight, &room.Capacity, &room.BedType,
		&amenities, &images, &room.IsBookable, &room.SortOrder,
		&room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(amenities), &room.Amenities); err != nil {
		return nil, fmt.Errorf("failed to decode amenities: %w", err)
	}
	if err := json.Unmarshal([]byte(images), &room.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}
	return &room, nil
}

func encodeRoomLists(room *models.Room) (string, string, error) {
	amenities := room.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := room.Images
	if images == nil {
		images = []string{}
	}

	amenitiesJSON, err := json.Marshal(amenities)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode amenities: %w", err)
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode images: %w", err)
	}
	return string(amenitiesJSON), string(imagesJSON), nil
}
