package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"harustay/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ErrRowNotFound the reservation has no row in the spreadsheet yet.
var ErrRowNotFound = errors.New("reservation row not found")

const (
	reservationsSheet = "Reservations"
	timestampLayout   = "2006-01-02 15:04:05"
)

// SheetsService mirrors the reservation ledger into a Google spreadsheet so
// the host can read it without touching the admin panel. Row positions are
// cached by reservation id to avoid a column scan on every write.
type SheetsService struct {
	service       *sheets.Service
	spreadsheetID string
	rowCache      map[string]int
	cacheMu       sync.RWMutex
}

func NewSheetsService(credentialsFile, spreadsheetID string) (*SheetsService, error) {
	ctx := context.Background()

	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %v", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %v", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %v", err)
	}

	service := &SheetsService{
		service:       srv,
		spreadsheetID: spreadsheetID,
		rowCache:      make(map[string]int),
	}

	// Warm up cache in background
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = service.WarmUpCache(ctx)
	}()

	return service, nil
}

// TestConnection reads a single cell to verify credentials and sharing.
func (s *SheetsService) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, reservationsSheet+"!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %v", err)
	}
	return nil
}

// GetServiceAccountEmail extracts the service account email so it can be
// shown in setup instructions.
func (s *SheetsService) GetServiceAccountEmail(credentialsFile string) (string, error) {
	file, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", err
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(file, &creds); err != nil {
		return "", err
	}
	return creds.ClientEmail, nil
}

// WarmUpCache populates the row index cache by reading the entire ID column.
func (s *SheetsService) WarmUpCache(ctx context.Context) error {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, reservationsSheet+"!A:A").Context(ctx).Do()
	if err != nil {
		return err
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache = make(map[string]int)

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if id, ok := row[0].(string); ok && id != "" && id != "ID" {
			s.rowCache[id] = i + 1
		}
	}
	return nil
}

// UpsertReservation updates the reservation's row or appends a new one when
// the id is not in the sheet yet.
func (s *SheetsService) UpsertReservation(ctx context.Context, r *models.Reservation) error {
	if r == nil {
		return fmt.Errorf("reservation is nil")
	}

	rowIdx, err := s.findReservationRow(ctx, r.ID)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return s.appendReservation(ctx, r)
		}
		return err
	}

	rangeData := fmt.Sprintf("%s!A%d:M%d", reservationsSheet, rowIdx, rowIdx)
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{reservationRowValues(r)},
	}

	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, rangeData, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (s *SheetsService) appendReservation(ctx context.Context, r *models.Reservation) error {
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{reservationRowValues(r)},
	}

	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, reservationsSheet+"!A:A", valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err == nil {
		s.deleteCachedRow(r.ID)
	}
	return err
}

// UpdateReservationStatus rewrites the status and updated-at cells of an
// existing row.
func (s *SheetsService) UpdateReservationStatus(ctx context.Context, reservationID, status string) error {
	rowIdx, err := s.findReservationRow(ctx, reservationID)
	if err != nil {
		return err
	}

	statusRange := fmt.Sprintf("%s!L%d:M%d", reservationsSheet, rowIdx, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, statusRange, &sheets.ValueRange{
		Values: [][]interface{}{{status, time.Now().Format(timestampLayout)}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

// ReplaceReservationsSheet rewrites the whole sheet below the header row.
func (s *SheetsService) ReplaceReservationsSheet(ctx context.Context, reservations []models.Reservation) error {
	clearRange := reservationsSheet + "!A2:Z"
	_, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear reservations sheet: %v", err)
	}

	var values [][]interface{}
	for i := range reservations {
		values = append(values, reservationRowValues(&reservations[i]))
	}
	if len(values) == 0 {
		return nil
	}

	valueRange := &sheets.ValueRange{Values: values}
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, reservationsSheet+"!A2", valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update reservations sheet: %v", err)
	}

	s.cacheMu.Lock()
	s.rowCache = make(map[string]int)
	for i, r := range reservations {
		s.rowCache[r.ID] = i + 2 // data starts at row 2
	}
	s.cacheMu.Unlock()

	return nil
}

// findReservationRow locates the 1-based row index for the id in column A.
func (s *SheetsService) findReservationRow(ctx context.Context, reservationID string) (int, error) {
	if reservationID == "" {
		return 0, fmt.Errorf("reservation id is required")
	}

	if row, ok := s.getCachedRow(reservationID); ok {
		return row, nil
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, reservationsSheet+"!A:A").Context(ctx).Do()
	if err != nil {
		return 0, err
	}

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if id, ok := row[0].(string); ok && id == reservationID {
			rowIdx := i + 1 // Values are zero-based; sheet rows are 1-based
			s.setCachedRow(reservationID, rowIdx)
			return rowIdx, nil
		}
	}

	return 0, ErrRowNotFound
}

func (s *SheetsService) getCachedRow(id string) (int, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	row, ok := s.rowCache[id]
	return row, ok
}

func (s *SheetsService) setCachedRow(id string, row int) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache[id] = row
}

func (s *SheetsService) deleteCachedRow(id string) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	delete(s.rowCache, id)
}

// ClearCache drops every cached row index.
func (s *SheetsService) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache = make(map[string]int)
}

func reservationRowValues(r *models.Reservation) []interface{} {
	return []interface{}{
		r.ID,
		r.RoomName,
		r.GuestName,
		r.GuestEmail,
		r.GuestPhone,
		r.GuestCountry,
		r.CheckIn.Format(models.DateLayout),
		r.CheckOut.Format(models.DateLayout),
		r.Adults,
		r.Children,
		r.TotalPrice,
		r.Status,
		r.UpdatedAt.Format(timestampLayout),
	}
}
