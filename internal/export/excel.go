package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"harustay/internal/domain"
	"harustay/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const calendarSheet = "Occupancy"

// ExcelExporter renders the occupancy calendar into an xlsx file: one row
// per room, one column per night, cells coloured by reservation status.
type ExcelExporter struct {
	repo   domain.Repository
	path   string
	logger *zerolog.Logger
}

func NewExcelExporter(repo domain.Repository, path string, logger *zerolog.Logger) *ExcelExporter {
	return &ExcelExporter{
		repo:   repo,
		path:   path,
		logger: logger,
	}
}

// OccupancyCalendar builds the calendar for [startDate, endDate] and returns
// the path of the written file.
func (e *ExcelExporter) OccupancyCalendar(ctx context.Context, startDate, endDate time.Time) (string, error) {
	if endDate.Before(startDate) {
		return "", fmt.Errorf("end date %s is before start date %s",
			endDate.Format(models.DateLayout), startDate.Format(models.DateLayout))
	}

	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	daily, err := e.repo.GetDailyReservations(ctx, startDate, endDate.AddDate(0, 0, 1))
	if err != nil {
		return "", fmt.Errorf("error getting reservations: %v", err)
	}

	rooms, err := e.repo.GetAllRooms(ctx)
	if err != nil {
		return "", fmt.Errorf("error getting rooms: %v", err)
	}

	blocked, err := e.blockedByRoomAndDate(ctx)
	if err != nil {
		return "", fmt.Errorf("error getting blocked dates: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(calendarSheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(calendarSheet, "A1", fmt.Sprintf("Occupancy: %s - %s",
		startDate.Format(models.DateLayout), endDate.Format(models.DateLayout)))

	dateCols := e.writeDateHeaders(f, startDate, endDate)
	e.writeRoomHeaders(f, rooms)
	e.writeReservationCells(f, rooms, daily, blocked, dateCols)

	_ = f.SetColWidth(calendarSheet, "A", "A", 25)
	for i := 'B'; i <= 'Z'; i++ {
		_ = f.SetColWidth(calendarSheet, string(i), string(i), 20)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(calendarSheet, "A1", "A1", titleStyle)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("occupancy_%s_to_%s.xlsx",
		startDate.Format(models.DateLayout),
		endDate.Format(models.DateLayout))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Msg("occupancy calendar exported")
	return filePath, nil
}

func (e *ExcelExporter) blockedByRoomAndDate(ctx context.Context) (map[int64]map[string]string, error) {
	all, err := e.repo.GetBlockedDates(ctx, 0)
	if err != nil {
		return nil, err
	}
	blocked := make(map[int64]map[string]string)
	for _, bd := range all {
		key := bd.Date.Format(models.DateLayout)
		if blocked[bd.RoomID] == nil {
			blocked[bd.RoomID] = make(map[string]string)
		}
		blocked[bd.RoomID][key] = bd.Reason
	}
	return blocked, nil
}

func (e *ExcelExporter) writeDateHeaders(f *excelize.File, startDate, endDate time.Time) map[string]int {
	col := 2
	dateCols := make(map[string]int)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		cell, _ := excelize.CoordinatesToCellName(col, 2)
		_ = f.SetCellValue(calendarSheet, cell, d.Format("01-02"))
		_ = f.SetCellStyle(calendarSheet, cell, cell, headerStyle)
		dateCols[d.Format(models.DateLayout)] = col
		col++
	}
	return dateCols
}

func (e *ExcelExporter) writeRoomHeaders(f *excelize.File, rooms []models.Room) {
	style, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})

	row := 3
	for _, room := range rooms {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(calendarSheet, cell, fmt.Sprintf("%s (%d)", room.Name, room.Capacity))
		_ = f.SetCellStyle(calendarSheet, cell, cell, style)
		row++
	}
}

func (e *ExcelExporter) writeReservationCells(
	f *excelize.File,
	rooms []models.Room,
	daily map[string][]models.Reservation,
	blocked map[int64]map[string]string,
	dateCols map[string]int,
) {
	for dateKey, col := range dateCols {
		byRoom := make(map[int64][]models.Reservation)
		for _, r := range daily[dateKey] {
			// Cancelled stays do not occupy the room.
			if r.Status == models.StatusCancelled {
				continue
			}
			byRoom[r.RoomID] = append(byRoom[r.RoomID], r)
		}

		row := 3
		for _, room := range rooms {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			row++

			if reason, ok := blocked[room.ID][dateKey]; ok {
				label := "Blocked"
				if reason != "" {
					label += ": " + reason
				}
				_ = f.SetCellValue(calendarSheet, cell, label)
				if styleID, err := e.cellStyle(f, "blocked"); err == nil {
					_ = f.SetCellStyle(calendarSheet, cell, cell, styleID)
				}
				continue
			}

			reservations := byRoom[room.ID]
			if len(reservations) == 0 {
				_ = f.SetCellValue(calendarSheet, cell, "Free")
				if styleID, err := e.cellStyle(f, "free"); err == nil {
					_ = f.SetCellStyle(calendarSheet, cell, cell, styleID)
				}
				continue
			}

			var cellValue string
			kind := "confirmed"
			for _, r := range reservations {
				cellValue += fmt.Sprintf("%s %s (%d+%d)\n",
					statusIcon(r.Status), r.GuestName, r.Adults, r.Children)
				if r.Status == models.StatusPending {
					kind = "pending"
				}
			}
			_ = f.SetCellValue(calendarSheet, cell, cellValue)
			if styleID, err := e.cellStyle(f, kind); err == nil {
				_ = f.SetCellStyle(calendarSheet, cell, cell, styleID)
			}
		}
	}
}

func (e *ExcelExporter) cellStyle(f *excelize.File, kind string) (int, error) {
	color := "#FFFFFF"
	switch kind {
	case "confirmed":
		color = "#C6EFCE"
	case "pending":
		color = "#FFEB9C"
	case "blocked":
		color = "#D9D9D9"
	}
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "top",
			WrapText:   true,
		},
	})
}

func statusIcon(status string) string {
	switch status {
	case models.StatusConfirmed, models.StatusCompleted:
		return "✅"
	case models.StatusPending:
		return "⏳"
	case models.StatusCancelled:
		return "❌"
	}
	return "❓"
}
