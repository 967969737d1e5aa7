package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"harustay/internal/models"
)

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, err := s.sessions.Login(r.Context(), body.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleAdmin dispatches every authenticated admin route.
func (s *HTTPServer) handleAdmin(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/admin/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch parts[0] {
	case "logout":
		s.handleLogout(w, r)
	case "rooms":
		if len(parts) == 1 {
			s.handleAdminRooms(w, r)
			return
		}
		s.handleAdminRoomByID(w, r, parts[1])
	case "reservations":
		if len(parts) == 1 {
			s.handleAdminReservations(w, r)
			return
		}
		if len(parts) == 2 && r.Method == http.MethodGet {
			s.handleAdminReservationGet(w, r, parts[1])
			return
		}
		if len(parts) == 3 && parts[2] == "status" {
			s.handleAdminReservationStatus(w, r, parts[1])
			return
		}
		writeError(w, http.StatusNotFound, "not found")
	case "stats":
		s.handleAdminStats(w, r)
	case "blocked-dates":
		if len(parts) == 1 {
			s.handleAdminBlockedDates(w, r)
			return
		}
		s.handleAdminBlockedDateByID(w, r, parts[1])
	case "export":
		s.handleAdminExport(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.sessions.Logout(r.Context(), bearerToken(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleAdminRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rooms, err := s.rooms.ListAllRooms(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *HTTPServer) handleAdminRoomByID(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		room, err := s.rooms.GetRoomByID(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, room)
	case http.MethodPatch:
		var patch models.RoomPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if patch.IsEmpty() {
			writeError(w, http.StatusBadRequest, "empty room update")
			return
		}
		if err := s.rooms.UpdateRoom(r.Context(), id, &patch); err != nil {
			writeDomainError(w, err)
			return
		}
		room, err := s.rooms.GetRoomByID(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, room)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleAdminReservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filter := models.ReservationFilter{
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		t, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from; expected YYYY-MM-DD")
			return
		}
		filter.From = t
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
		t, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to; expected YYYY-MM-DD")
			return
		}
		filter.To = t
	}

	reservations, err := s.reservations.ListReservations(r.Context(), filter)
	if err != nil {
		if strings.Contains(err.Error(), "unknown status") {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeDomainError(w, err)
		return
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

func (s *HTTPServer) handleAdminReservationGet(w http.ResponseWriter, r *http.Request, id string) {
	reservation, err := s.reservations.GetReservation(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (s *HTTPServer) handleAdminReservationStatus(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.reservations.UpdateStatus(r.Context(), id, body.Status); err != nil {
		writeDomainError(w, err)
		return
	}

	reservation, err := s.reservations.GetReservation(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (s *HTTPServer) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats, err := s.reservations.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *HTTPServer) handleAdminBlockedDates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var roomID int64
		if raw := r.URL.Query().Get("room_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid room_id")
				return
			}
			roomID = id
		}
		dates, err := s.repo.GetBlockedDates(r.Context(), roomID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if dates == nil {
			dates = []models.BlockedDate{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"blocked_dates": dates})
	case http.MethodPost:
		var body struct {
			RoomID int64  `json:"room_id"`
			Date   string `json:"date"`
			Reason string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if body.RoomID == 0 {
			writeError(w, http.StatusBadRequest, "room_id is required")
			return
		}
		date, err := time.Parse(models.DateLayout, body.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date; expected YYYY-MM-DD")
			return
		}
		if _, err := s.rooms.GetRoomByID(r.Context(), body.RoomID); err != nil {
			writeDomainError(w, err)
			return
		}

		bd := &models.BlockedDate{RoomID: body.RoomID, Date: date, Reason: strings.TrimSpace(body.Reason)}
		if err := s.repo.CreateBlockedDate(r.Context(), bd); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, bd)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleAdminBlockedDateByID(w http.ResponseWriter, r *http.Request, rawID string) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid blocked date id")
		return
	}

	if err := s.repo.DeleteBlockedDate(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *HTTPServer) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.exporter == nil {
		writeError(w, http.StatusNotFound, "export is not configured")
		return
	}

	start, err := parseDateParam(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseDateParam(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end must not be before start")
		return
	}

	path, err := s.exporter.OccupancyCalendar(r.Context(), start, end)
	if err != nil {
		s.logger.Error().Err(err).Msg("export failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}
