package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"harustay/internal/models"
)

// roomView is the public room representation with locale resolution applied.
type roomView struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PricePerNight int64    `json:"price_per_night"`
	Capacity      int64    `json:"capacity"`
	BedType       string   `json:"bed_type"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

func newRoomView(room models.Room, locale string) roomView {
	return roomView{
		ID:            room.ID,
		Name:          room.LocalizedName(locale),
		Description:   room.LocalizedDescription(locale),
		PricePerNight: room.PricePerNight,
		Capacity:      room.Capacity,
		BedType:       room.BedType,
		Amenities:     room.Amenities,
		Images:        room.Images,
	}
}

func roomViews(rooms []models.Room, locale string) []roomView {
	views := make([]roomView, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, newRoomView(room, locale))
	}
	return views
}

func (s *HTTPServer) handleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rooms, err := s.rooms.ListBookableRooms(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	locale := r.URL.Query().Get("locale")
	writeJSON(w, http.StatusOK, map[string]any{"rooms": roomViews(rooms, locale)})
}

func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	checkIn, err := parseDateParam(r, "check_in")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := parseDateParam(r, "check_out")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rooms, err := s.availability.AvailableRooms(r.Context(), checkIn, checkOut)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	locale := r.URL.Query().Get("locale")
	writeJSON(w, http.StatusOK, map[string]any{
		"check_in":  checkIn.Format(models.DateLayout),
		"check_out": checkOut.Format(models.DateLayout),
		"rooms":     roomViews(rooms, locale),
	})
}

type createReservationRequest struct {
	RoomID         int64  `json:"room_id"`
	GuestName      string `json:"guest_name"`
	GuestEmail     string `json:"guest_email"`
	GuestPhone     string `json:"guest_phone"`
	GuestCountry   string `json:"guest_country"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	Adults         int64  `json:"adults"`
	Children       int64  `json:"children"`
	TotalPrice     int64  `json:"total_price"`
	SpecialRequest string `json:"special_request"`
}

func (s *HTTPServer) handleReservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if body.RoomID == 0 || strings.TrimSpace(body.GuestName) == "" || strings.TrimSpace(body.GuestEmail) == "" {
		writeError(w, http.StatusBadRequest, "room_id, guest_name and guest_email are required")
		return
	}
	if body.Adults < 1 {
		writeError(w, http.StatusBadRequest, "at least one adult is required")
		return
	}

	checkIn, err := time.Parse(models.DateLayout, body.CheckIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid check_in; expected YYYY-MM-DD")
		return
	}
	checkOut, err := time.Parse(models.DateLayout, body.CheckOut)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid check_out; expected YYYY-MM-DD")
		return
	}

	reservation := &models.Reservation{
		RoomID:         body.RoomID,
		GuestName:      strings.TrimSpace(body.GuestName),
		GuestEmail:     strings.TrimSpace(body.GuestEmail),
		GuestPhone:     strings.TrimSpace(body.GuestPhone),
		GuestCountry:   strings.TrimSpace(body.GuestCountry),
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Adults:         body.Adults,
		Children:       body.Children,
		TotalPrice:     body.TotalPrice,
		SpecialRequest: strings.TrimSpace(body.SpecialRequest),
	}

	if err := s.reservations.CreateReservation(r.Context(), reservation); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reservation)
}

// handleReservationByID covers the guest-facing per-reservation routes:
//
//	GET  /api/v1/reservations/{id}?email=...
//	POST /api/v1/reservations/{id}/cancel
func (s *HTTPServer) handleReservationByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/reservations/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		s.handleReservationLookup(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "cancel":
		s.handleReservationCancel(w, r, parts[0])
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleReservationLookup(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	reservation, err := s.reservations.GetReservation(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// A wrong email gets the same response as a missing id so reservation
	// ids cannot be probed.
	if !strings.EqualFold(email, reservation.GuestEmail) {
		writeError(w, http.StatusNotFound, "reservation not found")
		return
	}

	writeJSON(w, http.StatusOK, reservation)
}

func (s *HTTPServer) handleReservationCancel(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Email) == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := s.reservations.GuestCancel(r.Context(), id, body.Email); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": models.StatusCancelled})
}

func (s *HTTPServer) handleRates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.rates == nil {
		writeError(w, http.StatusNotFound, "rates are not configured")
		return
	}

	rate, err := s.rates.Rate(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "exchange rate unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"base":     "USD",
		"currency": "KRW",
		"rate":     rate,
	})
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, &paramError{name + " is required"}
	}
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, &paramError{"invalid " + name + "; expected YYYY-MM-DD"}
	}
	return t, nil
}

type paramError struct{ msg string }

func (e *paramError) Error() string { return e.msg }
