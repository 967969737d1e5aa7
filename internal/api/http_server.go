package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"harustay/internal/config"
	"harustay/internal/database"
	"harustay/internal/domain"
	"harustay/internal/metrics"
	"harustay/internal/rates"
	"harustay/internal/service"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the public booking API and the token-guarded admin API.
type HTTPServer struct {
	cfg          config.ServerConfig
	rooms        domain.RoomService
	reservations domain.ReservationService
	availability domain.AvailabilityService
	sessions     domain.SessionManager
	repo         domain.Repository
	rates        *rates.Service
	exporter     Exporter
	limiter      *rateLimiter
	logger       *zerolog.Logger
	server       *http.Server
}

// Exporter writes the occupancy calendar; nil disables the export endpoint.
type Exporter interface {
	OccupancyCalendar(ctx context.Context, startDate, endDate time.Time) (string, error)
}

type Deps struct {
	Rooms        domain.RoomService
	Reservations domain.ReservationService
	Availability domain.AvailabilityService
	Sessions     domain.SessionManager
	Repo         domain.Repository
	Rates        *rates.Service
	Exporter     Exporter
}

func NewHTTPServer(cfg config.ServerConfig, deps Deps, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:          cfg,
		rooms:        deps.Rooms,
		reservations: deps.Reservations,
		availability: deps.Availability,
		sessions:     deps.Sessions,
		repo:         deps.Repo,
		rates:        deps.Rates,
		exporter:     deps.Exporter,
		limiter:      newRateLimiter(cfg),
		logger:       logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/rooms", srv.handleRooms)
	mux.HandleFunc("/api/v1/availability", srv.handleAvailability)
	mux.HandleFunc("/api/v1/reservations", srv.handleReservations)
	mux.HandleFunc("/api/v1/reservations/", srv.handleReservationByID)
	mux.HandleFunc("/api/v1/rates", srv.handleRates)

	mux.HandleFunc("/api/v1/admin/login", srv.handleLogin)
	mux.Handle("/api/v1/admin/", srv.requireSession(http.HandlerFunc(srv.handleAdmin)))

	handler := srv.loggingMiddleware(srv.limiter.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(r.URL.Path)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeDomainError maps store and lifecycle errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrRoomNotFound),
		errors.Is(err, database.ErrReservationNotFound),
		errors.Is(err, database.ErrBlockedDateNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrNotAvailable):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, database.ErrInvalidDateRange),
		errors.Is(err, database.ErrPastDate),
		errors.Is(err, database.ErrDateTooFar),
		errors.Is(err, database.ErrCapacityExceeded):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, database.ErrEmailMismatch):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, database.ErrNotCancellable),
		errors.Is(err, database.ErrInvalidTransition):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
