package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"harustay/internal/config"
	"harustay/internal/models"

	"github.com/rs/zerolog"
)

// Service fetches the KRW/USD exchange rate for price display and caches it
// with an explicit TTL. The clock is injected so tests control expiry.
type Service struct {
	url      string
	ttl      time.Duration
	fallback float64
	client   *http.Client
	logger   *zerolog.Logger
	now      func() time.Time

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
}

type rateResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func NewService(cfg config.RatesConfig, logger *zerolog.Logger) *Service {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Duration(models.DefaultRatesTTL) * time.Second
	}
	return &Service{
		url:      cfg.URL,
		ttl:      ttl,
		fallback: cfg.FallbackRate,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Rate returns the cached rate while it is fresh, refetching once the TTL
// has passed. A failed refresh serves the stale value when one exists and
// the configured fallback otherwise.
func (s *Service) Rate(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rate > 0 && s.now().Sub(s.fetchedAt) < s.ttl {
		return s.rate, nil
	}

	rate, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("exchange rate fetch failed")
		if s.rate > 0 {
			return s.rate, nil
		}
		if s.fallback > 0 {
			return s.fallback, nil
		}
		return 0, err
	}

	s.rate = rate
	s.fetchedAt = s.now()
	return rate, nil
}

func (s *Service) fetch(ctx context.Context) (float64, error) {
	if s.url == "" {
		return 0, fmt.Errorf("rates url is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rates endpoint returned status %d", resp.StatusCode)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode rates response: %w", err)
	}

	rate, ok := body.Rates["KRW"]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("rates response has no usable KRW rate")
	}
	return rate, nil
}
