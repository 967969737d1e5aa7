package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "harustay",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	reservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "harustay",
			Name:      "reservations_created_total",
			Help:      "Reservations accepted into the ledger.",
		},
	)

	availabilityQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "harustay",
			Name:      "availability_queries_total",
			Help:      "Availability resolver invocations.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, reservationsCreated, availabilityQueries)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncReservationCreated counts a newly stored reservation.
func IncReservationCreated() {
	reservationsCreated.Inc()
}

// IncAvailabilityQuery counts an availability computation.
func IncAvailabilityQuery() {
	availabilityQueries.Inc()
}
