package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the service exports
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	AvailabilityRequests *prometheus.CounterVec
	BookingsCreated      *prometheus.CounterVec
	BookingConflicts     *prometheus.CounterVec
	OutboxPublished      *prometheus.CounterVec
}

// New registers collectors in the default Prometheus registry (served by promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer registers collectors in reg; tests pass a fresh prometheus.NewRegistry()
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	f := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency by operation",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors by operation",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		AvailabilityRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_requests_total",
			Help:        "Slot computations by outcome",
			ConstLabels: constLabels,
		}, []string{"result"}),

		BookingsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings committed",
			ConstLabels: constLabels,
		}, []string{}),

		BookingConflicts: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected because the slot was taken",
			ConstLabels: constLabels,
		}, []string{"stage"}),

		OutboxPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "outbox_events_published_total",
			Help:        "Outbox events delivered to Kafka",
			ConstLabels: constLabels,
		}, []string{"event_type"}),
	}
}

// ObserveAvailability counts one slot computation; safe on a nil *Metrics
func (m *Metrics) ObserveAvailability(result string) {
	if m == nil {
		return
	}
	m.AvailabilityRequests.WithLabelValues(result).Inc()
}

// BookingCreated counts one committed booking
func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues().Inc()
}

// BookingConflict counts a rejected attempt; stage is revalidation, constraint or retries
func (m *Metrics) BookingConflict(stage string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(stage).Inc()
}

// EventPublished counts one outbox event delivered to Kafka
func (m *Metrics) EventPublished(eventType string) {
	if m == nil {
		return
	}
	m.OutboxPublished.WithLabelValues(eventType).Inc()
}
