package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pms"

// Metrics набор коллекторов Prometheus для всего сервиса.
// HTTP и DB метрики заполняются middleware и оберткой dbmetrics,
// бизнес-метрики — хелперами ниже.
type Metrics struct {
	service string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBConnectionsOpen  *prometheus.GaugeVec
	DBConnectionsIdle  *prometheus.GaugeVec
	DBConnectionsInUse *prometheus.GaugeVec

	// Бизнес-метрики бронирований
	BookingsCreatedTotal    *prometheus.CounterVec
	BookingConflictsTotal   *prometheus.CounterVec
	BookingTransitionsTotal *prometheus.CounterVec
	SweeperCompletionsTotal *prometheus.CounterVec
}

// New создает и регистрирует коллекторы в DefaultRegisterer
func New(serviceName string) *Metrics {
	return &Metrics{
		service: serviceName,

		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_queries_total",
			Help:      "Total number of database queries",
		}, []string{"service", "operation", "status"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"service", "operation"}),

		DBConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_open",
			Help:      "Number of open database connections",
		}, []string{"service"}),

		DBConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_idle",
			Help:      "Number of idle database connections",
		}, []string{"service"}),

		DBConnectionsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_in_use",
			Help:      "Number of database connections in use",
		}, []string{"service"}),

		BookingsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Total number of facility bookings created, by initial status",
		}, []string{"service", "status"}),

		BookingConflictsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Total number of booking requests rejected due to slot conflicts",
		}, []string{"service"}),

		BookingTransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Total number of booking lifecycle transitions, by action",
		}, []string{"service", "action"}),

		SweeperCompletionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_completed_by_sweeper_total",
			Help:      "Total number of bookings auto-completed by the background sweeper",
		}, []string{"service"}),
	}
}

// IncBookingCreated учитывает созданное бронирование.
// Безопасен при nil-коллекторе (метрики выключены).
func (m *Metrics) IncBookingCreated(status string) {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.WithLabelValues(m.service, status).Inc()
}

// IncBookingConflict учитывает отказ из-за занятого слота
func (m *Metrics) IncBookingConflict() {
	if m == nil {
		return
	}
	m.BookingConflictsTotal.WithLabelValues(m.service).Inc()
}

// IncBookingTransition учитывает переход жизненного цикла
func (m *Metrics) IncBookingTransition(action string) {
	if m == nil {
		return
	}
	m.BookingTransitionsTotal.WithLabelValues(m.service, action).Inc()
}

// AddSweeperCompletions учитывает автозавершенные бронирования
func (m *Metrics) AddSweeperCompletions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SweeperCompletionsTotal.WithLabelValues(m.service).Add(float64(n))
}
