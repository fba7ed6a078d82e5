package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
// Все методы безопасно вызывать на nil (метрики выключены)
type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	dbQueryTime   *prometheus.HistogramVec
	dbQueryErrors *prometheus.CounterVec
	dbOpenConns   prometheus.Gauge
	dbInUseConns  prometheus.Gauge
	dbIdleConns   prometheus.Gauge
	slotBookings  *prometheus.CounterVec
	otpEvents     *prometheus.CounterVec
	remindersSent prometheus.Counter
}

// New регистрирует метрики в стандартном реестре
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		dbQueryTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: labels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections in use",
			ConstLabels: labels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections",
			ConstLabels: labels,
		}),
		slotBookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_bookings_total",
			Help:        "Counselling slot booking attempts by result",
			ConstLabels: labels,
		}, []string{"result"}),
		otpEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "otp_events_total",
			Help:        "OTP send/verify events by outcome",
			ConstLabels: labels,
		}, []string{"event"}),
		remindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slot_reminders_sent_total",
			Help:        "Counselling reminders delivered",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.dbQueryTime,
		m.dbQueryErrors,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.slotBookings,
		m.otpEvents,
		m.remindersSent,
	)

	return m
}

// ObserveHTTP фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveQuery фиксирует выполненный SQL запрос
func (m *Metrics) ObserveQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryTime.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetPoolStats обновляет метрики пула соединений
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(stats.OpenConnections))
	m.dbInUseConns.Set(float64(stats.InUse))
	m.dbIdleConns.Set(float64(stats.Idle))
}

// IncSlotBooking считает попытку бронирования слота (booked, full, disabled, duplicate, cancelled, error)
func (m *Metrics) IncSlotBooking(result string) {
	if m == nil {
		return
	}
	m.slotBookings.WithLabelValues(result).Inc()
}

// IncOTP считает событие OTP (sent, verified, invalid, expired, locked)
func (m *Metrics) IncOTP(event string) {
	if m == nil {
		return
	}
	m.otpEvents.WithLabelValues(event).Inc()
}

// IncReminder считает отправленное напоминание
func (m *Metrics) IncReminder() {
	if m == nil {
		return
	}
	m.remindersSent.Inc()
}
