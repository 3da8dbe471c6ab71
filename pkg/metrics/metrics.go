package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты загрузки переопределения при прогреве кэша
const (
	LookupOverride = "override"
	LookupAbsent   = "absent"
	LookupFailed   = "failed"
)

// Metrics набор метрик сервиса
// Каждый экземпляр регистрирует метрики в собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	PrefetchLookupsTotal *prometheus.CounterVec
	PrefetchWarmDuration prometheus.Histogram
	ActiveCalendarViews  prometheus.Gauge
}

// New создает и регистрирует метрики для сервиса serviceName
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		PrefetchLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_prefetch_lookups_total",
			Help:        "Per-date override lookups issued while warming the calendar cache",
			ConstLabels: constLabels,
		}, []string{"result"}),

		PrefetchWarmDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "calendar_prefetch_warm_duration_seconds",
			Help:        "Time to settle all lookups of one warm",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}),

		ActiveCalendarViews: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "calendar_active_views",
			Help:        "Calendar views currently held in memory",
			ConstLabels: constLabels,
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.PrefetchLookupsTotal,
		m.PrefetchWarmDuration,
		m.ActiveCalendarViews,
	)

	return m
}

// Handler возвращает HTTP handler с метриками в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveLookup учитывает результат загрузки переопределения одной даты
// Безопасно вызывать на nil
func (m *Metrics) ObserveLookup(result string) {
	if m == nil {
		return
	}
	m.PrefetchLookupsTotal.WithLabelValues(result).Inc()
}

// ObserveWarm учитывает длительность прогрева кэша
func (m *Metrics) ObserveWarm(d time.Duration) {
	if m == nil {
		return
	}
	m.PrefetchWarmDuration.Observe(d.Seconds())
}

// SetActiveViews выставляет количество активных представлений календаря
func (m *Metrics) SetActiveViews(n int) {
	if m == nil {
		return
	}
	m.ActiveCalendarViews.Set(float64(n))
}

// ObserveDBQuery учитывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveHTTPRequest учитывает HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
