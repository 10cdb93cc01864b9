package observability

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

const namespace = "mv"

type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge
	apiErrors   prometheus.Counter

	llmRequests *prometheus.CounterVec
	llmLatency  *prometheus.HistogramVec

	analysisRuns     *prometheus.CounterVec
	analysisLatency  *prometheus.HistogramVec
	sagaCompensation *prometheus.CounterVec
	reportsGenerated prometheus.Counter

	redisUp   prometheus.Gauge
	redisPing prometheus.Gauge

	dbOnce         sync.Once
	scrapeInterval time.Duration
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Current returns the process metrics, or nil when metrics are disabled.
// Every method is nil-safe.
func Current() *Metrics {
	return instance
}

// Init builds the process metrics once. A zero scrapeInterval defaults to 15s.
func Init(log *logger.Logger, scrapeInterval time.Duration) *Metrics {
	initOnce.Do(func() {
		instance = newMetrics(scrapeInterval)
		if log != nil {
			log.Info("metrics initialized")
		}
	})
	return instance
}

func newMetrics(scrapeInterval time.Duration) *Metrics {
	if scrapeInterval <= 0 {
		scrapeInterval = 15 * time.Second
	}
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry:       reg,
		scrapeInterval: scrapeInterval,

		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "api_requests_total",
			Help: "API requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "api_request_duration_seconds",
			Help:    "API request latency in seconds.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		apiErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "api_requests_error_total",
			Help: "API requests answered with a 5xx status.",
		}),

		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "llm_requests_total",
			Help: "Model requests by model and status.",
		}, []string{"model", "status"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "llm_request_duration_seconds",
			Help:    "Model request latency in seconds.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"model", "status"}),

		analysisRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "analysis_runs_total",
			Help: "Analysis passes by pass and outcome.",
		}, []string{"pass", "outcome"}),
		analysisLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "analysis_duration_seconds",
			Help:    "Analysis pass duration in seconds.",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"pass", "outcome"}),
		sagaCompensation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "saga_compensations_total",
			Help: "Saga compensations by operation and status.",
		}, []string{"operation", "status"}),
		reportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "reports_generated_total",
			Help: "PDF reports generated and stored.",
		}),

		redisUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "redis_up",
			Help: "1 when the last redis ping succeeded.",
		}),
		redisPing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "redis_ping_seconds",
			Help: "Last redis ping latency in seconds.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests, m.apiLatency, m.apiInflight, m.apiErrors,
		m.llmRequests, m.llmLatency,
		m.analysisRuns, m.analysisLatency, m.sagaCompensation, m.reportsGenerated,
		m.redisUp, m.redisPing,
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// WriteHTTP serves the Prometheus text exposition.
func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	m.handler.ServeHTTP(w, r)
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
	if strings.HasPrefix(status, "5") {
		m.apiErrors.Inc()
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveLLMRequest(model, status string, dur time.Duration) {
	if m == nil {
		return
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	m.llmRequests.WithLabelValues(model, status).Inc()
	if dur > 0 {
		m.llmLatency.WithLabelValues(model, status).Observe(dur.Seconds())
	}
}

// ObserveAnalysis records one basic or deep pass. outcome is "stored",
// "skipped" or a failure kind.
func (m *Metrics) ObserveAnalysis(pass, outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.analysisRuns.WithLabelValues(pass, outcome).Inc()
	if dur > 0 {
		m.analysisLatency.WithLabelValues(pass, outcome).Observe(dur.Seconds())
	}
}

func (m *Metrics) IncSagaCompensation(operation, status string) {
	if m == nil {
		return
	}
	m.sagaCompensation.WithLabelValues(operation, status).Inc()
}

func (m *Metrics) IncReportGenerated() {
	if m == nil {
		return
	}
	m.reportsGenerated.Inc()
}

// StartDBCollector exports connection pool stats for db. Only the first call
// registers.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	m.dbOnce.Do(func() {
		sqlDB, err := db.DB()
		if err != nil {
			if log != nil {
				log.Warn("metrics: db stats unavailable", "error", err)
			}
			return
		}
		if err := m.registry.Register(collectors.NewDBStatsCollector(sqlDB, db.Name())); err != nil && log != nil {
			log.Warn("metrics: register db stats failed", "error", err)
		}
	})
}

// StartRedisCollector pings addr every scrape interval until ctx ends.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = rdb.Close()
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
