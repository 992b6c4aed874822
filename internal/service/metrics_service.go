package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/timetable-engine/internal/score"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the solver, and provides lightweight snapshots for API
// consumption.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	solveRuns     *prometheus.CounterVec
	solveDuration prometheus.Observer
	solveMoves    prometheus.Counter
	bestHardScore prometheus.Gauge
	bestSoftScore prometheus.Gauge
	lessonsGauge  prometheus.Gauge

	requestCount         uint64
	requestDurationTotal uint64
	solveCount           uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	solveRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_runs_total",
		Help: "Completed solver runs by termination reason",
	}, []string{"termination", "feasible"})

	solveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_run_duration_seconds",
		Help:    "Wall-clock duration of solver runs",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	solveMoves := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solver_moves_total",
		Help: "Moves evaluated across all solver runs",
	})

	bestHardScore := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solver_best_hard_score",
		Help: "Hard score of the most recent best solution",
	})

	bestSoftScore := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solver_best_soft_score",
		Help: "Soft score of the most recent best solution",
	})

	lessonsGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solver_problem_lessons",
		Help: "Lesson count of the most recent problem",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, solveRuns, solveDuration,
		solveMoves, bestHardScore, bestSoftScore, lessonsGauge, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		solveRuns:       solveRuns,
		solveDuration:   solveDuration,
		solveMoves:      solveMoves,
		bestHardScore:   bestHardScore,
		bestSoftScore:   bestSoftScore,
		lessonsGauge:    lessonsGauge,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveSolveRun records the outcome of a finished solver run.
func (m *MetricsService) ObserveSolveRun(termination string, best score.Score, moves int64, lessons int, duration time.Duration) {
	if m == nil {
		return
	}
	m.solveRuns.WithLabelValues(termination, fmt.Sprintf("%t", best.Feasible())).Inc()
	m.solveDuration.Observe(duration.Seconds())
	m.solveMoves.Add(float64(moves))
	m.bestHardScore.Set(float64(best.Hard))
	m.bestSoftScore.Set(float64(best.Soft))
	m.lessonsGauge.Set(float64(lessons))
	atomic.AddUint64(&m.solveCount, 1)
}

// SystemSnapshot aggregates metrics for the status endpoint.
type SystemSnapshot struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	SolveRuns                uint64    `json:"solveRuns"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}

// Snapshot returns aggregated metrics suitable for the status endpoint.
func (m *MetricsService) Snapshot() SystemSnapshot {
	if m == nil {
		return SystemSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return SystemSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		SolveRuns:                atomic.LoadUint64(&m.solveCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
