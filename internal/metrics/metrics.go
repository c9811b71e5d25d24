package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"StockAnalyzer/internal/model"
)

// Metrics holds all Prometheus metrics for the analyzer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec // labels: source, status
	ComputeDuration  prometheus.Histogram
	PatternsDetected *prometheus.CounterVec // labels: pattern
	HTTPRequests     *prometheus.CounterVec // labels: route, code
}

// NewMetrics registers and returns all Prometheus metrics on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_analyses_total",
			Help: "Analyses run, by data source and outcome",
		}, []string{"source", "status"}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "analyzer_compute_duration_seconds",
			Help:    "Indicator and pattern computation latency per analysis",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		PatternsDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_patterns_detected_total",
			Help: "Chart patterns detected, by pattern name",
		}, []string{"pattern"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analyzer_http_requests_total",
			Help: "HTTP requests served, by route and status code",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.AnalysesTotal,
		m.ComputeDuration,
		m.PatternsDetected,
		m.HTTPRequests,
	)
	return m
}

// ObserveAnalysis records the outcome of one analysis run.
func (m *Metrics) ObserveAnalysis(source string, err error, dur time.Duration, patterns []model.ChartPattern) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.AnalysesTotal.WithLabelValues(source, status).Inc()
	if err != nil {
		return
	}
	m.ComputeDuration.Observe(dur.Seconds())
	for _, p := range patterns {
		m.PatternsDetected.WithLabelValues(string(p.Name)).Inc()
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route string, code int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
