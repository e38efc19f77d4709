// Package prom implements the observability hooks with Prometheus
// collectors.
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/busline/seatplan/pkg/observability"
)

const namespace = "seatplan"

// Metrics holds the collectors. It satisfies every hook interface in
// [observability], so one value can be registered for all of them.
type Metrics struct {
	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	builds        *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	stale         *prometheus.CounterVec
	cache         *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
	requests      *prometheus.CounterVec
	reqDuration   *prometheus.HistogramVec
	reqErrors     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seat_fetches_total",
			Help:      "Seat-data fetches by bus model and outcome.",
		}, []string{"model", "outcome"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "seat_fetch_duration_seconds",
			Help:      "Seat-data fetch latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"model"}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_builds_total",
			Help:      "Layouts built by bus model.",
		}, []string{"model"}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_build_duration_seconds",
			Help:      "Layout build time.",
			Buckets:   []float64{.00001, .0001, .001, .01, .1},
		}, []string{"model"}),
		stale: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_responses_total",
			Help:      "Fetch results discarded because a newer request superseded them.",
		}, []string{"model"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}, []string{"key_type"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_client_requests_total",
			Help:      "Outgoing HTTP requests by host and status code.",
		}, []string{"method", "host", "code"}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_client_request_duration_seconds",
			Help:      "Outgoing HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "host"}),
		reqErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_client_errors_total",
			Help:      "Outgoing HTTP requests that failed without a response.",
		}, []string{"method", "host"}),
	}

	reg.MustRegister(
		m.fetches, m.fetchDuration,
		m.builds, m.buildDuration, m.stale,
		m.cache, m.cacheBytes,
		m.requests, m.reqDuration, m.reqErrors,
	)
	return m
}

// Install registers m as the global layout, cache and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetLayoutHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

func (m *Metrics) OnFetchStart(context.Context, string, string) {}

func (m *Metrics) OnFetchComplete(_ context.Context, _, model string, _ int, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.fetches.WithLabelValues(model, outcome).Inc()
	m.fetchDuration.WithLabelValues(model).Observe(d.Seconds())
}

func (m *Metrics) OnBuild(_ context.Context, model string, _ int, d time.Duration) {
	m.builds.WithLabelValues(model).Inc()
	m.buildDuration.WithLabelValues(model).Observe(d.Seconds())
}

func (m *Metrics) OnStale(_ context.Context, _, model string) {
	m.stale.WithLabelValues(model).Inc()
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cache.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cache.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cache.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, host, _ string, code int, d time.Duration) {
	m.requests.WithLabelValues(method, host, strconv.Itoa(code)).Inc()
	m.reqDuration.WithLabelValues(method, host).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, host, _ string, _ error) {
	m.reqErrors.WithLabelValues(method, host).Inc()
}

var (
	_ observability.LayoutHooks = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
	_ observability.HTTPHooks   = (*Metrics)(nil)
)
