// Package metrics provides Prometheus metrics for the grant tagging service.
//
// Metrics are registered on a private registry rather than the global one so
// that tests and embedded catalogs can create as many instances as they need.
package metrics

import (
	"net/http"
	"time"

	"github.com/poiesic/granttag/core"
	"github.com/poiesic/granttag/search"
	"github.com/poiesic/granttag/tagging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "granttag"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	registry *prometheus.Registry

	// Tagging metrics
	GrantsTagged    prometheus.Counter
	TagsPerGrant    prometheus.Histogram
	TaggingDuration prometheus.Histogram
	Refinements     *prometheus.CounterVec

	// Search metrics
	Searches   *prometheus.CounterVec
	SearchHits *prometheus.HistogramVec
}

var (
	_ tagging.Monitor      = (*Metrics)(nil)
	_ search.SearchMonitor = (*Metrics)(nil)
)

// New creates and registers all metrics on a fresh registry, together with
// the Go runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		GrantsTagged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grants_tagged_total",
			Help:      "Total number of grants tagged",
		}),

		TagsPerGrant: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tags_per_grant",
			Help:      "Number of tags assigned to each grant",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),

		// Refinement calls an LLM, so the upper buckets go to the refine timeout.
		TaggingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tagging_duration_seconds",
			Help:      "Time to tag one grant, refinement included",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .1, .5, 1, 5, 10, 30},
		}),

		Refinements: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refinements_total",
			Help:      "Total number of refinement attempts by outcome",
		}, []string{"outcome"}),

		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of tag searches by mode",
		}, []string{"mode"}),

		SearchHits: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_hits",
			Help:      "Number of grants returned per search",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		}, []string{"mode"}),
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveIndexSize exports the value of size as the number of indexed grants.
// It can be called once per Metrics.
func (m *Metrics) ObserveIndexSize(size func() int) error {
	return m.registry.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "indexed_grants",
			Help:      "Current number of grants in the search index",
		},
		func() float64 {
			return float64(size())
		},
	))
}

// Tagged records one tagged grant.
func (m *Metrics) Tagged(tags int, elapsed time.Duration) {
	m.GrantsTagged.Inc()
	m.TagsPerGrant.Observe(float64(tags))
	m.TaggingDuration.Observe(elapsed.Seconds())
}

// Refined records a refinement outcome.
func (m *Metrics) Refined(outcome string) {
	m.Refinements.WithLabelValues(outcome).Inc()
}

// Start records the start of a search.
func (m *Metrics) Start(_ []string, mode core.SearchMode) {
	m.Searches.WithLabelValues(string(mode)).Inc()
}

// Finish records the number of hits a search returned.
func (m *Metrics) Finish(mode core.SearchMode, hits int) {
	m.SearchHits.WithLabelValues(string(mode)).Observe(float64(hits))
}
