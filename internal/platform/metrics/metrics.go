// Package metrics holds the Prometheus instruments for the recommendation
// pipeline. One Metrics value is created at startup and shared read-only.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	PipelinesStarted   prometheus.Counter
	PipelinesCompleted prometheus.Counter
	PipelinesFailed    prometheus.Counter
	PipelinesDegraded  *prometheus.CounterVec

	StageDuration *prometheus.HistogramVec

	RecommendationsGenerated prometheus.Counter
	EligibilityVerdicts      *prometheus.CounterVec
	EnrichmentCacheHits      prometheus.Counter
	EnrichmentCacheMisses    prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		PipelinesStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edupath_pipelines_started_total",
			Help: "Total recommendation pipeline runs started",
		}),
		PipelinesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edupath_pipelines_completed_total",
			Help: "Total pipeline runs that reached the completed state",
		}),
		PipelinesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edupath_pipelines_failed_total",
			Help: "Total pipeline runs that reached the failed state",
		}),
		PipelinesDegraded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "edupath_pipeline_degraded_stages_total",
			Help: "Non-fatal stage failures continued with neutral defaults",
		}, []string{"stage"}),
		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "edupath_pipeline_stage_duration_seconds",
			Help:    "Duration of each pipeline stage",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		RecommendationsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edupath_recommendations_generated_total",
			Help: "Total scored recommendations returned to callers",
		}),
		EligibilityVerdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "edupath_eligibility_verdicts_total",
			Help: "Eligibility verdicts by outcome (full, conditional, ineligible)",
		}, []string{"outcome"}),
		EnrichmentCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edupath_enrichment_cache_hits_total",
			Help: "Enrichment content served from cache",
		}),
		EnrichmentCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edupath_enrichment_cache_misses_total",
			Help: "Enrichment content generated fresh",
		}),
	}
}

// ObserveStage records one stage duration.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// IncDegraded counts a stage that continued in degraded mode.
func (m *Metrics) IncDegraded(stage string) {
	if m == nil {
		return
	}
	m.PipelinesDegraded.WithLabelValues(stage).Inc()
}

// IncVerdict counts an eligibility outcome.
func (m *Metrics) IncVerdict(outcome string) {
	if m == nil {
		return
	}
	m.EligibilityVerdicts.WithLabelValues(outcome).Inc()
}
