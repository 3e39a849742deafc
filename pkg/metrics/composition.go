package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sayeedajmal/saudimart-core/pkg/enums"
)

// CompositionMetrics records outcomes of product composition runs.
type CompositionMetrics struct {
	duration *prometheus.HistogramVec
	outcome  *prometheus.CounterVec
	subFail  *prometheus.CounterVec
}

// NewCompositionMetrics registers the composition metrics on the provided registerer.
func NewCompositionMetrics(reg prometheus.Registerer) *CompositionMetrics {
	if reg == nil {
		return &CompositionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "composition_duration_seconds",
		Help:    "Duration of product composition runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
	outcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "composition_outcome_total",
		Help: "Composition runs by final classification.",
	}, []string{"mode", "outcome"})
	subFail := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "composition_sub_entity_failures_total",
		Help: "Failed sub-entity submissions by entity type.",
	}, []string{"entity_type"})
	reg.MustRegister(duration, outcome, subFail)
	return &CompositionMetrics{
		duration: duration,
		outcome:  outcome,
		subFail:  subFail,
	}
}

// ObserveDuration records the duration of a composition run.
func (c *CompositionMetrics) ObserveDuration(mode enums.CompositionMode, d time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(mode.String()).Observe(d.Seconds())
}

// IncOutcome increments the counter for the run's classification.
func (c *CompositionMetrics) IncOutcome(mode enums.CompositionMode, outcome enums.CompositionOutcome) {
	if c == nil || c.outcome == nil {
		return
	}
	c.outcome.WithLabelValues(mode.String(), outcome.String()).Inc()
}

// IncSubEntityFailure increments the failure counter for the entity type.
func (c *CompositionMetrics) IncSubEntityFailure(entityType enums.CatalogEntityType) {
	if c == nil || c.subFail == nil {
		return
	}
	c.subFail.WithLabelValues(entityType.String()).Inc()
}
