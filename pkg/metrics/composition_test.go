package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sayeedajmal/saudimart-core/pkg/enums"
)

func TestCompositionMetricsRecord(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewCompositionMetrics(reg)

	m.IncOutcome(enums.CompositionModeCreate, enums.CompositionOutcomePartialSuccess)
	m.IncSubEntityFailure(enums.CatalogEntityPriceTier)
	m.ObserveDuration(enums.CompositionModeCreate, 250*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	for _, want := range []string{
		"composition_duration_seconds",
		"composition_outcome_total",
		"composition_sub_entity_failures_total",
	} {
		if !names[want] {
			t.Fatalf("expected metric family %s, got %v", want, names)
		}
	}
}

func TestCompositionMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *CompositionMetrics
	m.IncOutcome(enums.CompositionModeUpdate, enums.CompositionOutcomeFullSuccess)
	m.IncSubEntityFailure(enums.CatalogEntityImage)
	m.ObserveDuration(enums.CompositionModeUpdate, time.Second)

	empty := NewCompositionMetrics(nil)
	empty.IncOutcome(enums.CompositionModeCreate, enums.CompositionOutcomeTotalFailure)
}
