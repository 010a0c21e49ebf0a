package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorageMetricsExportsGaugesAndCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStorageMetrics(reg)

	metrics.SetUsage(2.5, 50)
	metrics.IncSave()
	metrics.IncSave()
	metrics.IncSaveFailure()
	metrics.IncSubmission()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got := fetchGaugeValue(t, mfs, "seedkit_storage_usage_mb"); got != 2.5 {
		t.Fatalf("expected usage 2.5 MB, got %f", got)
	}
	if got := fetchGaugeValue(t, mfs, "seedkit_storage_usage_percent"); got != 50 {
		t.Fatalf("expected usage 50%%, got %f", got)
	}
	if got := fetchScalarCounter(t, mfs, "seedkit_document_saves_total"); got != 2 {
		t.Fatalf("expected 2 saves, got %f", got)
	}
	if got := fetchScalarCounter(t, mfs, "seedkit_document_save_failures_total"); got != 1 {
		t.Fatalf("expected 1 save failure, got %f", got)
	}
	if got := fetchScalarCounter(t, mfs, "seedkit_checkout_submissions_total"); got != 1 {
		t.Fatalf("expected 1 submission, got %f", got)
	}
}

func fetchGaugeValue(t *testing.T, mfs []*dto.MetricFamily, name string) float64 {
	t.Helper()
	mf := findMetricFamily(mfs, name)
	if mf == nil || len(mf.GetMetric()) == 0 {
		t.Fatalf("metric %q not found", name)
	}
	return mf.GetMetric()[0].GetGauge().GetValue()
}

func fetchScalarCounter(t *testing.T, mfs []*dto.MetricFamily, name string) float64 {
	t.Helper()
	mf := findMetricFamily(mfs, name)
	if mf == nil || len(mf.GetMetric()) == 0 {
		t.Fatalf("metric %q not found", name)
	}
	return mf.GetMetric()[0].GetCounter().GetValue()
}
