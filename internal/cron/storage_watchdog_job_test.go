package cron

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/seedkitapp/seedkit-backend/internal/quota"
	"github.com/seedkitapp/seedkit-backend/pkg/metrics"
)

type stubEstimator struct {
	snap quota.Snapshot
	err  error
}

func (s *stubEstimator) Snapshot(context.Context) (quota.Snapshot, error) {
	return s.snap, s.err
}

type stubSaveReporter struct {
	savedAt time.Time
	err     error
}

func (s *stubSaveReporter) SaveStatus() (time.Time, error) {
	return s.savedAt, s.err
}

func TestNewStorageWatchdogJobRequiresDependencies(t *testing.T) {
	logg := testLogger()
	estimator := &stubEstimator{}
	store := &stubSaveReporter{}
	if _, err := NewStorageWatchdogJob(StorageWatchdogParams{Estimator: estimator, Store: store}); err == nil {
		t.Fatalf("expected error without logger")
	}
	if _, err := NewStorageWatchdogJob(StorageWatchdogParams{Logger: logg, Store: store}); err == nil {
		t.Fatalf("expected error without estimator")
	}
	if _, err := NewStorageWatchdogJob(StorageWatchdogParams{Logger: logg, Estimator: estimator}); err == nil {
		t.Fatalf("expected error without store")
	}
}

func TestStorageWatchdogRefreshesUsageGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	storageMetrics := metrics.NewStorageMetrics(reg)
	job, err := NewStorageWatchdogJob(StorageWatchdogParams{
		Logger:    testLogger(),
		Estimator: &stubEstimator{snap: quota.Snapshot{UsedMB: 3.25, MaxMB: 5, UsedPercent: 65}},
		Store:     &stubSaveReporter{savedAt: time.Now()},
		Metrics:   storageMetrics,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if job.Name() != "storage-watchdog" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got := gaugeValue(t, mfs, "seedkit_storage_usage_mb"); got != 3.25 {
		t.Fatalf("expected usage gauge 3.25, got %f", got)
	}
	if got := gaugeValue(t, mfs, "seedkit_storage_usage_percent"); got != 65 {
		t.Fatalf("expected percent gauge 65, got %f", got)
	}
}

func TestStorageWatchdogSurfacesSaveFailure(t *testing.T) {
	job, err := NewStorageWatchdogJob(StorageWatchdogParams{
		Logger:    testLogger(),
		Estimator: &stubEstimator{snap: quota.Snapshot{UsedMB: 0.5, MaxMB: 5, UsedPercent: 10}},
		Store:     &stubSaveReporter{err: errors.New("kv unreachable")},
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	runErr := job.Run(context.Background())
	if runErr == nil {
		t.Fatalf("expected save failure to surface")
	}
	if !strings.Contains(runErr.Error(), "kv unreachable") {
		t.Fatalf("expected save error in chain, got %v", runErr)
	}
}

func TestStorageWatchdogCombinesFailures(t *testing.T) {
	job, err := NewStorageWatchdogJob(StorageWatchdogParams{
		Logger:    testLogger(),
		Estimator: &stubEstimator{err: errors.New("walk failed")},
		Store:     &stubSaveReporter{err: errors.New("kv unreachable")},
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	runErr := job.Run(context.Background())
	if runErr == nil {
		t.Fatalf("expected combined failure")
	}
	msg := runErr.Error()
	if !strings.Contains(msg, "walk failed") || !strings.Contains(msg, "kv unreachable") {
		t.Fatalf("expected both failures in chain, got %v", runErr)
	}
}

func gaugeValue(t *testing.T, mfs []*dto.MetricFamily, name string) float64 {
	t.Helper()
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		if len(mf.GetMetric()) == 0 {
			break
		}
		return mf.GetMetric()[0].GetGauge().GetValue()
	}
	t.Fatalf("metric %q not found", name)
	return 0
}
