package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/seedkitapp/seedkit-backend/internal/quota"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
	"github.com/seedkitapp/seedkit-backend/pkg/metrics"
)

// StorageWatchdogParams configures the storage watchdog job.
type StorageWatchdogParams struct {
	Logger    *logger.Logger
	Estimator usageEstimator
	Store     saveReporter
	Metrics   *metrics.StorageMetrics
}

type usageEstimator interface {
	Snapshot(ctx context.Context) (quota.Snapshot, error)
}

type saveReporter interface {
	SaveStatus() (time.Time, error)
}

// NewStorageWatchdogJob constructs the job that keeps the storage gauge
// fresh and surfaces persistence problems between admin requests.
func NewStorageWatchdogJob(params StorageWatchdogParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Estimator == nil {
		return nil, fmt.Errorf("estimator required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("document store required")
	}
	return &storageWatchdogJob{
		logg:      params.Logger,
		estimator: params.Estimator,
		store:     params.Store,
		metrics:   params.Metrics,
	}, nil
}

type storageWatchdogJob struct {
	logg      *logger.Logger
	estimator usageEstimator
	store     saveReporter
	metrics   *metrics.StorageMetrics
}

func (j *storageWatchdogJob) Name() string { return "storage-watchdog" }

func (j *storageWatchdogJob) Run(ctx context.Context) error {
	var errs []error
	if err := j.refreshUsage(ctx); err != nil {
		errs = append(errs, err)
	}
	if _, err := j.store.SaveStatus(); err != nil {
		errs = append(errs, fmt.Errorf("document save failing: %w", err))
	}
	return multierr.Combine(errs...)
}

func (j *storageWatchdogJob) refreshUsage(ctx context.Context) error {
	snap, err := j.estimator.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("estimate usage: %w", err)
	}
	j.metrics.SetUsage(snap.UsedMB, snap.UsedPercent)
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"used_mb":      snap.UsedMB,
		"max_mb":       snap.MaxMB,
		"used_percent": snap.UsedPercent,
	})
	switch {
	case snap.Block:
		j.logg.Warn(logCtx, "storage usage at block threshold; collection creation disabled")
	case snap.Warn:
		j.logg.Warn(logCtx, "storage usage above warn threshold")
	default:
		j.logg.Info(logCtx, "storage usage refreshed")
	}
	return nil
}
