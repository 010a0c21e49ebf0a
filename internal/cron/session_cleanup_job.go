package cron

import (
	"context"
	"fmt"

	"github.com/seedkitapp/seedkit-backend/pkg/logger"
)

// SessionCleanupParams configures the session cleanup job.
type SessionCleanupParams struct {
	Logger   *logger.Logger
	Sessions sessionSweeper
}

type sessionSweeper interface {
	Sweep(ctx context.Context) int
}

// NewSessionCleanupJob constructs the job that evicts expired sessions so
// abandoned carts do not pin memory between visits.
func NewSessionCleanupJob(params SessionCleanupParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &sessionCleanupJob{
		logg:     params.Logger,
		sessions: params.Sessions,
	}, nil
}

type sessionCleanupJob struct {
	logg     *logger.Logger
	sessions sessionSweeper
}

func (j *sessionCleanupJob) Name() string { return "session-cleanup" }

func (j *sessionCleanupJob) Run(ctx context.Context) error {
	removed := j.sessions.Sweep(ctx)
	if removed > 0 {
		logCtx := j.logg.WithFields(ctx, map[string]any{"removed": removed})
		j.logg.Info(logCtx, "expired sessions swept")
	}
	return nil
}
