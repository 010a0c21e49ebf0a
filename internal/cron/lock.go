package cron

import (
	"context"
	"sync"
)

// Lock coordinates exclusive cron runs.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// LocalLock implements Lock within a single process. The cron service runs
// in-process with the API server, so exclusion only has to hold between
// overlapping cycles, never across instances.
type LocalLock struct {
	mu sync.Mutex
}

// NewLocalLock constructs a process-local lock.
func NewLocalLock() *LocalLock {
	return &LocalLock{}
}

// Acquire takes the lock unless a cycle already holds it.
func (l *LocalLock) Acquire(context.Context) (bool, error) {
	return l.mu.TryLock(), nil
}

// Release frees the lock. Callers must only release after a successful
// acquire.
func (l *LocalLock) Release(context.Context) error {
	l.mu.Unlock()
	return nil
}
