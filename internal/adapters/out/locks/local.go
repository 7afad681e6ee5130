package locks

import (
	"context"
	"sync"

	"fleetdispatch/internal/core/ports"
	"fleetdispatch/internal/pkg/errs"

	"golang.org/x/sync/semaphore"
)

// LocalLock is a binary try-lock held in process memory.
type LocalLock struct {
	sem *semaphore.Weighted
}

var _ ports.ExecutionLock = (*LocalLock)(nil)

func NewLocalLock() *LocalLock {
	return &LocalLock{sem: semaphore.NewWeighted(1)}
}

func (l *LocalLock) TryAcquire(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !l.sem.TryAcquire(1) {
		return nil, errs.NewConflictError("execution lock")
	}
	var once sync.Once
	return func() { once.Do(func() { l.sem.Release(1) }) }, nil
}
