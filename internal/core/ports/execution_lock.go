package ports

import "context"

// ExecutionLock serializes every operation that mutates assignments.
//
// TryAcquire never waits. When the lock is held it returns an error
// wrapping errs.ErrConflict. On success the returned release function must
// be called exactly once; it is safe to defer.
type ExecutionLock interface {
	TryAcquire(ctx context.Context) (release func(), err error)
}
