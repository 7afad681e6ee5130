package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command or truck group.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction over the record store. Changes made
// through its repositories become visible to others only after Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error

	// Rollback discards uncommitted changes. Calling it after Commit is a no-op
	// so it can always be deferred.
	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository
	TruckRepository() TruckRepository
	RouteRepository() RouteRepository
}
