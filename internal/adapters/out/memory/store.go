// Package memory is the default record store: parcels, trucks and routes
// held in process memory for the lifetime of the service, plus an in-memory
// audit log.
//
// Units of work stage their writes and apply them to the Store atomically on
// Commit, so a rolled back truck group leaves no trace.
package memory

import (
	"sync"

	"fleetdispatch/internal/core/ports"
)

// Store holds the committed records.
type Store struct {
	mu      sync.RWMutex
	parcels *table[parcelRecord]
	trucks  *table[truckRecord]
	routes  *table[routeRecord]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		parcels: newTable[parcelRecord](),
		trucks:  newTable[truckRecord](),
		routes:  newTable[routeRecord](),
	}
}

// UnitOfWorkFactory creates units of work over a Store.
type UnitOfWorkFactory struct {
	store *Store
}

var _ ports.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)

// NewUnitOfWorkFactory binds a factory to store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create implements ports.UnitOfWorkFactory.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateUnitOfWork()
}

// CreateUnitOfWork returns the concrete unit of work.
func (f *UnitOfWorkFactory) CreateUnitOfWork() *UnitOfWork {
	return newUnitOfWork(f.store)
}
