// Package ports defines the contracts between the dispatch core and its
// infrastructure: record stores, the audit log, the execution lock and the
// road network.
package ports

import (
	"context"

	"fleetdispatch/internal/core/domain/model/parcel"
)

// ParcelRepository persists parcel aggregates.
type ParcelRepository interface {
	// Add stores a new parcel. Adding an existing id fails.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get returns the parcel or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id string) (*parcel.Parcel, error)

	// GetMany returns the parcels that exist among ids, keyed by id. Unknown
	// ids are simply absent from the result.
	GetMany(ctx context.Context, ids []string) (map[string]*parcel.Parcel, error)

	// ListAssignedTo returns every parcel assigned to the truck. Their weights
	// sum up to the truck's current load.
	ListAssignedTo(ctx context.Context, truckID string) ([]*parcel.Parcel, error)

	// ListAll returns every parcel in insertion order.
	ListAll(ctx context.Context) ([]*parcel.Parcel, error)
}
