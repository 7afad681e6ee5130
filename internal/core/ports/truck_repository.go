package ports

import (
	"context"

	"fleetdispatch/internal/core/domain/model/truck"
)

// TruckRepository persists truck aggregates.
type TruckRepository interface {
	Add(ctx context.Context, aggregate *truck.Truck) error
	Update(ctx context.Context, aggregate *truck.Truck) error

	// Get returns the truck or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id string) (*truck.Truck, error)

	// ListAll returns every truck in insertion order.
	ListAll(ctx context.Context) ([]*truck.Truck, error)
}
