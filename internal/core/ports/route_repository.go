package ports

import (
	"context"

	"fleetdispatch/internal/core/domain/model/route"
)

// RouteRepository persists route aggregates.
type RouteRepository interface {
	Add(ctx context.Context, aggregate *route.Route) error

	// Update persists the stops of an existing route.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get returns the route or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id string) (*route.Route, error)

	// ListAll returns every route in insertion order.
	ListAll(ctx context.Context) ([]*route.Route, error)
}
