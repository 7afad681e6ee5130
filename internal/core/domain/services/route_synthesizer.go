package services

import (
	"errors"
	"fmt"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/pkg/errs"
)

// ErrRouteNotDynamic is returned when the synthesized route id is already
// taken by a static route, which is never extended.
var ErrRouteNotDynamic = errors.New("route id is held by a static route")

// RouteSynthesizer builds dynamic routes for trucks that received parcels
// while having no route.
//
// The route is named after the first destination and starts at the depot:
//
//	R-DYNAMIC-MADURAI: [Chennai (Warehouse), Madurai, Tirunelveli]
type RouteSynthesizer struct {
	depot kernel.Location
}

// NewRouteSynthesizer creates a synthesizer starting every route at depot.
func NewRouteSynthesizer(depot kernel.Location) (*RouteSynthesizer, error) {
	if err := depot.Validate(); err != nil {
		return nil, err
	}
	return &RouteSynthesizer{depot: depot}, nil
}

// Depot returns the first stop of synthesized routes.
func (s *RouteSynthesizer) Depot() kernel.Location {
	return s.depot
}

// RouteID returns the identifier a route for destinations would get.
func (s *RouteSynthesizer) RouteID(destinations []kernel.Location) (string, error) {
	if len(destinations) == 0 {
		return "", errs.NewValueIsRequiredError("destinations")
	}
	return route.DynamicID(destinations[0]), nil
}

// Synthesize returns the route serving destinations.
//
// When existing is nil a new Dynamic route is built with stops
// [depot, destinations...] and DynamicCapacityLimit. Otherwise the missing
// destinations are appended to existing, which must be Dynamic. Repeated
// destinations are kept once.
//
// Returns:
//   - *route.Route: the new or extended route
//   - bool: true when the route was created and must be registered
//   - error: ErrValueIsRequired for an empty destination list,
//     ErrRouteNotDynamic when existing is a Static route
func (s *RouteSynthesizer) Synthesize(existing *route.Route, destinations []kernel.Location) (*route.Route, bool, error) {
	id, err := s.RouteID(destinations)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		if existing.Kind() != route.Dynamic {
			return nil, false, fmt.Errorf("%w: %s", ErrRouteNotDynamic, existing.ID())
		}
		if _, err := existing.AddStops(destinations...); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	r, err := route.NewRoute(id, []kernel.Location{s.depot}, route.DynamicCapacityLimit, route.Dynamic)
	if err != nil {
		return nil, false, err
	}
	if _, err := r.AddStops(destinations...); err != nil {
		return nil, false, err
	}
	return r, true, nil
}
