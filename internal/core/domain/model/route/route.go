package route

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/pkg/errs"
)

const (
	// DynamicPrefix starts the identifier of every synthesized route.
	DynamicPrefix = "R-DYNAMIC-"

	// DynamicCapacityLimit is the capacity limit given to synthesized routes.
	DynamicCapacityLimit = 10000.0
)

// ErrRouteIsNotConstructed is returned when a Route was not created through NewRoute.
var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

var whitespace = regexp.MustCompile(`\s+`)

// Route is the aggregate root for an ordered sequence of stops.
//
// Invariants:
//   - id is non-blank
//   - at least one stop, each a constructed kernel.Location
//   - capacityLimit is strictly positive
//
// A truck may only carry parcels whose destination is one of its route's
// stops. Stops are compared by location name.
type Route struct {
	id            string
	stops         []kernel.Location
	capacityLimit float64
	kind          Kind
	isConstructed bool
}

// NewRoute creates a route.
//
// Parameters:
//   - id: route identifier, e.g. "R-CHN-MDU"
//   - stops: ordered stops, the first one is where the truck starts
//   - capacityLimit: weight limit of the route, must be greater than 0
//   - kind: Static or Dynamic
//
// Example:
//
//	depot, _ := kernel.NewLocation("Chennai (Warehouse)")
//	madurai, _ := kernel.NewLocation("Madurai")
//	r, err := route.NewRoute("R-1", []kernel.Location{depot, madurai}, 5000, route.Static)
func NewRoute(id string, stops []kernel.Location, capacityLimit float64, kind Kind) (*Route, error) {
	r := &Route{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.setStops(stops),
		r.setCapacityLimit(capacityLimit),
		r.setKind(kind),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// DynamicID returns the identifier of the route synthesized for a
// destination: the name upper-cased with whitespace runs replaced by "-".
//
// Example:
//
//	route.DynamicID(tirunelveli) // "R-DYNAMIC-TIRUNELVELI"
func DynamicID(destination kernel.Location) string {
	return DynamicPrefix + whitespace.ReplaceAllString(strings.ToUpper(destination.Name()), "-")
}

// Validate ensures the route was created through NewRoute.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

// ID returns the route identifier.
func (r *Route) ID() string {
	return r.id
}

// Stops returns a copy of the ordered stops.
func (r *Route) Stops() []kernel.Location {
	stops := make([]kernel.Location, len(r.stops))
	copy(stops, r.stops)
	return stops
}

// First returns the first stop.
func (r *Route) First() kernel.Location {
	return r.stops[0]
}

// Last returns the last stop.
func (r *Route) Last() kernel.Location {
	return r.stops[len(r.stops)-1]
}

// CapacityLimit returns the route's weight limit.
func (r *Route) CapacityLimit() float64 {
	return r.capacityLimit
}

// Kind returns how the route was created.
func (r *Route) Kind() Kind {
	return r.kind
}

// Includes reports whether the route stops at location.
func (r *Route) Includes(location kernel.Location) bool {
	for _, stop := range r.stops {
		if stop.IsEqual(location) {
			return true
		}
	}
	return false
}

// HasConsecutive reports whether a and b appear as adjacent stops, in either
// order. Such a route drives over the a-b road segment.
func (r *Route) HasConsecutive(a, b kernel.Location) bool {
	for i := 0; i+1 < len(r.stops); i++ {
		from, to := r.stops[i], r.stops[i+1]
		if (from.IsEqual(a) && to.IsEqual(b)) || (from.IsEqual(b) && to.IsEqual(a)) {
			return true
		}
	}
	return false
}

// AddStops appends every location the route does not stop at yet, keeping
// their order, and returns how many were added.
func (r *Route) AddStops(locations ...kernel.Location) (int, error) {
	added := 0
	for _, location := range locations {
		if err := location.Validate(); err != nil {
			return added, err
		}
		if r.Includes(location) {
			continue
		}
		r.stops = append(r.stops, location)
		added++
	}
	return added, nil
}

func (r *Route) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("routeID")
	}
	r.id = id
	return nil
}

func (r *Route) setStops(stops []kernel.Location) error {
	if len(stops) == 0 {
		return errs.NewValueIsRequiredError("stops")
	}
	for i, stop := range stops {
		if err := stop.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("stops[%d]", i), err)
		}
	}
	r.stops = make([]kernel.Location, len(stops))
	copy(r.stops, stops)
	return nil
}

func (r *Route) setCapacityLimit(capacityLimit float64) error {
	if capacityLimit <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"capacityLimit",
			fmt.Errorf("%v is not greater than 0", capacityLimit),
		)
	}
	r.capacityLimit = capacityLimit
	return nil
}

func (r *Route) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	r.kind = kind
	return nil
}
