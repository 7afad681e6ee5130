package truck

import (
	"errors"
	"fmt"
	"strings"

	"fleetdispatch/internal/pkg/errs"
)

var (
	// ErrTruckIsNotConstructed is returned when a Truck was not created through
	// NewTruck or RestoreTruck.
	ErrTruckIsNotConstructed = errors.New("Truck must be created via NewTruck constructor")

	// ErrRouteAlreadyAttached is returned when a routed truck is asked to take
	// a different route.
	ErrRouteAlreadyAttached = errors.New("truck already runs another route")
)

// Truck is the aggregate root for a vehicle.
//
// Invariants:
//   - id is non-blank
//   - maxCapacity is strictly positive
//   - a truck with a route is Active, a truck without one is Idle
//
// Load is not stored on the truck. It is derived from the parcels assigned
// to it, so the aggregate cannot drift from the parcel records.
type Truck struct {
	id            string
	routeID       *string
	maxCapacity   float64
	status        Status
	isConstructed bool
}

// NewTruck creates an idle, unrouted truck.
//
// Example:
//
//	t, err := truck.NewTruck("T-LG-001", 5000)
func NewTruck(id string, maxCapacity float64) (*Truck, error) {
	t := &Truck{status: Idle, isConstructed: true}

	if err := errors.Join(
		t.setID(id),
		t.setMaxCapacity(maxCapacity),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTruck rebuilds a truck from persistence.
//
// Parameters:
//   - routeID: nil or blank for an unrouted truck
//   - status: persisted status, must be Idle or Active
func RestoreTruck(id string, routeID *string, maxCapacity float64, status Status) (*Truck, error) {
	t := &Truck{isConstructed: true}

	if err := errors.Join(
		t.setID(id),
		t.setMaxCapacity(maxCapacity),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	t.status = status
	if routeID != nil && strings.TrimSpace(*routeID) != "" {
		r := strings.TrimSpace(*routeID)
		t.routeID = &r
	}

	return t, nil
}

// Validate ensures the truck was created through a constructor.
func (t *Truck) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTruckIsNotConstructed
	}
	return nil
}

// IsEqual compares trucks by identifier.
func (t *Truck) IsEqual(other *Truck) bool {
	return other != nil && t.id == other.id
}

// ID returns the truck identifier.
func (t *Truck) ID() string {
	return t.id
}

// MaxCapacity returns the weight limit of the truck.
func (t *Truck) MaxCapacity() float64 {
	return t.maxCapacity
}

// Status returns the operational status.
func (t *Truck) Status() Status {
	return t.status
}

// RouteID returns the attached route and whether one is set.
func (t *Truck) RouteID() (string, bool) {
	if t.routeID == nil {
		return "", false
	}
	return *t.routeID, true
}

// IsRouted reports whether a route is attached.
func (t *Truck) IsRouted() bool {
	return t.routeID != nil
}

// RemainingCapacity returns how much weight still fits on top of load.
func (t *Truck) RemainingCapacity(load float64) float64 {
	return t.maxCapacity - load
}

// Fits reports whether adding weight to load stays within maxCapacity.
func (t *Truck) Fits(load, weight float64) bool {
	return load+weight <= t.maxCapacity
}

// AttachRoute puts the truck on a route and marks it Active. Attaching the
// route the truck already runs is a no-op.
//
// Returns:
//   - ErrValueIsRequired for a blank routeID
//   - ErrRouteAlreadyAttached when the truck runs another route
func (t *Truck) AttachRoute(routeID string) error {
	routeID = strings.TrimSpace(routeID)
	if routeID == "" {
		return errs.NewValueIsRequiredError("routeID")
	}

	if t.routeID != nil {
		if *t.routeID == routeID {
			t.status = Active
			return nil
		}
		return fmt.Errorf("%w: %s runs %s", ErrRouteAlreadyAttached, t.id, *t.routeID)
	}

	t.routeID = &routeID
	t.status = Active
	return nil
}

func (t *Truck) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("truckID")
	}
	t.id = id
	return nil
}

func (t *Truck) setMaxCapacity(maxCapacity float64) error {
	if maxCapacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxCapacity",
			fmt.Errorf("%v is not greater than 0", maxCapacity),
		)
	}
	t.maxCapacity = maxCapacity
	return nil
}
