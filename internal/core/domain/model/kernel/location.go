package kernel

import (
	"errors"
	"strings"

	"fleetdispatch/internal/pkg/errs"
	"fleetdispatch/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")

// ErrLocationNameIsRequired is returned when a location name is blank.
var ErrLocationNameIsRequired = errs.NewValueIsRequiredError("location name")

// Location identifies a node of the road network by name, for example
// "Madurai" or "Chennai (Warehouse)". It has no attributes beyond identity:
// two locations are equal when their names are equal.
//
// Names are trimmed but otherwise kept verbatim, since route stops and graph
// nodes are matched exactly.
//
// Example:
//
//	depot, err := kernel.NewLocation("Chennai (Warehouse)")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(depot) // Chennai (Warehouse)
type Location struct { //nolint:recvcheck //using for validation
	name  string
	guard guard.ConstructorGuard
}

// NewLocation creates a Location from a non-blank name.
func NewLocation(name string) (Location, error) {
	location := Location{guard: guard.NewConstructorGuard()}
	if err := location.setName(name); err != nil {
		return Location{}, err
	}
	return location, nil
}

// Validate reports whether the location was built by NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Name returns the location name.
func (l Location) Name() string {
	return l.name
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return l.name
}

// IsEqual compares two locations by name.
func (l Location) IsEqual(other Location) bool {
	return l.name == other.name
}

func (l *Location) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrLocationNameIsRequired
	}
	l.name = name
	return nil
}
