package parcel

import (
	"errors"
	"fmt"
	"strings"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not created through
	// NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

	// ErrAlreadyAssigned is returned when Assign is called on a parcel that
	// already carries a truck.
	ErrAlreadyAssigned = errors.New("parcel is already assigned")
)

// Parcel is the aggregate root for a single shipment.
//
// Invariants:
//   - id is non-blank
//   - destination is a constructed kernel.Location
//   - weight is strictly positive
//   - assignedTruckID transitions from unset to set exactly once
type Parcel struct {
	id              string
	destination     kernel.Location
	weight          float64
	assignedTruckID *string
	isConstructed   bool
}

// NewParcel creates an unassigned parcel.
//
// Parameters:
//   - id: operator supplied identifier, e.g. "P-500"
//   - destination: location the parcel must be delivered to
//   - weight: parcel weight in kilograms, must be greater than 0
//
// Returns:
//   - *Parcel: the created parcel
//   - error: joined validation errors for every invalid argument
//
// Example:
//
//	madurai, _ := kernel.NewLocation("Madurai")
//	p, err := parcel.NewParcel("P-500", madurai, 300)
func NewParcel(id string, destination kernel.Location, weight float64) (*Parcel, error) {
	p := &Parcel{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setDestination(destination),
		p.setWeight(weight),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel rebuilds a parcel from persistence. An empty or nil
// assignedTruckID restores an unassigned parcel.
func RestoreParcel(id string, destination kernel.Location, weight float64, assignedTruckID *string) (*Parcel, error) {
	p, err := NewParcel(id, destination, weight)
	if err != nil {
		return nil, err
	}

	if assignedTruckID != nil && strings.TrimSpace(*assignedTruckID) != "" {
		truckID := strings.TrimSpace(*assignedTruckID)
		p.assignedTruckID = &truckID
	}

	return p, nil
}

// Validate ensures the parcel was created through a constructor.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares parcels by identifier.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id == other.id
}

// ID returns the parcel identifier.
func (p *Parcel) ID() string {
	return p.id
}

// Destination returns the delivery location.
func (p *Parcel) Destination() kernel.Location {
	return p.destination
}

// Weight returns the parcel weight.
func (p *Parcel) Weight() float64 {
	return p.weight
}

// AssignedTruck returns the truck holding the parcel and whether it is set.
func (p *Parcel) AssignedTruck() (string, bool) {
	if p.assignedTruckID == nil {
		return "", false
	}
	return *p.assignedTruckID, true
}

// IsAssigned reports whether the parcel already holds a truck.
func (p *Parcel) IsAssigned() bool {
	return p.assignedTruckID != nil
}

// IsAssignedTo reports whether the parcel is held by the given truck.
func (p *Parcel) IsAssignedTo(truckID string) bool {
	return p.assignedTruckID != nil && *p.assignedTruckID == truckID
}

// Assign places the parcel on a truck.
//
// Returns:
//   - nil on success
//   - ErrValueIsRequired if truckID is blank
//   - ErrAlreadyAssigned if the parcel already holds any truck, including
//     the same one
//
// Example:
//
//	if err := p.Assign("T-101"); errors.Is(err, parcel.ErrAlreadyAssigned) {
//	    // record a uniqueness violation
//	}
func (p *Parcel) Assign(truckID string) error {
	truckID = strings.TrimSpace(truckID)
	if truckID == "" {
		return errs.NewValueIsRequiredError("truckID")
	}

	if p.assignedTruckID != nil {
		return fmt.Errorf("%w: %s is held by truck %s", ErrAlreadyAssigned, p.id, *p.assignedTruckID)
	}

	p.assignedTruckID = &truckID
	return nil
}

func (p *Parcel) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("parcelID")
	}
	p.id = id
	return nil
}

func (p *Parcel) setDestination(destination kernel.Location) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	p.destination = destination
	return nil
}

func (p *Parcel) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not greater than 0", weight))
	}
	p.weight = weight
	return nil
}
