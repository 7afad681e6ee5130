package commands

import (
	"errors"
	"strings"

	"fleetdispatch/internal/pkg/errs"
	"fleetdispatch/internal/pkg/guard"
)

var ErrAssignParcelCommandIsNotConstructed = errors.New(
	"AssignParcelCommand must be created via NewAssignParcelCommand constructor",
)

// AssignParcelCommand places one parcel on one truck.
type AssignParcelCommand struct {
	parcelID string
	truckID  string
	guard    guard.ConstructorGuard
}

// NewAssignParcelCommand requires both identifiers.
func NewAssignParcelCommand(parcelID, truckID string) (AssignParcelCommand, error) {
	parcelID = strings.TrimSpace(parcelID)
	truckID = strings.TrimSpace(truckID)

	var problems []error
	if parcelID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("parcelID"))
	}
	if truckID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("truckID"))
	}
	if err := errors.Join(problems...); err != nil {
		return AssignParcelCommand{}, err
	}

	return AssignParcelCommand{
		parcelID: parcelID,
		truckID:  truckID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ParcelID returns the parcel to assign.
func (c AssignParcelCommand) ParcelID() string {
	return c.parcelID
}

// TruckID returns the target truck.
func (c AssignParcelCommand) TruckID() string {
	return c.truckID
}

// Validate ensures the command was created through the constructor.
func (c *AssignParcelCommand) Validate() error {
	return c.guard.Validate(ErrAssignParcelCommandIsNotConstructed)
}
