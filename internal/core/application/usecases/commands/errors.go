package commands

import (
	"errors"
	"fmt"

	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/core/domain/model/kernel"
)

var (
	// ErrCapacityExceeded is the kind of rejections caused by truck capacity.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrStructuralInvalid is the kind of rejections caused by a truck
	// without a usable route.
	ErrStructuralInvalid = errors.New("structural invariant violated")

	// ErrDestinationMismatch is the kind of rejections caused by a parcel
	// whose destination is not a stop of the truck's route.
	ErrDestinationMismatch = errors.New("destination is not on route")
)

// AssignmentRejectedError is returned when a single assignment fails one of
// its checks. It unwraps to Kind, which is errs.ErrObjectNotFound,
// parcel.ErrAlreadyAssigned, ErrStructuralInvalid, ErrDestinationMismatch or
// ErrCapacityExceeded.
type AssignmentRejectedError struct {
	WorkflowID kernel.UUID
	Step       string
	Reason     string
	Severity   audit.Severity
	Kind       error
}

func (e *AssignmentRejectedError) Error() string {
	return fmt.Sprintf("assignment rejected at %s: %s", e.Step, e.Reason)
}

func (e *AssignmentRejectedError) Unwrap() error {
	return e.Kind
}
