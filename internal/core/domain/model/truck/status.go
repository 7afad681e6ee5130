package truck

import (
	"fmt"
	"strings"

	"fleetdispatch/internal/pkg/errs"
)

// Status is the operational state of a truck.
//
//	Idle ──> Active
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Idle trucks have no route attached.
	Idle

	// Active trucks run a route.
	Active
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "UNKNOWN",
		Idle:    "IDLE",
		Active:  "ACTIVE",
	}
}

// ParseStatus converts a persisted or wire value into a Status. Matching is
// case-insensitive.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid truck status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s != Idle && s != Active {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid truck status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
