package route

import (
	"fmt"
	"strings"

	"fleetdispatch/internal/pkg/errs"
)

// Kind tells how a route came to exist.
type Kind int

const (
	// UnknownKind catches uninitialized values.
	UnknownKind Kind = iota

	// Static routes are registered by operators.
	Static

	// Dynamic routes are synthesized for unrouted trucks during batch assignment.
	Dynamic
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind: "UNKNOWN",
		Static:      "STATIC",
		Dynamic:     "DYNAMIC",
	}
}

// ParseKind converts a persisted value into a Kind. An empty string is Static.
func ParseKind(s string) (Kind, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return Static, nil
	}
	for kind, str := range getKindStrings() {
		if kind != UnknownKind && str == normalized {
			return kind, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid route kind", s))
}

// Validate rejects UnknownKind and out-of-range values.
func (k Kind) Validate() error {
	if k != Static && k != Dynamic {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid route kind", k))
	}
	return nil
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "UNKNOWN"
}
