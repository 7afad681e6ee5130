package kernel

import (
	"fmt"
	"strings"

	"fleetdispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not created through NewUUID or UUIDFromString.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID is a value object wrapping github.com/google/uuid. The engine uses it
// for the identifiers it generates itself: batches, alerts, workflow logs and
// tender manifests. Parcel, truck and route identifiers come from operators
// and stay plain strings.
//
// The zero value is invalid.
//
// Example:
//
//	batchID := kernel.NewUUID()
//	fmt.Println(batchID.String())   // "550e8400-e29b-41d4-a716-446655440000"
//	fmt.Println(batchID.Short(6))   // "550E84"
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn or hyphen-less forms.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// String returns the canonical lower-case representation.
func (u UUID) String() string {
	return u.id.String()
}

// Short returns the first n hexadecimal digits, upper-cased, for
// human-facing references such as manifest numbers. n is clamped to [1, 32].
func (u UUID) Short(n int) string {
	hex := strings.ReplaceAll(u.id.String(), "-", "")
	if n < 1 {
		n = 1
	}
	if n > len(hex) {
		n = len(hex)
	}
	return strings.ToUpper(hex[:n])
}

// IsEqual reports whether both UUIDs hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
