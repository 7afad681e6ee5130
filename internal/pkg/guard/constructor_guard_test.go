package guard_test

import (
	"errors"
	"testing"

	"fleetdispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCommandNotConstructed = errors.New("assign parcel command is not constructed")

// assignCommand mirrors how commands embed the guard.
type assignCommand struct {
	parcelID string
	guard    guard.ConstructorGuard
}

func newAssignCommand(parcelID string) assignCommand {
	return assignCommand{parcelID: parcelID, guard: guard.NewConstructorGuard()}
}

func (c assignCommand) Validate() error {
	return c.guard.Validate(errCommandNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		guard   guard.ConstructorGuard
		given   error
		wantErr error
	}{
		{name: "constructed with own error", guard: guard.NewConstructorGuard(), given: errCommandNotConstructed},
		{name: "constructed with nil error", guard: guard.NewConstructorGuard()},
		{name: "zero value with own error", given: errCommandNotConstructed, wantErr: errCommandNotConstructed},
		{name: "zero value with nil error", wantErr: guard.ErrDefaultConstructorGuard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard.Validate(tt.given)

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestConstructorGuard_Embedded(t *testing.T) {
	t.Run("built by constructor", func(t *testing.T) {
		cmd := newAssignCommand("P-1")

		require.NoError(t, cmd.Validate())
		assert.Equal(t, "P-1", cmd.parcelID)
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		var cmd assignCommand

		assert.ErrorIs(t, cmd.Validate(), errCommandNotConstructed)
	})

	t.Run("copies keep the state", func(t *testing.T) {
		cmd := newAssignCommand("P-2")
		copied := cmd

		assert.NoError(t, copied.Validate())
	})
}
