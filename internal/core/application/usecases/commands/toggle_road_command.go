package commands

import (
	"errors"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/pkg/guard"
)

var ErrToggleRoadCommandIsNotConstructed = errors.New(
	"ToggleRoadCommand must be created via NewToggleRoadCommand constructor",
)

// ToggleRoadCommand closes or reopens the road segment between two locations.
type ToggleRoadCommand struct {
	from   kernel.Location
	to     kernel.Location
	closed bool
	guard  guard.ConstructorGuard
}

// NewToggleRoadCommand builds the command from location names.
func NewToggleRoadCommand(from, to string, closed bool) (ToggleRoadCommand, error) {
	fromLocation, fromErr := kernel.NewLocation(from)
	toLocation, toErr := kernel.NewLocation(to)
	if err := errors.Join(fromErr, toErr); err != nil {
		return ToggleRoadCommand{}, err
	}

	return ToggleRoadCommand{
		from:   fromLocation,
		to:     toLocation,
		closed: closed,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ToggleRoadCommand) From() kernel.Location { return c.from }
func (c ToggleRoadCommand) To() kernel.Location { return c.to }
func (c ToggleRoadCommand) Closed() bool { return c.closed }

// Validate ensures the command was created through the constructor.
func (c *ToggleRoadCommand) Validate() error {
	return c.guard.Validate(ErrToggleRoadCommandIsNotConstructed)
}
