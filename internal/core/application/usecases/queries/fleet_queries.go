package queries

import (
	"errors"

	"fleetdispatch/internal/pkg/guard"
)

var ErrFleetQueryIsNotConstructed = errors.New(
	"FleetQuery must be created via NewFleetQuery constructor",
)

// FleetQuery is the parameterless query behind every whole-fleet read:
// record listings, the system status, optimization proposals and tenders.
type FleetQuery struct {
	guard guard.ConstructorGuard
}

func NewFleetQuery() FleetQuery {
	return FleetQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q FleetQuery) Validate() error {
	return q.guard.Validate(ErrFleetQueryIsNotConstructed)
}
