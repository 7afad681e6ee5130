// Package queries contains the read operations of the dispatch service.
// Query handlers never take the execution lock and never write records.
package queries

import (
	"errors"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/pkg/guard"
)

var ErrFindPathQueryIsNotConstructed = errors.New(
	"FindPathQuery must be created via NewFindPathQuery constructor",
)

// FindPathQuery asks for the cheapest path between two locations.
//
// Example:
//
//	query, err := NewFindPathQuery("Chennai (Warehouse)", "Madurai")
//	path, err := handler.Handle(ctx, query)
//	fmt.Printf("%.2f %s\n", path.TotalCost, path.Currency)
type FindPathQuery struct {
	from  kernel.Location
	to    kernel.Location
	guard guard.ConstructorGuard
}

// NewFindPathQuery requires both endpoint names.
func NewFindPathQuery(from, to string) (FindPathQuery, error) {
	fromLocation, fromErr := kernel.NewLocation(from)
	toLocation, toErr := kernel.NewLocation(to)
	if err := errors.Join(fromErr, toErr); err != nil {
		return FindPathQuery{}, err
	}
	return FindPathQuery{from: fromLocation, to: toLocation, guard: guard.NewConstructorGuard()}, nil
}

func (q FindPathQuery) From() kernel.Location { return q.from }
func (q FindPathQuery) To() kernel.Location { return q.to }

// Validate ensures the query was created through the constructor.
func (q FindPathQuery) Validate() error {
	return q.guard.Validate(ErrFindPathQueryIsNotConstructed)
}
