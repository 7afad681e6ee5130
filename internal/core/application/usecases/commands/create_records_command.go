package commands

import (
	"errors"
	"strings"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/pkg/errs"
	"fleetdispatch/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
	ErrCreateTruckCommandIsNotConstructed = errors.New(
		"CreateTruckCommand must be created via NewCreateTruckCommand constructor",
	)
	ErrCreateRouteCommandIsNotConstructed = errors.New(
		"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
	)
)

// CreateParcelCommand registers a new unassigned parcel.
type CreateParcelCommand struct {
	id          string
	destination kernel.Location
	weight      float64
	guard       guard.ConstructorGuard
}

// NewCreateParcelCommand validates the destination and weight.
func NewCreateParcelCommand(id, destination string, weight float64) (CreateParcelCommand, error) {
	location, locationErr := kernel.NewLocation(destination)
	var weightErr error
	if weight <= 0 {
		weightErr = errs.NewValueIsOutOfRangeError("weight", weight, "> 0", "+Inf")
	}
	var idErr error
	if strings.TrimSpace(id) == "" {
		idErr = errs.NewValueIsRequiredError("parcelID")
	}
	if err := errors.Join(idErr, locationErr, weightErr); err != nil {
		return CreateParcelCommand{}, err
	}

	return CreateParcelCommand{
		id:          strings.TrimSpace(id),
		destination: location,
		weight:      weight,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateParcelCommand) ID() string { return c.id }
func (c CreateParcelCommand) Destination() kernel.Location { return c.destination }
func (c CreateParcelCommand) Weight() float64 { return c.weight }

func (c *CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// CreateTruckCommand registers a new truck, optionally already on a route.
type CreateTruckCommand struct {
	id          string
	maxCapacity float64
	routeID     string
	guard       guard.ConstructorGuard
}

// NewCreateTruckCommand validates the identifier and capacity. routeID may be empty.
func NewCreateTruckCommand(id string, maxCapacity float64, routeID string) (CreateTruckCommand, error) {
	var problems []error
	if strings.TrimSpace(id) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("truckID"))
	}
	if maxCapacity <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("maxCapacity", maxCapacity, "> 0", "+Inf"))
	}
	if err := errors.Join(problems...); err != nil {
		return CreateTruckCommand{}, err
	}

	return CreateTruckCommand{
		id:          strings.TrimSpace(id),
		maxCapacity: maxCapacity,
		routeID:     strings.TrimSpace(routeID),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTruckCommand) ID() string { return c.id }
func (c CreateTruckCommand) MaxCapacity() float64 { return c.maxCapacity }
func (c CreateTruckCommand) RouteID() string { return c.routeID }

func (c *CreateTruckCommand) Validate() error {
	return c.guard.Validate(ErrCreateTruckCommandIsNotConstructed)
}

// CreateRouteCommand registers a static route.
type CreateRouteCommand struct {
	id            string
	stops         []kernel.Location
	capacityLimit float64
	guard         guard.ConstructorGuard
}

// NewCreateRouteCommand validates the stops and capacity limit.
func NewCreateRouteCommand(id string, stops []string, capacityLimit float64) (CreateRouteCommand, error) {
	locations := make([]kernel.Location, 0, len(stops))
	var problems []error
	for _, stop := range stops {
		location, err := kernel.NewLocation(stop)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		locations = append(locations, location)
	}
	if err := errors.Join(problems...); err != nil {
		return CreateRouteCommand{}, err
	}

	// route.NewRoute covers the remaining invariants.
	if _, err := route.NewRoute(id, locations, capacityLimit, route.Static); err != nil {
		return CreateRouteCommand{}, err
	}

	return CreateRouteCommand{
		id:            strings.TrimSpace(id),
		stops:         locations,
		capacityLimit: capacityLimit,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRouteCommand) ID() string { return c.id }
func (c CreateRouteCommand) Stops() []kernel.Location { return c.stops }
func (c CreateRouteCommand) CapacityLimit() float64 { return c.capacityLimit }

func (c *CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}
