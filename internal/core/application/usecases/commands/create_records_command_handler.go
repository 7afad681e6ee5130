package commands

import (
	"context"

	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
)

// CreateParcelCommandHandler registers parcels. A duplicate id surfaces as
// the repository's errs.ErrConflict.
type CreateParcelCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateParcelCommandHandler(uowFactory UoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{uowFactory: uowFactory}
}

func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := parcel.NewParcel(cmd.ID(), cmd.Destination(), cmd.Weight())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ParcelRepository().Add(ctx, created); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// CreateTruckCommandHandler registers trucks. When a route id is given the
// route must exist and the truck starts Active on it.
type CreateTruckCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateTruckCommandHandler(uowFactory UoWFactory) CreateTruckCommandHandler {
	return CreateTruckCommandHandler{uowFactory: uowFactory}
}

func (h CreateTruckCommandHandler) Handle(ctx context.Context, cmd CreateTruckCommand) (*truck.Truck, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := truck.NewTruck(cmd.ID(), cmd.MaxCapacity())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.RouteID() != "" {
		if _, err = uow.RouteRepository().Get(ctx, cmd.RouteID()); err != nil {
			return nil, err
		}
		if err = created.AttachRoute(cmd.RouteID()); err != nil {
			return nil, err
		}
	}

	if err = uow.TruckRepository().Add(ctx, created); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// CreateRouteCommandHandler registers static routes.
type CreateRouteCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateRouteCommandHandler(uowFactory UoWFactory) CreateRouteCommandHandler {
	return CreateRouteCommandHandler{uowFactory: uowFactory}
}

func (h CreateRouteCommandHandler) Handle(ctx context.Context, cmd CreateRouteCommand) (*route.Route, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := route.NewRoute(cmd.ID(), cmd.Stops(), cmd.CapacityLimit(), route.Static)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RouteRepository().Add(ctx, created); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}
