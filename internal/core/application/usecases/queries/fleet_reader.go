package queries

import (
	"context"

	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/core/ports"
)

// fleetView is a consistent read of every record.
type fleetView struct {
	parcels []*parcel.Parcel
	trucks  []*truck.Truck
	routes  []*route.Route
}

func (v fleetView) routesByID() map[string]*route.Route {
	byID := make(map[string]*route.Route, len(v.routes))
	for _, r := range v.routes {
		byID[r.ID()] = r
	}
	return byID
}

// readFleet loads all records inside one unit of work that is never committed.
func readFleet(ctx context.Context, factory ports.UnitOfWorkFactory) (fleetView, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fleetView{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		view fleetView
		err  error
	)
	if view.parcels, err = uow.ParcelRepository().ListAll(ctx); err != nil {
		return fleetView{}, err
	}
	if view.trucks, err = uow.TruckRepository().ListAll(ctx); err != nil {
		return fleetView{}, err
	}
	if view.routes, err = uow.RouteRepository().ListAll(ctx); err != nil {
		return fleetView{}, err
	}
	return view, nil
}
