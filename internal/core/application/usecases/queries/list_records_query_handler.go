package queries

import (
	"context"

	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/core/ports"
)

// FleetRecords is every parcel, truck and route in insertion order.
type FleetRecords struct {
	Parcels []*parcel.Parcel
	Trucks  []*truck.Truck
	Routes  []*route.Route
}

type ListRecordsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListRecordsQueryHandler(uowFactory ports.UnitOfWorkFactory) ListRecordsQueryHandler {
	return ListRecordsQueryHandler{uowFactory: uowFactory}
}

func (h ListRecordsQueryHandler) Handle(ctx context.Context, query FleetQuery) (FleetRecords, error) {
	if err := query.Validate(); err != nil {
		return FleetRecords{}, err
	}
	view, err := readFleet(ctx, h.uowFactory)
	if err != nil {
		return FleetRecords{}, err
	}
	return FleetRecords{Parcels: view.parcels, Trucks: view.trucks, Routes: view.routes}, nil
}
