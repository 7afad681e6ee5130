package memory

import (
	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
)

// Records are stored as plain values so no aggregate pointer is ever shared
// between two units of work.

type parcelRecord struct {
	id              string
	destination     string
	weight          float64
	assignedTruckID *string
}

func toParcelRecord(p *parcel.Parcel) parcelRecord {
	record := parcelRecord{id: p.ID(), destination: p.Destination().Name(), weight: p.Weight()}
	if truckID, ok := p.AssignedTruck(); ok {
		record.assignedTruckID = &truckID
	}
	return record
}

func (r parcelRecord) restore() (*parcel.Parcel, error) {
	destination, err := kernel.NewLocation(r.destination)
	if err != nil {
		return nil, err
	}
	return parcel.RestoreParcel(r.id, destination, r.weight, r.assignedTruckID)
}

type truckRecord struct {
	id          string
	routeID     *string
	maxCapacity float64
	status      truck.Status
}

func toTruckRecord(t *truck.Truck) truckRecord {
	record := truckRecord{id: t.ID(), maxCapacity: t.MaxCapacity(), status: t.Status()}
	if routeID, ok := t.RouteID(); ok {
		record.routeID = &routeID
	}
	return record
}

func (r truckRecord) restore() (*truck.Truck, error) {
	return truck.RestoreTruck(r.id, r.routeID, r.maxCapacity, r.status)
}

type routeRecord struct {
	id            string
	stops         []string
	capacityLimit float64
	kind          route.Kind
}

func toRouteRecord(r *route.Route) routeRecord {
	stops := r.Stops()
	names := make([]string, 0, len(stops))
	for _, stop := range stops {
		names = append(names, stop.Name())
	}
	return routeRecord{id: r.ID(), stops: names, capacityLimit: r.CapacityLimit(), kind: r.Kind()}
}

func (r routeRecord) restore() (*route.Route, error) {
	stops := make([]kernel.Location, 0, len(r.stops))
	for _, name := range r.stops {
		stop, err := kernel.NewLocation(name)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return route.NewRoute(r.id, stops, r.capacityLimit, r.kind)
}
