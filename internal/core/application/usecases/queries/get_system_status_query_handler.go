package queries

import (
	"context"

	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/core/ports"
)

// SystemStatus counts records, audit entries and road closures.
type SystemStatus struct {
	TotalRoutes       int
	TotalTrucks       int
	ActiveTrucks      int
	TotalParcels      int
	UnassignedParcels int
	Alerts            int
	Workflows         int
	Locations         int
	RoadSegments      int
	ClosedSegments    int
}

type GetSystemStatusQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	auditLog   ports.AuditLog
	roads      ports.RoadNetwork
}

func NewGetSystemStatusQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	auditLog ports.AuditLog,
	roads ports.RoadNetwork,
) GetSystemStatusQueryHandler {
	return GetSystemStatusQueryHandler{uowFactory: uowFactory, auditLog: auditLog, roads: roads}
}

func (h GetSystemStatusQueryHandler) Handle(ctx context.Context, query FleetQuery) (SystemStatus, error) {
	if err := query.Validate(); err != nil {
		return SystemStatus{}, err
	}
	view, err := readFleet(ctx, h.uowFactory)
	if err != nil {
		return SystemStatus{}, err
	}
	stats, err := h.auditLog.Stats(ctx)
	if err != nil {
		return SystemStatus{}, err
	}

	status := SystemStatus{
		TotalRoutes:  len(view.routes),
		TotalTrucks:  len(view.trucks),
		TotalParcels: len(view.parcels),
		Alerts:       stats.Alerts,
		Workflows:    stats.Workflows,
		Locations:    len(h.roads.Snapshot().Nodes()),
	}
	for _, p := range view.parcels {
		if !p.IsAssigned() {
			status.UnassignedParcels++
		}
	}
	for _, t := range view.trucks {
		if t.Status() == truck.Active {
			status.ActiveTrucks++
		}
	}
	for _, segment := range h.roads.Segments() {
		status.RoadSegments++
		if segment.IsClosed() {
			status.ClosedSegments++
		}
	}
	return status, nil
}
