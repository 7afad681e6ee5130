package commands

import (
	"context"
	"log/slog"

	"fleetdispatch/internal/core/domain/model/network"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/services"
	"fleetdispatch/internal/core/ports"
	"fleetdispatch/internal/pkg/metrics"
)

// Segment states reported after a toggle.
const (
	SegmentClosed = "CLOSED"
	SegmentOpen   = "OPEN"
)

// RoadToggleResult reports the segment after the toggle and, for closures,
// the trucks it affects.
type RoadToggleResult struct {
	Segment network.Segment
	Status  string
	Impacts []services.Impact
}

// ToggleRoadCommandHandler applies closures and reopenings to the road
// network. Closures trigger an impact scan over every routed truck.
//
// The handler does not take the execution lock: it only changes the graph
// and reads trucks and routes.
type ToggleRoadCommandHandler struct {
	roads      ports.RoadNetwork
	uowFactory UoWFactory
	analyzer   *services.ImpactAnalyzer
	logger     *slog.Logger
	metrics    *metrics.Collector
}

// NewToggleRoadCommandHandler creates the handler. collector may be nil.
func NewToggleRoadCommandHandler(
	roads ports.RoadNetwork,
	uowFactory UoWFactory,
	analyzer *services.ImpactAnalyzer,
	logger *slog.Logger,
	collector *metrics.Collector,
) ToggleRoadCommandHandler {
	return ToggleRoadCommandHandler{
		roads:      roads,
		uowFactory: uowFactory,
		analyzer:   analyzer,
		logger:     logger.With("component", "road-resiliency"),
		metrics:    collector,
	}
}

// Handle toggles the segment. An unknown segment yields errs.ErrObjectNotFound.
func (h ToggleRoadCommandHandler) Handle(ctx context.Context, command ToggleRoadCommand) (RoadToggleResult, error) {
	if err := command.Validate(); err != nil {
		return RoadToggleResult{}, err
	}

	segment, err := h.roads.SetClosed(command.From(), command.To(), command.Closed())
	if err != nil {
		return RoadToggleResult{}, err
	}
	h.metrics.RoadToggled(command.Closed())

	result := RoadToggleResult{Segment: segment, Status: SegmentOpen, Impacts: []services.Impact{}}
	if !command.Closed() {
		h.logger.InfoContext(ctx, "road reopened", "from", command.From().Name(), "to", command.To().Name())
		return result, nil
	}
	result.Status = SegmentClosed

	impacts, err := h.scan(ctx, command)
	if err != nil {
		return RoadToggleResult{}, err
	}
	result.Impacts = impacts

	h.logger.WarnContext(ctx, "road closed",
		"from", command.From().Name(),
		"to", command.To().Name(),
		"affectedTrucks", len(impacts),
	)
	return result, nil
}

func (h ToggleRoadCommandHandler) scan(ctx context.Context, command ToggleRoadCommand) ([]services.Impact, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trucks, err := uow.TruckRepository().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	routes, err := uow.RouteRepository().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*route.Route, len(routes))
	for _, r := range routes {
		byID[r.ID()] = r
	}

	return h.analyzer.OnSegmentClosure(h.roads.Snapshot(), command.From(), command.To(), trucks, byID), nil
}
