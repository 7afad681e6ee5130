package queries

import (
	"context"

	"fleetdispatch/internal/core/domain/services"
	"fleetdispatch/internal/core/ports"
)

// GetOptimizationProposalsQueryHandler runs the proposal generator over the
// current records and network. Proposals are advice only; executing them is
// a batch submission.
type GetOptimizationProposalsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	roads      ports.RoadNetwork
	generator  *services.ProposalGenerator
}

func NewGetOptimizationProposalsQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	roads ports.RoadNetwork,
	generator *services.ProposalGenerator,
) GetOptimizationProposalsQueryHandler {
	return GetOptimizationProposalsQueryHandler{uowFactory: uowFactory, roads: roads, generator: generator}
}

func (h GetOptimizationProposalsQueryHandler) Handle(ctx context.Context, query FleetQuery) (services.ProposalReport, error) {
	if err := query.Validate(); err != nil {
		return services.ProposalReport{}, err
	}
	view, err := readFleet(ctx, h.uowFactory)
	if err != nil {
		return services.ProposalReport{}, err
	}
	return h.generator.Generate(h.roads.Snapshot(), view.parcels, view.trucks, view.routesByID()), nil
}
