package queries

import (
	"context"

	"fleetdispatch/internal/core/domain/services"
	"fleetdispatch/internal/core/ports"
)

// FindPathQueryHandler prices a path over a snapshot of the live network,
// so a concurrent closure never changes the graph halfway through a search.
type FindPathQueryHandler struct {
	roads  ports.RoadNetwork
	finder *services.PathFinder
}

func NewFindPathQueryHandler(roads ports.RoadNetwork, finder *services.PathFinder) FindPathQueryHandler {
	return FindPathQueryHandler{roads: roads, finder: finder}
}

// Handle returns the cheapest path, services.ErrInvalidNode for an unknown
// endpoint or services.ErrNoPath when the endpoints are disconnected.
func (h FindPathQueryHandler) Handle(ctx context.Context, query FindPathQuery) (services.Path, error) {
	if err := query.Validate(); err != nil {
		return services.Path{}, err
	}
	if err := ctx.Err(); err != nil {
		return services.Path{}, err
	}
	return h.finder.FindPath(h.roads.Snapshot(), query.From(), query.To())
}
