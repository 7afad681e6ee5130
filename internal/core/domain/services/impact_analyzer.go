package services

import (
	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/network"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
)

// ImpactAction is the recommendation for a truck hit by a closure.
type ImpactAction string

const (
	Reroute       ImpactAction = "REROUTE"
	ReturnToDepot ImpactAction = "RETURN_TO_DEPOT"

	// RoadClosedImpact describes every closure impact.
	RoadClosedImpact = "CRITICAL - Road Closed"
)

// Impact is the effect of a closed segment on one truck.
type Impact struct {
	TruckID       string
	RouteID       string
	Impact        string
	Action        ImpactAction
	AlternatePath []kernel.Location
	NewCost       *float64
}

// ImpactAnalyzer finds trucks whose route drives over a closed segment and
// proposes an alternative from the route's first stop to its last one.
//
// The analysis is a pure read: it does not change trucks or routes.
type ImpactAnalyzer struct {
	finder *PathFinder
}

// NewImpactAnalyzer creates an ImpactAnalyzer using finder for reroutes.
func NewImpactAnalyzer(finder *PathFinder) *ImpactAnalyzer {
	return &ImpactAnalyzer{finder: finder}
}

// OnSegmentClosure returns one Impact per routed truck whose route has from
// and to as consecutive stops in either order. snapshot must already
// reflect the closure. Trucks whose route is missing from routes are ignored.
func (a *ImpactAnalyzer) OnSegmentClosure(
	snapshot network.Snapshot,
	from, to kernel.Location,
	trucks []*truck.Truck,
	routes map[string]*route.Route,
) []Impact {
	impacts := make([]Impact, 0)

	for _, t := range trucks {
		routeID, ok := t.RouteID()
		if !ok {
			continue
		}
		r, ok := routes[routeID]
		if !ok || r == nil || !r.HasConsecutive(from, to) {
			continue
		}

		impact := Impact{
			TruckID: t.ID(),
			RouteID: routeID,
			Impact:  RoadClosedImpact,
			Action:  ReturnToDepot,
		}

		path, err := a.finder.FindPath(snapshot, r.First(), r.Last())
		if err == nil {
			cost := path.TotalCost
			impact.Action = Reroute
			impact.AlternatePath = path.Nodes
			impact.NewCost = &cost
		}

		impacts = append(impacts, impact)
	}

	return impacts
}
