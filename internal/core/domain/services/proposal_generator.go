package services

import (
	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/network"
	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
)

// ClusterType classifies a proposal.
type ClusterType string

const (
	ClusterOptimization ClusterType = "CLUSTER_OPTIMIZATION"
	UnfulfilledCluster  ClusterType = "UNFULFILLED_CLUSTER"

	// ReadyToOptimize marks proposals the executor can act on.
	ReadyToOptimize = "READY_TO_OPTIMIZE"

	// NoCapacityReason explains unfulfilled clusters.
	NoCapacityReason = "No single truck has enough remaining capacity"
)

// ClusterProposal suggests moving every pending parcel for one destination
// onto a single truck.
type ClusterProposal struct {
	Type          ClusterType
	Destination   kernel.Location
	ParcelIDs     []string
	TotalWeight   float64
	TruckID       string
	EstimatedCost *float64
	Status        string
	Reason        string
}

// ProposalReport is the result of a proposal run.
type ProposalReport struct {
	PendingParcels int
	Proposals      []ClusterProposal
}

// Ready returns the proposals that name a truck.
func (r ProposalReport) Ready() []ClusterProposal {
	ready := make([]ClusterProposal, 0, len(r.Proposals))
	for _, p := range r.Proposals {
		if p.Type == ClusterOptimization {
			ready = append(ready, p)
		}
	}
	return ready
}

// ProposalGenerator clusters unassigned parcels by destination and matches
// each cluster with the first truck able to take it whole. It is read only:
// proposals must go through the batch executor to take effect.
//
// A truck qualifies when it is unrouted or its route stops at the cluster
// destination, and when its current load, plus clusters already proposed to
// it in the same run, plus the cluster weight stays within capacity.
type ProposalGenerator struct {
	finder *PathFinder
	depot  kernel.Location
}

// NewProposalGenerator creates a generator estimating costs from depot.
func NewProposalGenerator(finder *PathFinder, depot kernel.Location) *ProposalGenerator {
	return &ProposalGenerator{finder: finder, depot: depot}
}

// Generate builds proposals from the full parcel list. Clusters appear in the
// order their destination was first seen; trucks are considered in order.
func (g *ProposalGenerator) Generate(
	snapshot network.Snapshot,
	parcels []*parcel.Parcel,
	trucks []*truck.Truck,
	routes map[string]*route.Route,
) ProposalReport {
	loads := make(map[string]float64, len(trucks))
	type cluster struct {
		destination kernel.Location
		parcelIDs   []string
		weight      float64
	}
	var order []string
	clusters := make(map[string]*cluster)
	pending := 0

	for _, p := range parcels {
		if truckID, ok := p.AssignedTruck(); ok {
			loads[truckID] += p.Weight()
			continue
		}
		pending++
		key := p.Destination().Name()
		c, ok := clusters[key]
		if !ok {
			c = &cluster{destination: p.Destination()}
			clusters[key] = c
			order = append(order, key)
		}
		c.parcelIDs = append(c.parcelIDs, p.ID())
		c.weight += p.Weight()
	}

	report := ProposalReport{PendingParcels: pending, Proposals: make([]ClusterProposal, 0, len(order))}
	for _, key := range order {
		c := clusters[key]
		proposal := ClusterProposal{
			Destination: c.destination,
			ParcelIDs:   c.parcelIDs,
			TotalWeight: c.weight,
		}

		chosen := g.pickTruck(c.destination, c.weight, trucks, routes, loads)
		if chosen == nil {
			proposal.Type = UnfulfilledCluster
			proposal.Reason = NoCapacityReason
			report.Proposals = append(report.Proposals, proposal)
			continue
		}

		loads[chosen.ID()] += c.weight
		proposal.Type = ClusterOptimization
		proposal.TruckID = chosen.ID()
		proposal.Status = ReadyToOptimize
		if path, err := g.finder.FindPath(snapshot, g.depot, c.destination); err == nil {
			cost := path.TotalCost
			proposal.EstimatedCost = &cost
		}
		report.Proposals = append(report.Proposals, proposal)
	}

	return report
}

func (g *ProposalGenerator) pickTruck(
	destination kernel.Location,
	weight float64,
	trucks []*truck.Truck,
	routes map[string]*route.Route,
	loads map[string]float64,
) *truck.Truck {
	for _, t := range trucks {
		if routeID, ok := t.RouteID(); ok {
			r, found := routes[routeID]
			if !found || !r.Includes(destination) {
				continue
			}
		}
		if t.Fits(loads[t.ID()], weight) {
			return t
		}
	}
	return nil
}
