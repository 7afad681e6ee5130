// Package services provides the domain services of the dispatch engine:
// logic that spans several aggregates or the road network and does not
// belong to any single one of them.
//
// The package includes:
//   - PathFinder: cost-aware Dijkstra over a network snapshot
//   - LoadPlanner: priority-ordered bin-packing of one truck group
//   - RouteSynthesizer: dynamic routes for trucks loaded without a route
//   - ImpactAnalyzer: trucks affected by a road closure and their reroutes
//   - ProposalGenerator: destination clusters matched with trucks
//   - BuildTender: manifests handing unassigned parcels to a partner carrier
//
// Every service is free of I/O and locking. Application handlers load the
// aggregates, call into these services and persist the outcome.
package services
