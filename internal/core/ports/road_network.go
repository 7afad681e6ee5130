package ports

import (
	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/network"
)

// RoadNetwork gives the application access to the live road graph.
// *network.Graph implements it.
type RoadNetwork interface {
	Snapshot() network.Snapshot
	Segments() []network.Segment
	SetClosed(a, b kernel.Location, closed bool) (network.Segment, error)
}
