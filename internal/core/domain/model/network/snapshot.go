package network

import "fleetdispatch/internal/core/domain/model/kernel"

// Edge is one direction of a segment as seen from a node.
type Edge struct {
	To       kernel.Location
	Distance float64
	Toll     float64
	Closed   bool
}

// Snapshot is a read-only view of the network taken at one instant.
type Snapshot struct {
	nodes     []kernel.Location
	known     map[string]struct{}
	adjacency map[string][]Edge
}

func newSnapshot(nodes []kernel.Location, adjacency map[string][]Edge) Snapshot {
	known := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		known[node.Name()] = struct{}{}
	}
	return Snapshot{nodes: nodes, known: known, adjacency: adjacency}
}

// Nodes returns the locations in insertion order.
func (s Snapshot) Nodes() []kernel.Location {
	result := make([]kernel.Location, len(s.nodes))
	copy(result, s.nodes)
	return result
}

// HasNode reports whether location is part of the network.
func (s Snapshot) HasNode(location kernel.Location) bool {
	_, ok := s.known[location.Name()]
	return ok
}

// Neighbors returns the edges leaving location in segment insertion order.
// The returned slice must not be modified.
func (s Snapshot) Neighbors(location kernel.Location) []Edge {
	return s.adjacency[location.Name()]
}
