package network

import (
	"fmt"
	"sync"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/pkg/errs"
)

// Graph is the mutable road network.
//
// Nodes and adjacency keep insertion order, which makes path search
// deterministic for equal-cost alternatives.
type Graph struct {
	mu        sync.RWMutex
	nodes     []kernel.Location
	known     map[string]struct{}
	segments  []Segment
	byKey     map[segmentKey]int
	adjacency map[string][]int
	backup    map[segmentKey]costs
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		known:     make(map[string]struct{}),
		byKey:     make(map[segmentKey]int),
		adjacency: make(map[string][]int),
		backup:    make(map[segmentKey]costs),
	}
}

// AddNode registers a location. Adding a known location is a no-op.
func (g *Graph) AddNode(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.addNodeLocked(location)
	return nil
}

// AddSegment registers an open road between a and b, adding both endpoints
// as nodes when needed.
//
// Negative distance or toll values are accepted; the path engine treats such
// segments as unusable.
//
// Returns:
//   - ErrValueIsInvalid when a and b are the same location or the segment
//     already exists
func (g *Graph) AddSegment(a, b kernel.Location, distance, toll float64) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if a.IsEqual(b) {
		return errs.NewValueIsInvalidErrorWithCause("segment", fmt.Errorf("%s cannot connect to itself", a))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := keyOf(a, b)
	if _, exists := g.byKey[key]; exists {
		return errs.NewValueIsInvalidErrorWithCause("segment", fmt.Errorf("%s - %s already exists", a, b))
	}

	g.addNodeLocked(a)
	g.addNodeLocked(b)

	idx := len(g.segments)
	g.segments = append(g.segments, Segment{a: a, b: b, distance: distance, toll: toll})
	g.byKey[key] = idx
	g.adjacency[a.Name()] = append(g.adjacency[a.Name()], idx)
	g.adjacency[b.Name()] = append(g.adjacency[b.Name()], idx)
	return nil
}

// HasNode reports whether location is part of the network.
func (g *Graph) HasNode(location kernel.Location) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.known[location.Name()]
	return ok
}

// Segment returns the segment joining a and b in either direction.
func (g *Graph) Segment(a, b kernel.Location) (Segment, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	idx, ok := g.byKey[keyOf(a, b)]
	if !ok {
		return Segment{}, false
	}
	return g.segments[idx], true
}

// Segments returns every segment in insertion order.
func (g *Graph) Segments() []Segment {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]Segment, len(g.segments))
	copy(result, g.segments)
	return result
}

// SetClosed closes or reopens the segment joining a and b.
//
// Closing saves the current distance and toll unless a backup already
// exists, so closing twice keeps the very first values. Reopening restores
// the backup and drops it. Reopening an open segment changes nothing.
//
// Returns:
//   - Segment: the segment after the change
//   - error: ErrObjectNotFound when no segment joins a and b
func (g *Graph) SetClosed(a, b kernel.Location, closed bool) (Segment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := keyOf(a, b)
	idx, ok := g.byKey[key]
	if !ok {
		return Segment{}, errs.NewObjectNotFoundError("segment", a.Name()+" - "+b.Name())
	}

	segment := &g.segments[idx]
	if closed {
		if _, saved := g.backup[key]; !saved {
			g.backup[key] = costs{distance: segment.distance, toll: segment.toll}
		}
		segment.distance = ClosedSentinel
		segment.toll = ClosedSentinel
		segment.closed = true
		return *segment, nil
	}

	if original, saved := g.backup[key]; saved {
		segment.distance = original.distance
		segment.toll = original.toll
		delete(g.backup, key)
	}
	segment.closed = false
	return *segment, nil
}

// Snapshot returns an immutable copy of the network for path search.
func (g *Graph) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := make([]kernel.Location, len(g.nodes))
	copy(nodes, g.nodes)

	adjacency := make(map[string][]Edge, len(nodes))
	for _, node := range nodes {
		indexes := g.adjacency[node.Name()]
		edges := make([]Edge, 0, len(indexes))
		for _, idx := range indexes {
			segment := g.segments[idx]
			edges = append(edges, Edge{
				To:       segment.Other(node),
				Distance: segment.distance,
				Toll:     segment.toll,
				Closed:   segment.closed,
			})
		}
		adjacency[node.Name()] = edges
	}

	return newSnapshot(nodes, adjacency)
}

func (g *Graph) addNodeLocked(location kernel.Location) {
	if _, ok := g.known[location.Name()]; ok {
		return
	}
	g.known[location.Name()] = struct{}{}
	g.nodes = append(g.nodes, location)
}
