package services

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/network"
	"fleetdispatch/internal/pkg/errs"
)

const (
	// DefaultFuelRate is the fuel cost per kilometer used when none is configured.
	DefaultFuelRate = 1.25

	// Currency of every computed cost.
	Currency = "USD"

	// Algorithm labels path results.
	Algorithm = "Cost-Aware Dijkstra"
)

var (
	// ErrInvalidNode is returned when a path endpoint is not part of the network.
	ErrInvalidNode = errors.New("invalid start or end node")

	// ErrNoPath is returned when the endpoints are not connected by open segments.
	ErrNoPath = errors.New("no path found")
)

// Leg is one traversed segment of a path.
type Leg struct {
	From     kernel.Location
	To       kernel.Location
	Distance float64
	Toll     float64
	Cost     float64
}

// Path is the cheapest way between two locations.
type Path struct {
	Nodes     []kernel.Location
	Legs      []Leg
	TotalCost float64
	Currency  string
	FuelRate  float64
	Algorithm string
}

// PathFinder computes cost-optimal paths over a network snapshot.
//
// Segment cost is distance × fuelRate + toll. A segment with a negative
// distance or toll costs +Inf and closed segments are skipped, so neither
// ever appears in a result.
//
// Among paths of equal cost the one discovered first wins: the frontier is
// ordered by cost and then by discovery order, a node is only relaxed on a
// strict improvement, and neighbors are visited in segment insertion order.
// The same snapshot therefore always yields the same path.
//
// PathFinder holds no mutable state and is safe for concurrent use.
type PathFinder struct {
	fuelRate float64
}

// NewPathFinder creates a PathFinder with the given fuel rate per kilometer.
func NewPathFinder(fuelRate float64) (*PathFinder, error) {
	if math.IsNaN(fuelRate) || math.IsInf(fuelRate, 0) || fuelRate < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("fuelRate", fmt.Errorf("%v is not a finite non-negative rate", fuelRate))
	}
	return &PathFinder{fuelRate: fuelRate}, nil
}

// FuelRate returns the configured fuel rate.
func (f *PathFinder) FuelRate() float64 {
	return f.fuelRate
}

// SegmentCost returns distance × fuelRate + toll, or +Inf when either input
// is negative.
func (f *PathFinder) SegmentCost(distance, toll float64) float64 {
	if distance < 0 || toll < 0 {
		return math.Inf(1)
	}
	return distance*f.fuelRate + toll
}

// FindPath returns the cheapest path from start to end.
//
// Returns:
//   - Path with TotalCost rounded to two decimals
//   - ErrInvalidNode when either endpoint is unknown
//   - ErrNoPath when end cannot be reached
//
// Example:
//
//	path, err := finder.FindPath(graph.Snapshot(), chennai, madurai)
//	if errors.Is(err, services.ErrNoPath) {
//	    // all connecting roads are closed
//	}
func (f *PathFinder) FindPath(snapshot network.Snapshot, start, end kernel.Location) (Path, error) {
	if !snapshot.HasNode(start) || !snapshot.HasNode(end) {
		return Path{}, fmt.Errorf("%w: %s -> %s", ErrInvalidNode, start, end)
	}

	best := map[string]float64{start.Name(): 0}
	parent := make(map[string]network.Edge)
	parentNode := make(map[string]kernel.Location)
	settled := make(map[string]bool)

	frontier := &frontierQueue{}
	seq := 0
	heap.Push(frontier, frontierItem{node: start, cost: 0, seq: seq})

	for frontier.Len() > 0 {
		current := heap.Pop(frontier).(frontierItem) //nolint:forcetypeassert // frontierQueue only holds frontierItem
		name := current.node.Name()
		if settled[name] {
			continue
		}
		settled[name] = true

		if current.node.IsEqual(end) {
			break
		}

		for _, edge := range snapshot.Neighbors(current.node) {
			if edge.Closed {
				continue
			}
			next := edge.To.Name()
			if settled[next] {
				continue
			}
			weight := f.SegmentCost(edge.Distance, edge.Toll)
			if math.IsInf(weight, 1) {
				continue
			}
			candidate := current.cost + weight
			if known, ok := best[next]; ok && candidate >= known {
				continue
			}
			best[next] = candidate
			parent[next] = edge
			parentNode[next] = current.node
			seq++
			heap.Push(frontier, frontierItem{node: edge.To, cost: candidate, seq: seq})
		}
	}

	total, reached := best[end.Name()]
	if !reached {
		return Path{}, fmt.Errorf("%w: %s -> %s", ErrNoPath, start, end)
	}

	nodes := []kernel.Location{end}
	var legs []Leg
	for step := end; !step.IsEqual(start); {
		edge := parent[step.Name()]
		from := parentNode[step.Name()]
		legs = append(legs, Leg{
			From:     from,
			To:       step,
			Distance: edge.Distance,
			Toll:     edge.Toll,
			Cost:     round2(f.SegmentCost(edge.Distance, edge.Toll)),
		})
		nodes = append(nodes, from)
		step = from
	}
	reverse(nodes)
	reverse(legs)

	return Path{
		Nodes:     nodes,
		Legs:      legs,
		TotalCost: round2(total),
		Currency:  Currency,
		FuelRate:  f.fuelRate,
		Algorithm: Algorithm,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

type frontierItem struct {
	node kernel.Location
	cost float64
	seq  int
}

// frontierQueue is a min-heap by cost, then by discovery sequence.
type frontierQueue []frontierItem

func (q frontierQueue) Len() int { return len(q) }

func (q frontierQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].seq < q[j].seq
}

func (q frontierQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontierQueue) Push(x any) {
	*q = append(*q, x.(frontierItem)) //nolint:forcetypeassert // heap.Push is only called with frontierItem
}

func (q *frontierQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
