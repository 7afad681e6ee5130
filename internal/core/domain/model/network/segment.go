package network

import "fleetdispatch/internal/core/domain/model/kernel"

// ClosedSentinel replaces the distance and toll of a closed segment.
const ClosedSentinel = 999999.0

// Segment is a bidirectional road between two locations.
type Segment struct {
	a        kernel.Location
	b        kernel.Location
	distance float64
	toll     float64
	closed   bool
}

// From returns the first endpoint, as the segment was registered.
func (s Segment) From() kernel.Location {
	return s.a
}

// To returns the second endpoint.
func (s Segment) To() kernel.Location {
	return s.b
}

// Distance returns the current distance, ClosedSentinel while closed.
func (s Segment) Distance() float64 {
	return s.distance
}

// Toll returns the current toll, ClosedSentinel while closed.
func (s Segment) Toll() float64 {
	return s.toll
}

// IsClosed reports whether the segment is closed.
func (s Segment) IsClosed() bool {
	return s.closed
}

// Connects reports whether the segment joins x and y in either direction.
func (s Segment) Connects(x, y kernel.Location) bool {
	return (s.a.IsEqual(x) && s.b.IsEqual(y)) || (s.a.IsEqual(y) && s.b.IsEqual(x))
}

// Other returns the endpoint opposite to from.
func (s Segment) Other(from kernel.Location) kernel.Location {
	if s.a.IsEqual(from) {
		return s.b
	}
	return s.a
}

type segmentKey struct {
	a string
	b string
}

func keyOf(x, y kernel.Location) segmentKey {
	if x.Name() > y.Name() {
		x, y = y, x
	}
	return segmentKey{a: x.Name(), b: y.Name()}
}

type costs struct {
	distance float64
	toll     float64
}
