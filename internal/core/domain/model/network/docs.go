// Package network models the regional road network as an undirected
// weighted graph of named locations.
//
// Segments carry a distance in kilometers and a toll. A closed segment has
// both values overridden by ClosedSentinel; the originals are kept aside and
// restored exactly when the segment reopens.
//
// Graph is safe for concurrent use. Readers work on a Snapshot so that a long
// path search never observes a half-applied toggle.
package network
