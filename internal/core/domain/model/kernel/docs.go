// Package kernel provides the value objects shared by every aggregate of the
// dispatch domain.
//
// The package includes:
//   - UUID: identifiers generated by the engine (batches, alerts, workflows)
//   - Location: a named node of the road network, also used as route stop and
//     parcel destination
//
// Both are immutable and safe for concurrent use.
package kernel
