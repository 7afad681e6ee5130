// Package parcel contains the Parcel aggregate: a shipment waiting for, or
// already holding, a seat on a truck.
//
// A parcel is assigned at most once. There is no unassign or reassign
// operation, which keeps per-truck load monotonic.
package parcel
