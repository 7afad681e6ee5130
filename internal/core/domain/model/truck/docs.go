// Package truck contains the Truck aggregate and its operational status.
//
// A truck starts Idle with no route. Attaching a route, either assigned by
// an operator or synthesized by the batch executor, makes it Active.
package truck
