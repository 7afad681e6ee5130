// Package route contains the Route aggregate: an ordered list of stops a
// truck visits, with a capacity limit and a kind telling operator-defined
// routes from the ones synthesized during batch assignment.
package route
