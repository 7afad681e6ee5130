package services

import (
	"fmt"

	"fleetdispatch/internal/core/domain/model/assignment"
	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
)

// RejectionReason tells why a proposal was left out of a load plan.
type RejectionReason int

const (
	ParcelMissing RejectionReason = iota + 1
	AlreadyAssigned
	DuplicateInBatch
	OffRoute
	OverCapacity
)

// Rejection is a proposal the planner skipped.
type Rejection struct {
	Proposal assignment.Proposal
	Reason   RejectionReason
	Message  string
}

// LoadPlan is the outcome of packing one truck group.
type LoadPlan struct {
	Accepted   []*parcel.Parcel
	Rejections []Rejection
	Load       float64
}

// AcceptedIDs returns the identifiers of accepted parcels in admission order.
func (p LoadPlan) AcceptedIDs() []string {
	ids := make([]string, 0, len(p.Accepted))
	for _, accepted := range p.Accepted {
		ids = append(ids, accepted.ID())
	}
	return ids
}

// LoadPlanner decides which proposals of a single truck group fit.
//
// Proposals are walked by priority, highest first, keeping submission order
// for equal priorities. A proposal is admitted only if its parcel exists, is
// not assigned yet, was not admitted earlier in the same walk, is going to a
// stop of the truck's route (when the truck is routed) and still fits on top
// of the truck's current load plus everything admitted before it.
//
// The planner never mutates its inputs. Committing the plan is left to the
// caller.
type LoadPlanner struct{}

// NewLoadPlanner creates a LoadPlanner.
func NewLoadPlanner() LoadPlanner {
	return LoadPlanner{}
}

// Plan packs proposals onto t.
//
// Parameters:
//   - t: target truck
//   - r: the truck's route, nil for an unrouted truck
//   - currentLoad: weight already assigned to t
//   - proposals: the truck group, in submission order
//   - parcels: parcels referenced by the proposals, keyed by id; absent ids
//     are treated as missing
func (LoadPlanner) Plan(
	t *truck.Truck,
	r *route.Route,
	currentLoad float64,
	proposals []assignment.Proposal,
	parcels map[string]*parcel.Parcel,
) LoadPlan {
	plan := LoadPlan{Load: currentLoad}
	admitted := make(map[string]struct{})

	for _, proposal := range assignment.SortByPriority(proposals) {
		p, ok := parcels[proposal.ParcelID]
		if !ok || p == nil {
			plan.reject(proposal, ParcelMissing, fmt.Sprintf("Parcel %s not found.", proposal.ParcelID))
			continue
		}

		if _, seen := admitted[p.ID()]; seen {
			plan.reject(proposal, DuplicateInBatch, fmt.Sprintf("Parcel %s is already accepted in this batch.", p.ID()))
			continue
		}

		if p.IsAssigned() {
			plan.reject(proposal, AlreadyAssigned, fmt.Sprintf("Parcel %s is already assigned.", p.ID()))
			continue
		}

		if r != nil && !r.Includes(p.Destination()) {
			plan.reject(proposal, OffRoute, fmt.Sprintf(
				"Route %s of Truck %s does not stop at %s. Skipped Parcel %s.",
				r.ID(), t.ID(), p.Destination(), p.ID(),
			))
			continue
		}

		if !t.Fits(plan.Load, p.Weight()) {
			plan.reject(proposal, OverCapacity, fmt.Sprintf(
				"Capacity Limit Reached for Truck %s. Skipped Parcel %s (Priority: %s).",
				t.ID(), p.ID(), proposal.Priority,
			))
			continue
		}

		admitted[p.ID()] = struct{}{}
		plan.Accepted = append(plan.Accepted, p)
		plan.Load += p.Weight()
	}

	return plan
}

func (p *LoadPlan) reject(proposal assignment.Proposal, reason RejectionReason, message string) {
	p.Rejections = append(p.Rejections, Rejection{Proposal: proposal, Reason: reason, Message: message})
}
