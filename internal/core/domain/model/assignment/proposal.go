package assignment

import (
	"sort"

	"fleetdispatch/internal/core/domain/model/kernel"
)

// Proposal asks for one parcel to be placed on one truck.
type Proposal struct {
	ParcelID string
	TruckID  string
	Priority Priority
}

// Group is the set of proposals that target one truck, in submission order.
type Group struct {
	TruckID   string
	Proposals []Proposal
}

// GroupByTruck splits proposals by truck. Groups appear in the order their
// truck was first mentioned and keep submission order internally.
func GroupByTruck(proposals []Proposal) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for _, p := range proposals {
		i, ok := index[p.TruckID]
		if !ok {
			i = len(groups)
			index[p.TruckID] = i
			groups = append(groups, Group{TruckID: p.TruckID})
		}
		groups[i].Proposals = append(groups[i].Proposals, p)
	}

	return groups
}

// SortByPriority returns a copy ordered by priority, highest first. The sort
// is stable so equal priorities keep submission order.
func SortByPriority(proposals []Proposal) []Proposal {
	sorted := make([]Proposal, len(proposals))
	copy(sorted, proposals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() > sorted[j].Priority.Rank()
	})
	return sorted
}

// TruckCommit describes what one truck group committed.
type TruckCommit struct {
	TruckID      string
	RouteID      string
	RouteCreated bool
	ParcelIDs    []string
}

// BatchResult summarizes a batch execution.
//
// SuccessCount counts committed parcels and FailureCount every proposal that
// was not committed, so together they add up to the batch size. Errors keep
// the order in which problems were found.
type BatchResult struct {
	BatchID      kernel.UUID
	SuccessCount int
	FailureCount int
	Errors       []string
	Commits      []TruckCommit
}
