package commands

import (
	"errors"
	"fmt"
	"strings"

	"fleetdispatch/internal/core/domain/model/assignment"
	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/pkg/errs"
	"fleetdispatch/internal/pkg/guard"
)

var ErrExecuteBatchCommandIsNotConstructed = errors.New(
	"ExecuteBatchCommand must be created via NewExecuteBatchCommand constructor",
)

// ExecuteBatchCommand submits a list of assignment proposals for execution
// under the execution lock.
//
// Example:
//
//	cmd, err := NewExecuteBatchCommand([]assignment.Proposal{
//	    {ParcelID: "P-1", TruckID: "T-1", Priority: assignment.High},
//	}, audit.Manual)
type ExecuteBatchCommand struct {
	proposals []assignment.Proposal
	source    audit.Source
	guard     guard.ConstructorGuard
}

// ErrEmptyBatch rejects a batch without proposals.
var ErrEmptyBatch = errs.NewValueIsRequiredError("Assignments array cannot be empty")

// NewExecuteBatchCommand validates that the batch is not empty and that every
// proposal names a parcel and a truck.
func NewExecuteBatchCommand(proposals []assignment.Proposal, source audit.Source) (ExecuteBatchCommand, error) {
	if len(proposals) == 0 {
		return ExecuteBatchCommand{}, ErrEmptyBatch
	}

	var problems []error
	normalized := make([]assignment.Proposal, 0, len(proposals))
	for i, p := range proposals {
		p.ParcelID = strings.TrimSpace(p.ParcelID)
		p.TruckID = strings.TrimSpace(p.TruckID)
		if p.ParcelID == "" {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("assignments[%d].parcelID", i)))
		}
		if p.TruckID == "" {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("assignments[%d].truckID", i)))
		}
		normalized = append(normalized, p)
	}
	if source == "" {
		source = audit.Manual
	}
	if err := errors.Join(problems...); err != nil {
		return ExecuteBatchCommand{}, err
	}

	return ExecuteBatchCommand{
		proposals: normalized,
		source:    source,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Proposals returns a copy of the submitted proposals.
func (c ExecuteBatchCommand) Proposals() []assignment.Proposal {
	proposals := make([]assignment.Proposal, len(c.proposals))
	copy(proposals, c.proposals)
	return proposals
}

// Source returns who submitted the batch.
func (c ExecuteBatchCommand) Source() audit.Source {
	return c.source
}

// Validate ensures the command was created through the constructor.
func (c *ExecuteBatchCommand) Validate() error {
	return c.guard.Validate(ErrExecuteBatchCommandIsNotConstructed)
}
