package queries

import (
	"errors"
	"strings"

	"fleetdispatch/internal/pkg/errs"
	"fleetdispatch/internal/pkg/guard"
)

var ErrReplayBatchQueryIsNotConstructed = errors.New(
	"ReplayBatchQuery must be created via NewReplayBatchQuery constructor",
)

// ReplayBatchQuery asks for the recorded decisions of one batch.
type ReplayBatchQuery struct {
	batchID string
	guard   guard.ConstructorGuard
}

func NewReplayBatchQuery(batchID string) (ReplayBatchQuery, error) {
	batchID = strings.TrimSpace(batchID)
	if batchID == "" {
		return ReplayBatchQuery{}, errs.NewValueIsRequiredError("batchID")
	}
	return ReplayBatchQuery{batchID: batchID, guard: guard.NewConstructorGuard()}, nil
}

func (q ReplayBatchQuery) BatchID() string { return q.batchID }

// Validate ensures the query was created through the constructor.
func (q ReplayBatchQuery) Validate() error {
	return q.guard.Validate(ErrReplayBatchQueryIsNotConstructed)
}
