package queries

import (
	"errors"

	"fleetdispatch/internal/pkg/guard"
)

// DefaultAuditLimit is used when no positive limit is requested.
const DefaultAuditLimit = 50

var ErrListAuditQueryIsNotConstructed = errors.New(
	"ListAuditQuery must be created via NewListAuditQuery constructor",
)

// ListAuditQuery pages through the newest audit entries. The same query
// serves the workflow and the alert listings.
type ListAuditQuery struct {
	limit int
	guard guard.ConstructorGuard
}

// NewListAuditQuery falls back to DefaultAuditLimit for a non-positive limit.
func NewListAuditQuery(limit int) ListAuditQuery {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	return ListAuditQuery{limit: limit, guard: guard.NewConstructorGuard()}
}

func (q ListAuditQuery) Limit() int { return q.limit }

// Validate ensures the query was created through the constructor.
func (q ListAuditQuery) Validate() error {
	return q.guard.Validate(ErrListAuditQueryIsNotConstructed)
}
