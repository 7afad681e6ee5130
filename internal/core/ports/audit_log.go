package ports

import (
	"context"

	"fleetdispatch/internal/core/domain/model/audit"
)

// AuditStats counts the records held by an audit log.
type AuditStats struct {
	Alerts    int
	Workflows int
}

// AuditLog is the append-only store of alerts and workflow logs.
//
// It lives outside the unit of work: an alert about a skipped parcel is kept
// even when the truck group that produced it commits nothing.
type AuditLog interface {
	AppendAlert(ctx context.Context, alert audit.Alert) error
	AppendWorkflow(ctx context.Context, workflow audit.Workflow) error

	// ListAlerts returns up to limit alerts, newest first. limit <= 0 means all.
	ListAlerts(ctx context.Context, limit int) ([]audit.Alert, error)

	// ListWorkflows returns up to limit workflows, newest first. limit <= 0 means all.
	ListWorkflows(ctx context.Context, limit int) ([]audit.Workflow, error)

	// WorkflowsByBatch returns the workflows recorded for one batch, oldest first.
	WorkflowsByBatch(ctx context.Context, batchID string) ([]audit.Workflow, error)

	Stats(ctx context.Context) (AuditStats, error)
}
