package queries

import (
	"context"
	"time"

	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/core/ports"
)

// WorkflowSummary is the listing view of a workflow log.
type WorkflowSummary struct {
	WorkflowID string
	Type       audit.WorkflowType
	Source     audit.Source
	BatchID    string
	ParcelID   string
	TruckID    string
	Steps      []audit.Step
	Status     audit.Status
	StartedAt  time.Time
}

// ListWorkflowsQueryHandler lists workflow logs, newest first.
type ListWorkflowsQueryHandler struct {
	auditLog ports.AuditLog
}

func NewListWorkflowsQueryHandler(auditLog ports.AuditLog) ListWorkflowsQueryHandler {
	return ListWorkflowsQueryHandler{auditLog: auditLog}
}

func (h ListWorkflowsQueryHandler) Handle(ctx context.Context, query ListAuditQuery) ([]WorkflowSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	workflows, err := h.auditLog.ListWorkflows(ctx, query.Limit())
	if err != nil {
		return nil, err
	}

	result := make([]WorkflowSummary, 0, len(workflows))
	for _, w := range workflows {
		result = append(result, WorkflowSummary{
			WorkflowID: w.ID.String(),
			Type:       w.Type,
			Source:     w.Source,
			BatchID:    w.BatchID,
			ParcelID:   w.Input["parcelID"],
			TruckID:    w.Input["truckID"],
			Steps:      w.Steps,
			Status:     w.Status,
			StartedAt:  w.StartedAt,
		})
	}
	return result, nil
}

// ListAlertsQueryHandler lists alerts, newest first.
type ListAlertsQueryHandler struct {
	auditLog ports.AuditLog
}

func NewListAlertsQueryHandler(auditLog ports.AuditLog) ListAlertsQueryHandler {
	return ListAlertsQueryHandler{auditLog: auditLog}
}

func (h ListAlertsQueryHandler) Handle(ctx context.Context, query ListAuditQuery) ([]audit.Alert, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.auditLog.ListAlerts(ctx, query.Limit())
}
