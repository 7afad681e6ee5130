package queries

import (
	"context"
	"time"

	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/core/ports"
)

// ReplayEntry is one truck commit of a batch, as recorded.
type ReplayEntry struct {
	Timestamp time.Time
	Action    audit.WorkflowType
	Input     map[string]string
	Decision  audit.Status
	Steps     []audit.Step
}

// BatchReplay lists a batch's entries in execution order. An unknown batch
// replays as an empty list.
type BatchReplay struct {
	BatchID string
	Entries []ReplayEntry
}

type ReplayBatchQueryHandler struct {
	auditLog ports.AuditLog
}

func NewReplayBatchQueryHandler(auditLog ports.AuditLog) ReplayBatchQueryHandler {
	return ReplayBatchQueryHandler{auditLog: auditLog}
}

func (h ReplayBatchQueryHandler) Handle(ctx context.Context, query ReplayBatchQuery) (BatchReplay, error) {
	if err := query.Validate(); err != nil {
		return BatchReplay{}, err
	}
	workflows, err := h.auditLog.WorkflowsByBatch(ctx, query.BatchID())
	if err != nil {
		return BatchReplay{}, err
	}

	replay := BatchReplay{BatchID: query.BatchID(), Entries: make([]ReplayEntry, 0, len(workflows))}
	for _, w := range workflows {
		replay.Entries = append(replay.Entries, ReplayEntry{
			Timestamp: w.StartedAt,
			Action:    w.Type,
			Input:     w.Input,
			Decision:  w.Status,
			Steps:     w.Steps,
		})
	}
	return replay, nil
}
