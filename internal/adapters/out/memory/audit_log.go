package memory

import (
	"context"
	"sync"

	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/core/ports"
)

// DefaultRetention is the number of alerts and of workflows kept per log.
const DefaultRetention = 10000

// ring keeps the newest capacity entries.
type ring[T any] struct {
	items []T
	next  int
	full  bool
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{items: make([]T, capacity)}
}

func (r *ring[T]) push(item T) {
	r.items[r.next] = item
	r.next = (r.next + 1) % len(r.items)
	if r.next == 0 {
		r.full = true
	}
}

func (r *ring[T]) len() int {
	if r.full {
		return len(r.items)
	}
	return r.next
}

// newestFirst visits entries from the most recent one until fn returns false.
func (r *ring[T]) newestFirst(fn func(item T) bool) {
	size := len(r.items)
	for i := 1; i <= r.len(); i++ {
		if !fn(r.items[(r.next-i+size)%size]) {
			return
		}
	}
}

// AuditLog is a bounded in-memory audit log. Once full, the oldest entries
// are overwritten.
type AuditLog struct {
	mu        sync.RWMutex
	alerts    *ring[audit.Alert]
	workflows *ring[audit.Workflow]
}

var _ ports.AuditLog = (*AuditLog)(nil)

// NewAuditLog keeps up to retention alerts and retention workflows.
// A non-positive retention falls back to DefaultRetention.
func NewAuditLog(retention int) *AuditLog {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &AuditLog{
		alerts:    newRing[audit.Alert](retention),
		workflows: newRing[audit.Workflow](retention),
	}
}

func (l *AuditLog) AppendAlert(ctx context.Context, alert audit.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alerts.push(alert)
	return nil
}

func (l *AuditLog) AppendWorkflow(ctx context.Context, workflow audit.Workflow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.workflows.push(cloneWorkflow(workflow))
	return nil
}

func (l *AuditLog) ListAlerts(_ context.Context, limit int) ([]audit.Alert, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]audit.Alert, 0, capped(l.alerts.len(), limit))
	l.alerts.newestFirst(func(alert audit.Alert) bool {
		result = append(result, alert)
		return limit <= 0 || len(result) < limit
	})
	return result, nil
}

func (l *AuditLog) ListWorkflows(_ context.Context, limit int) ([]audit.Workflow, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]audit.Workflow, 0, capped(l.workflows.len(), limit))
	l.workflows.newestFirst(func(workflow audit.Workflow) bool {
		result = append(result, cloneWorkflow(workflow))
		return limit <= 0 || len(result) < limit
	})
	return result, nil
}

func (l *AuditLog) WorkflowsByBatch(_ context.Context, batchID string) ([]audit.Workflow, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]audit.Workflow, 0)
	l.workflows.newestFirst(func(workflow audit.Workflow) bool {
		if workflow.BatchID == batchID {
			result = append(result, cloneWorkflow(workflow))
		}
		return true
	})
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}

func (l *AuditLog) Stats(_ context.Context) (ports.AuditStats, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return ports.AuditStats{Alerts: l.alerts.len(), Workflows: l.workflows.len()}, nil
}

func capped(size, limit int) int {
	if limit > 0 && limit < size {
		return limit
	}
	return size
}

// cloneWorkflow detaches the step slice and input map from the caller.
func cloneWorkflow(w audit.Workflow) audit.Workflow {
	steps := make([]audit.Step, len(w.Steps))
	copy(steps, w.Steps)
	w.Steps = steps

	input := make(map[string]string, len(w.Input))
	for k, v := range w.Input {
		input[k] = v
	}
	w.Input = input
	return w
}
