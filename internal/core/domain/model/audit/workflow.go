package audit

import (
	"time"

	"fleetdispatch/internal/core/domain/model/kernel"
)

// WorkflowType names the kind of assignment a workflow log describes.
type WorkflowType string

// Source tells who started a workflow.
type Source string

// Status is the outcome of a workflow or of one of its steps.
type Status string

const (
	AssignParcel WorkflowType = "ASSIGN_PARCEL"
	BatchAssign  WorkflowType = "BATCH_ASSIGN"

	Manual     Source = "MANUAL"
	Automation Source = "AUTOMATION"

	InProgress Status = "IN_PROGRESS"
	Completed  Status = "COMPLETED"
	Failed     Status = "FAILED"
	Succeeded  Status = "SUCCESS"
)

// Step is one recorded stage of a workflow.
type Step struct {
	Name      string
	Status    Status
	Reason    string
	Timestamp time.Time
}

// Workflow is the log of a single or batch assignment. It is built up while
// the assignment runs and appended to the audit log once finished.
type Workflow struct {
	ID        kernel.UUID
	Type      WorkflowType
	Source    Source
	BatchID   string
	Input     map[string]string
	Steps     []Step
	Status    Status
	StartedAt time.Time
	EndedAt   time.Time
}

// NewWorkflow starts a workflow in progress.
func NewWorkflow(workflowType WorkflowType, source Source, input map[string]string, at time.Time) *Workflow {
	copied := make(map[string]string, len(input))
	for k, v := range input {
		copied[k] = v
	}
	return &Workflow{
		ID:        kernel.NewUUID(),
		Type:      workflowType,
		Source:    source,
		Input:     copied,
		Status:    InProgress,
		StartedAt: at,
	}
}

// Pass records a successful step.
func (w *Workflow) Pass(name, details string, at time.Time) {
	w.Steps = append(w.Steps, Step{Name: name, Status: Succeeded, Reason: details, Timestamp: at})
}

// Reject records a failed step and fails the workflow.
func (w *Workflow) Reject(name, reason string, at time.Time) {
	w.Steps = append(w.Steps, Step{Name: name, Status: Failed, Reason: reason, Timestamp: at})
	w.Status = Failed
	w.EndedAt = at
}

// Complete marks the workflow finished successfully.
func (w *Workflow) Complete(at time.Time) {
	w.Status = Completed
	w.EndedAt = at
}

// FailedStep returns the first failed step, if any.
func (w *Workflow) FailedStep() (Step, bool) {
	for _, step := range w.Steps {
		if step.Status == Failed {
			return step, true
		}
	}
	return Step{}, false
}
