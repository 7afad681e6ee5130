// Package auditrepo keeps alerts and workflow logs in PostgreSQL so they
// survive restarts.
package auditrepo

import (
	"time"

	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/core/domain/model/kernel"
)

// AlertDTO is the alerts table row. Seq gives a stable append order.
type AlertDTO struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement"`
	ID        string    `gorm:"type:uuid;uniqueIndex;not null"`
	Severity  string    `gorm:"type:varchar(8);not null"`
	Message   string    `gorm:"type:text;not null"`
	ParcelID  string    `gorm:"type:varchar(64)"`
	TruckID   string    `gorm:"type:varchar(64)"`
	Timestamp time.Time `gorm:"not null"`
}

func (AlertDTO) TableName() string {
	return "alerts"
}

// StepDTO is stored inside the workflow row as JSON.
type StepDTO struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WorkflowDTO is the workflows table row.
type WorkflowDTO struct {
	Seq       int64             `gorm:"primaryKey;autoIncrement"`
	ID        string            `gorm:"type:uuid;uniqueIndex;not null"`
	Type      string            `gorm:"type:varchar(32);not null"`
	Source    string            `gorm:"type:varchar(16);not null"`
	BatchID   string            `gorm:"type:varchar(64);index"`
	Input     map[string]string `gorm:"type:jsonb;serializer:json"`
	Steps     []StepDTO         `gorm:"type:jsonb;serializer:json"`
	Status    string            `gorm:"type:varchar(16);not null"`
	StartedAt time.Time         `gorm:"not null"`
	EndedAt   time.Time
}

func (WorkflowDTO) TableName() string {
	return "workflows"
}

func alertFromDomain(a audit.Alert) AlertDTO {
	return AlertDTO{
		ID:        a.ID.String(),
		Severity:  string(a.Severity),
		Message:   a.Message,
		ParcelID:  a.ParcelID,
		TruckID:   a.TruckID,
		Timestamp: a.Timestamp,
	}
}

func alertToDomain(dto AlertDTO) (audit.Alert, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return audit.Alert{}, err
	}
	return audit.Alert{
		ID:        id,
		Severity:  audit.Severity(dto.Severity),
		Message:   dto.Message,
		ParcelID:  dto.ParcelID,
		TruckID:   dto.TruckID,
		Timestamp: dto.Timestamp,
	}, nil
}

func workflowFromDomain(w audit.Workflow) WorkflowDTO {
	steps := make([]StepDTO, 0, len(w.Steps))
	for _, step := range w.Steps {
		steps = append(steps, StepDTO{
			Name:      step.Name,
			Status:    string(step.Status),
			Reason:    step.Reason,
			Timestamp: step.Timestamp,
		})
	}
	return WorkflowDTO{
		ID:        w.ID.String(),
		Type:      string(w.Type),
		Source:    string(w.Source),
		BatchID:   w.BatchID,
		Input:     w.Input,
		Steps:     steps,
		Status:    string(w.Status),
		StartedAt: w.StartedAt,
		EndedAt:   w.EndedAt,
	}
}

func workflowToDomain(dto WorkflowDTO) (audit.Workflow, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return audit.Workflow{}, err
	}
	steps := make([]audit.Step, 0, len(dto.Steps))
	for _, step := range dto.Steps {
		steps = append(steps, audit.Step{
			Name:      step.Name,
			Status:    audit.Status(step.Status),
			Reason:    step.Reason,
			Timestamp: step.Timestamp,
		})
	}
	return audit.Workflow{
		ID:        id,
		Type:      audit.WorkflowType(dto.Type),
		Source:    audit.Source(dto.Source),
		BatchID:   dto.BatchID,
		Input:     dto.Input,
		Steps:     steps,
		Status:    audit.Status(dto.Status),
		StartedAt: dto.StartedAt,
		EndedAt:   dto.EndedAt,
	}, nil
}
