package auditrepo

import (
	"context"

	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.AuditLog = (*GormAuditLog)(nil)

// GormAuditLog implements ports.AuditLog. Every append is its own statement,
// independent of any open unit of work.
type GormAuditLog struct {
	db *gorm.DB
}

func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

func (l *GormAuditLog) AppendAlert(ctx context.Context, alert audit.Alert) error {
	dto := alertFromDomain(alert)
	return l.db.WithContext(ctx).Create(&dto).Error
}

func (l *GormAuditLog) AppendWorkflow(ctx context.Context, workflow audit.Workflow) error {
	dto := workflowFromDomain(workflow)
	return l.db.WithContext(ctx).Create(&dto).Error
}

func (l *GormAuditLog) ListAlerts(ctx context.Context, limit int) ([]audit.Alert, error) {
	var dtos []AlertDTO
	if err := withLimit(l.db.WithContext(ctx).Order("seq DESC"), limit).Find(&dtos).Error; err != nil {
		return nil, err
	}

	alerts := make([]audit.Alert, 0, len(dtos))
	for _, dto := range dtos {
		alert, err := alertToDomain(dto)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func (l *GormAuditLog) ListWorkflows(ctx context.Context, limit int) ([]audit.Workflow, error) {
	return l.workflows(withLimit(l.db.WithContext(ctx).Order("seq DESC"), limit))
}

func (l *GormAuditLog) WorkflowsByBatch(ctx context.Context, batchID string) ([]audit.Workflow, error) {
	return l.workflows(l.db.WithContext(ctx).Where("batch_id = ?", batchID).Order("seq ASC"))
}

func (l *GormAuditLog) Stats(ctx context.Context) (ports.AuditStats, error) {
	var alerts, workflows int64
	if err := l.db.WithContext(ctx).Model(&AlertDTO{}).Count(&alerts).Error; err != nil {
		return ports.AuditStats{}, err
	}
	if err := l.db.WithContext(ctx).Model(&WorkflowDTO{}).Count(&workflows).Error; err != nil {
		return ports.AuditStats{}, err
	}
	return ports.AuditStats{Alerts: int(alerts), Workflows: int(workflows)}, nil
}

func (l *GormAuditLog) workflows(query *gorm.DB) ([]audit.Workflow, error) {
	var dtos []WorkflowDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	result := make([]audit.Workflow, 0, len(dtos))
	for _, dto := range dtos {
		workflow, err := workflowToDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, workflow)
	}
	return result, nil
}

func withLimit(query *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		return query.Limit(limit)
	}
	return query
}
