package truckrepo

import (
	"context"
	"errors"

	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTruckRepository implements ports.TruckRepository using GORM.
type GormTruckRepository struct {
	db *gorm.DB
}

func NewGormTruckRepository(db *gorm.DB) *GormTruckRepository {
	return &GormTruckRepository{db: db}
}

func (r *GormTruckRepository) Add(ctx context.Context, aggregate *truck.Truck) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("truck "+dto.ID, err)
		}
		return err
	}
	return nil
}

func (r *GormTruckRepository) Update(ctx context.Context, aggregate *truck.Truck) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TruckDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"route_id":     dto.RouteID,
		"max_capacity": dto.MaxCapacity,
		"status":       dto.Status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("truckID", dto.ID)
	}
	return nil
}

func (r *GormTruckRepository) Get(ctx context.Context, id string) (*truck.Truck, error) {
	var dto TruckDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("truckID", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormTruckRepository) ListAll(ctx context.Context) ([]*truck.Truck, error) {
	var dtos []TruckDTO
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	trucks := make([]*truck.Truck, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		trucks = append(trucks, t)
	}
	return trucks, nil
}
