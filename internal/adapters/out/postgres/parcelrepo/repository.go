package parcelrepo

import (
	"context"
	"errors"

	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db *gorm.DB
}

func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

// Add inserts a parcel. A duplicate id yields errs.ErrConflict; the
// connection must be opened with TranslateError.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("parcel "+dto.ID, err)
		}
		return err
	}
	return nil
}

func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"destination":       dto.Destination,
		"weight":            dto.Weight,
		"assigned_truck_id": dto.AssignedTruckID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcelID", dto.ID)
	}
	return nil
}

func (r *GormParcelRepository) Get(ctx context.Context, id string) (*parcel.Parcel, error) {
	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcelID", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormParcelRepository) GetMany(ctx context.Context, ids []string) (map[string]*parcel.Parcel, error) {
	result := make(map[string]*parcel.Parcel, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&dtos).Error; err != nil {
		return nil, err
	}
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result[p.ID()] = p
	}
	return result, nil
}

func (r *GormParcelRepository) ListAssignedTo(ctx context.Context, truckID string) ([]*parcel.Parcel, error) {
	return r.list(r.db.WithContext(ctx).Where("assigned_truck_id = ?", truckID))
}

func (r *GormParcelRepository) ListAll(ctx context.Context) ([]*parcel.Parcel, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *GormParcelRepository) list(query *gorm.DB) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	if err := query.Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}
