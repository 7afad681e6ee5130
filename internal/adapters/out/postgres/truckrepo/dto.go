// Package truckrepo persists truck aggregates with GORM.
package truckrepo

import (
	"time"

	"fleetdispatch/internal/core/domain/model/truck"
)

// TruckDTO is the trucks table row.
type TruckDTO struct {
	ID          string    `gorm:"type:varchar(64);primaryKey"`
	RouteID     *string   `gorm:"type:varchar(128);index"`
	MaxCapacity float64   `gorm:"type:double precision;not null"`
	Status      string    `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

func (TruckDTO) TableName() string {
	return "trucks"
}

func fromDomain(t *truck.Truck) TruckDTO {
	dto := TruckDTO{
		ID:          t.ID(),
		MaxCapacity: t.MaxCapacity(),
		Status:      t.Status().String(),
	}
	if routeID, ok := t.RouteID(); ok {
		dto.RouteID = &routeID
	}
	return dto
}

func toDomain(dto TruckDTO) (*truck.Truck, error) {
	status, err := truck.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return truck.RestoreTruck(dto.ID, dto.RouteID, dto.MaxCapacity, status)
}
