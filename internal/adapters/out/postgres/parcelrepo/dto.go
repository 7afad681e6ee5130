// Package parcelrepo persists parcel aggregates with GORM.
package parcelrepo

import (
	"time"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/parcel"
)

// ParcelDTO is the parcels table row.
type ParcelDTO struct {
	ID              string    `gorm:"type:varchar(64);primaryKey"`
	Destination     string    `gorm:"type:varchar(255);not null"`
	Weight          float64   `gorm:"type:double precision;not null"`
	AssignedTruckID *string   `gorm:"type:varchar(64);index"`
	CreatedAt       time.Time `gorm:"not null;index"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	dto := ParcelDTO{
		ID:          p.ID(),
		Destination: p.Destination().Name(),
		Weight:      p.Weight(),
	}
	if truckID, ok := p.AssignedTruck(); ok {
		dto.AssignedTruckID = &truckID
	}
	return dto
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	destination, err := kernel.NewLocation(dto.Destination)
	if err != nil {
		return nil, err
	}
	return parcel.RestoreParcel(dto.ID, destination, dto.Weight, dto.AssignedTruckID)
}
