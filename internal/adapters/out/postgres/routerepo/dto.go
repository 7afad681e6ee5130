// Package routerepo persists route aggregates with GORM. Stops are kept in
// order as a JSON array.
package routerepo

import (
	"time"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/route"
)

// RouteDTO is the routes table row.
type RouteDTO struct {
	ID            string    `gorm:"type:varchar(128);primaryKey"`
	Stops         []string  `gorm:"type:jsonb;serializer:json;not null"`
	CapacityLimit float64   `gorm:"type:double precision;not null"`
	Kind          string    `gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time `gorm:"not null;index"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

func fromDomain(r *route.Route) RouteDTO {
	stops := r.Stops()
	names := make([]string, 0, len(stops))
	for _, stop := range stops {
		names = append(names, stop.Name())
	}
	return RouteDTO{
		ID:            r.ID(),
		Stops:         names,
		CapacityLimit: r.CapacityLimit(),
		Kind:          r.Kind().String(),
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	kind, err := route.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	stops := make([]kernel.Location, 0, len(dto.Stops))
	for _, name := range dto.Stops {
		stop, err := kernel.NewLocation(name)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return route.NewRoute(dto.ID, stops, dto.CapacityLimit, kind)
}
