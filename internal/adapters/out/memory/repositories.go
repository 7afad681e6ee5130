package memory

import (
	"context"
	"errors"

	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/pkg/errs"
)

type parcelRepository struct {
	uow *UnitOfWork
}

func (r *parcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := r.uow.ensureActive(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.read(aggregate.ID()); exists {
		return errs.NewConflictError("parcel " + aggregate.ID())
	}
	r.uow.parcels.put(aggregate.ID(), toParcelRecord(aggregate))
	r.uow.addedParcels[aggregate.ID()] = struct{}{}
	return ctx.Err()
}

func (r *parcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := r.uow.ensureActive(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.read(aggregate.ID()); !exists {
		return errs.NewObjectNotFoundError("parcelID", aggregate.ID())
	}
	r.uow.parcels.put(aggregate.ID(), toParcelRecord(aggregate))
	return ctx.Err()
}

func (r *parcelRepository) Get(_ context.Context, id string) (*parcel.Parcel, error) {
	if err := r.uow.ensureActive(); err != nil {
		return nil, err
	}
	record, ok := r.read(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcelID", id)
	}
	return record.restore()
}

func (r *parcelRepository) GetMany(ctx context.Context, ids []string) (map[string]*parcel.Parcel, error) {
	result := make(map[string]*parcel.Parcel, len(ids))
	for _, id := range ids {
		if _, seen := result[id]; seen {
			continue
		}
		p, err := r.Get(ctx, id)
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		result[id] = p
	}
	return result, nil
}

func (r *parcelRepository) ListAssignedTo(ctx context.Context, truckID string) ([]*parcel.Parcel, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	assigned := make([]*parcel.Parcel, 0)
	for _, p := range all {
		if p.IsAssignedTo(truckID) {
			assigned = append(assigned, p)
		}
	}
	return assigned, nil
}

func (r *parcelRepository) ListAll(_ context.Context) ([]*parcel.Parcel, error) {
	if err := r.uow.ensureActive(); err != nil {
		return nil, err
	}
	r.uow.store.mu.RLock()
	records := merged(r.uow.parcels, r.uow.store.parcels)
	r.uow.store.mu.RUnlock()

	result := make([]*parcel.Parcel, 0, len(records))
	for _, record := range records {
		p, err := record.restore()
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *parcelRepository) read(id string) (parcelRecord, bool) {
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	return lookup(r.uow.parcels, r.uow.store.parcels, id)
}

type truckRepository struct {
	uow *UnitOfWork
}

func (r *truckRepository) Add(ctx context.Context, aggregate *truck.Truck) error {
	if err := r.uow.ensureActive(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.read(aggregate.ID()); exists {
		return errs.NewConflictError("truck " + aggregate.ID())
	}
	r.uow.trucks.put(aggregate.ID(), toTruckRecord(aggregate))
	r.uow.addedTrucks[aggregate.ID()] = struct{}{}
	return ctx.Err()
}

func (r *truckRepository) Update(ctx context.Context, aggregate *truck.Truck) error {
	if err := r.uow.ensureActive(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.read(aggregate.ID()); !exists {
		return errs.NewObjectNotFoundError("truckID", aggregate.ID())
	}
	r.uow.trucks.put(aggregate.ID(), toTruckRecord(aggregate))
	return ctx.Err()
}

func (r *truckRepository) Get(_ context.Context, id string) (*truck.Truck, error) {
	if err := r.uow.ensureActive(); err != nil {
		return nil, err
	}
	record, ok := r.read(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("truckID", id)
	}
	return record.restore()
}

func (r *truckRepository) ListAll(_ context.Context) ([]*truck.Truck, error) {
	if err := r.uow.ensureActive(); err != nil {
		return nil, err
	}
	r.uow.store.mu.RLock()
	records := merged(r.uow.trucks, r.uow.store.trucks)
	r.uow.store.mu.RUnlock()

	result := make([]*truck.Truck, 0, len(records))
	for _, record := range records {
		t, err := record.restore()
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}

func (r *truckRepository) read(id string) (truckRecord, bool) {
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	return lookup(r.uow.trucks, r.uow.store.trucks, id)
}

type routeRepository struct {
	uow *UnitOfWork
}

func (r *routeRepository) Add(ctx context.Context, aggregate *route.Route) error {
	if err := r.uow.ensureActive(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.read(aggregate.ID()); exists {
		return errs.NewConflictError("route " + aggregate.ID())
	}
	r.uow.routes.put(aggregate.ID(), toRouteRecord(aggregate))
	r.uow.addedRoutes[aggregate.ID()] = struct{}{}
	return ctx.Err()
}

func (r *routeRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := r.uow.ensureActive(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.read(aggregate.ID()); !exists {
		return errs.NewObjectNotFoundError("routeID", aggregate.ID())
	}
	r.uow.routes.put(aggregate.ID(), toRouteRecord(aggregate))
	return ctx.Err()
}

func (r *routeRepository) Get(_ context.Context, id string) (*route.Route, error) {
	if err := r.uow.ensureActive(); err != nil {
		return nil, err
	}
	record, ok := r.read(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("routeID", id)
	}
	return record.restore()
}

func (r *routeRepository) ListAll(_ context.Context) ([]*route.Route, error) {
	if err := r.uow.ensureActive(); err != nil {
		return nil, err
	}
	r.uow.store.mu.RLock()
	records := merged(r.uow.routes, r.uow.store.routes)
	r.uow.store.mu.RUnlock()

	result := make([]*route.Route, 0, len(records))
	for _, record := range records {
		restored, err := record.restore()
		if err != nil {
			return nil, err
		}
		result = append(result, restored)
	}
	return result, nil
}

func (r *routeRepository) read(id string) (routeRecord, bool) {
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	return lookup(r.uow.routes, r.uow.store.routes, id)
}
