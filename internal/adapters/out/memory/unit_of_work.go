package memory

import (
	"context"
	"errors"

	"fleetdispatch/internal/core/ports"
	"fleetdispatch/internal/pkg/errs"
)

var (
	ErrTransactionNotStarted = errors.New("transaction not started")
	ErrTransactionActive     = errors.New("transaction already started")
)

// UnitOfWork stages changes and applies them to the store on Commit.
// Reads see the committed store overlaid with this unit's own staged rows.
type UnitOfWork struct {
	store  *Store
	active bool

	parcels *table[parcelRecord]
	trucks  *table[truckRecord]
	routes  *table[routeRecord]

	addedParcels map[string]struct{}
	addedTrucks  map[string]struct{}
	addedRoutes  map[string]struct{}

	parcelRepo *parcelRepository
	truckRepo  *truckRepository
	routeRepo  *routeRepository
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

func newUnitOfWork(store *Store) *UnitOfWork {
	uow := &UnitOfWork{store: store}
	uow.reset()
	uow.parcelRepo = &parcelRepository{uow: uow}
	uow.truckRepo = &truckRepository{uow: uow}
	uow.routeRepo = &routeRepository{uow: uow}
	return uow
}

func (u *UnitOfWork) reset() {
	u.parcels = newTable[parcelRecord]()
	u.trucks = newTable[truckRecord]()
	u.routes = newTable[routeRecord]()
	u.addedParcels = make(map[string]struct{})
	u.addedTrucks = make(map[string]struct{})
	u.addedRoutes = make(map[string]struct{})
}

// Begin starts staging.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if u.active {
		return ErrTransactionActive
	}
	u.reset()
	u.active = true
	return nil
}

// Commit applies every staged row to the store at once. Rows added through
// Add must still be absent from the store.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return ErrTransactionNotStarted
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if err := errors.Join(
		conflicts(u.addedParcels, u.store.parcels, "parcel"),
		conflicts(u.addedTrucks, u.store.trucks, "truck"),
		conflicts(u.addedRoutes, u.store.routes, "route"),
	); err != nil {
		return err
	}

	u.parcels.each(u.store.parcels.put)
	u.trucks.each(u.store.trucks.put)
	u.routes.each(u.store.routes.put)

	u.active = false
	u.reset()
	return nil
}

// Rollback drops staged rows. It is a no-op outside a transaction.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return nil
	}
	u.active = false
	u.reset()
	return nil
}

func (u *UnitOfWork) ParcelRepository() ports.ParcelRepository { return u.parcelRepo }
func (u *UnitOfWork) TruckRepository() ports.TruckRepository { return u.truckRepo }
func (u *UnitOfWork) RouteRepository() ports.RouteRepository { return u.routeRepo }

func (u *UnitOfWork) ensureActive() error {
	if !u.active {
		return ErrTransactionNotStarted
	}
	return nil
}

func conflicts[R any](added map[string]struct{}, committed *table[R], resource string) error {
	for id := range added {
		if committed.has(id) {
			return errs.NewConflictError(resource + " " + id)
		}
	}
	return nil
}

// lookup reads id from the staged table, then from the committed one.
func lookup[R any](staged, committed *table[R], id string) (R, bool) {
	if row, ok := staged.get(id); ok {
		return row, true
	}
	return committed.get(id)
}

// merged lists committed rows, overlaid by staged ones, then rows only staged.
func merged[R any](staged, committed *table[R]) []R {
	rows := make([]R, 0, committed.len()+staged.len())
	committed.each(func(id string, row R) {
		if override, ok := staged.get(id); ok {
			row = override
		}
		rows = append(rows, row)
	})
	staged.each(func(id string, row R) {
		if !committed.has(id) {
			rows = append(rows, row)
		}
	})
	return rows
}
