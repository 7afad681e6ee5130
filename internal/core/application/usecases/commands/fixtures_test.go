package commands_test

import (
	"context"
	"log/slog"
	"testing"

	"fleetdispatch/internal/adapters/out/locks"
	"fleetdispatch/internal/adapters/out/memory"
	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/core/domain/services"
	"fleetdispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const depotName = "Chennai (Warehouse)"

var discard = slog.New(slog.DiscardHandler)

type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW { return f() }

// fleet is a record store plus audit log shared by the handlers under test.
type fleet struct {
	factory *memory.UnitOfWorkFactory
	uows    commands.UoWFactory
	audit   *memory.AuditLog
	lock    *locks.LocalLock
}

func newFleet() *fleet {
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	return &fleet{
		factory: factory,
		uows:    uowFactoryFunc(func() commands.UoW { return factory.CreateUnitOfWork() }),
		audit:   memory.NewAuditLog(100),
		lock:    locks.NewLocalLock(),
	}
}

func (f *fleet) tx(t *testing.T, fn func(uow *memory.UnitOfWork)) {
	t.Helper()
	uow := f.factory.CreateUnitOfWork()
	require.NoError(t, uow.Begin(context.Background()))
	fn(uow)
	require.NoError(t, uow.Commit(context.Background()))
}

func (f *fleet) addRoute(t *testing.T, id string, stops ...string) {
	t.Helper()
	f.addRouteOfKind(t, id, route.Static, stops...)
}

func (f *fleet) addRouteOfKind(t *testing.T, id string, kind route.Kind, stops ...string) {
	t.Helper()
	locations := make([]kernel.Location, 0, len(stops))
	for _, stop := range stops {
		locations = append(locations, loc(t, stop))
	}
	r, err := route.NewRoute(id, locations, 5000, kind)
	require.NoError(t, err)
	f.tx(t, func(uow *memory.UnitOfWork) {
		require.NoError(t, uow.RouteRepository().Add(context.Background(), r))
	})
}

func (f *fleet) addTruck(t *testing.T, id string, capacity float64, routeID string) {
	t.Helper()
	tr, err := truck.NewTruck(id, capacity)
	require.NoError(t, err)
	if routeID != "" {
		require.NoError(t, tr.AttachRoute(routeID))
	}
	f.tx(t, func(uow *memory.UnitOfWork) {
		require.NoError(t, uow.TruckRepository().Add(context.Background(), tr))
	})
}

func (f *fleet) addParcel(t *testing.T, id, destination string, weight float64, assignedTo string) {
	t.Helper()
	var holder *string
	if assignedTo != "" {
		holder = &assignedTo
	}
	p, err := parcel.RestoreParcel(id, loc(t, destination), weight, holder)
	require.NoError(t, err)
	f.tx(t, func(uow *memory.UnitOfWork) {
		require.NoError(t, uow.ParcelRepository().Add(context.Background(), p))
	})
}

func (f *fleet) parcel(t *testing.T, id string) *parcel.Parcel {
	t.Helper()
	var p *parcel.Parcel
	f.tx(t, func(uow *memory.UnitOfWork) {
		var err error
		p, err = uow.ParcelRepository().Get(context.Background(), id)
		require.NoError(t, err)
	})
	return p
}

func (f *fleet) truck(t *testing.T, id string) *truck.Truck {
	t.Helper()
	var tr *truck.Truck
	f.tx(t, func(uow *memory.UnitOfWork) {
		var err error
		tr, err = uow.TruckRepository().Get(context.Background(), id)
		require.NoError(t, err)
	})
	return tr
}

func (f *fleet) route(t *testing.T, id string) *route.Route {
	t.Helper()
	var r *route.Route
	f.tx(t, func(uow *memory.UnitOfWork) {
		var err error
		r, err = uow.RouteRepository().Get(context.Background(), id)
		require.NoError(t, err)
	})
	return r
}

func loc(t *testing.T, name string) kernel.Location {
	t.Helper()
	location, err := kernel.NewLocation(name)
	require.NoError(t, err)
	return location
}

func synthesizer(t *testing.T) *services.RouteSynthesizer {
	t.Helper()
	s, err := services.NewRouteSynthesizer(loc(t, depotName))
	require.NoError(t, err)
	return s
}

func stopNames(r *route.Route) []string {
	stops := r.Stops()
	result := make([]string, 0, len(stops))
	for _, stop := range stops {
		result = append(result, stop.Name())
	}
	return result
}

type MockExecutionLock struct{ mock.Mock }

func (m *MockExecutionLock) TryAcquire(ctx context.Context) (func(), error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	repo, _ := m.Called().Get(0).(ports.ParcelRepository)
	return repo
}

func (m *MockUoW) TruckRepository() ports.TruckRepository {
	repo, _ := m.Called().Get(0).(ports.TruckRepository)
	return repo
}

func (m *MockUoW) RouteRepository() ports.RouteRepository {
	repo, _ := m.Called().Get(0).(ports.RouteRepository)
	return repo
}

type MockTruckRepository struct{ mock.Mock }

func (m *MockTruckRepository) Add(ctx context.Context, aggregate *truck.Truck) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockTruckRepository) Update(ctx context.Context, aggregate *truck.Truck) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockTruckRepository) Get(ctx context.Context, id string) (*truck.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*truck.Truck), args.Error(1)
}

func (m *MockTruckRepository) ListAll(ctx context.Context) ([]*truck.Truck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*truck.Truck), args.Error(1)
}
