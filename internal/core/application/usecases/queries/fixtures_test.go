package queries_test

import (
	"context"
	"testing"
	"time"

	"fleetdispatch/internal/adapters/out/memory"
	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/network"
	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"

	"github.com/stretchr/testify/require"
)

const depotName = "Chennai (Warehouse)"

func loc(t *testing.T, name string) kernel.Location {
	t.Helper()
	location, err := kernel.NewLocation(name)
	require.NoError(t, err)
	return location
}

func tamilNadu(t *testing.T) *network.Graph {
	t.Helper()
	g := network.NewGraph()
	for _, r := range []struct {
		a, b           string
		distance, toll float64
	}{
		{depotName, "Vellore", 140, 150},
		{depotName, "Trichy", 330, 350},
		{depotName, "Salem", 340, 320},
		{"Vellore", "Salem", 200, 180},
		{"Trichy", "Madurai", 135, 120},
		{"Madurai", "Tirunelveli", 160, 140},
		{"Salem", "Erode", 65, 60},
		{"Erode", "Coimbatore", 100, 90},
		{"Trichy", "Erode", 140, 110},
		{"Madurai", "Coimbatore", 210, 200},
	} {
		require.NoError(t, g.AddSegment(loc(t, r.a), loc(t, r.b), r.distance, r.toll))
	}
	return g
}

// seedFleet stores two routes, three trucks and four parcels.
func seedFleet(t *testing.T) *memory.UnitOfWorkFactory {
	t.Helper()
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	uow := factory.CreateUnitOfWork()
	require.NoError(t, uow.Begin(ctx))

	south, err := route.NewRoute("R-SOUTH", []kernel.Location{loc(t, depotName), loc(t, "Trichy"), loc(t, "Madurai")}, 5000, route.Static)
	require.NoError(t, err)
	require.NoError(t, uow.RouteRepository().Add(ctx, south))

	for _, spec := range []struct {
		id       string
		capacity float64
		routeID  string
	}{
		{"T-SM-001", 500, "R-SOUTH"},
		{"T-MD-001", 1500, ""},
		{"T-LG-001", 5000, ""},
	} {
		tr, err := truck.NewTruck(spec.id, spec.capacity)
		require.NoError(t, err)
		if spec.routeID != "" {
			require.NoError(t, tr.AttachRoute(spec.routeID))
		}
		require.NoError(t, uow.TruckRepository().Add(ctx, tr))
	}

	for _, spec := range []struct {
		id, destination string
		weight          float64
		assignedTo      string
	}{
		{"P-1", "Madurai", 120, ""},
		{"P-2", "Madurai", 80, ""},
		{"P-3", "Coimbatore", 300, ""},
		{"P-4", "Trichy", 50, "T-SM-001"},
	} {
		var holder *string
		if spec.assignedTo != "" {
			holder = &spec.assignedTo
		}
		p, err := parcel.RestoreParcel(spec.id, loc(t, spec.destination), spec.weight, holder)
		require.NoError(t, err)
		require.NoError(t, uow.ParcelRepository().Add(ctx, p))
	}

	require.NoError(t, uow.Commit(ctx))
	return factory
}

func batchWorkflow(batchID, truckID string, at time.Time) audit.Workflow {
	w := audit.NewWorkflow(audit.BatchAssign, audit.Automation, map[string]string{"truckID": truckID}, at)
	w.BatchID = batchID
	w.Pass("AtomicCommit", "Assigned 1 parcels.", at)
	w.Complete(at)
	return *w
}
