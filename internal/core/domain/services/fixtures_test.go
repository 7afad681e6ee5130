package services_test

import (
	"testing"

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

type road struct {
	a, b           string
	distance, toll float64
}

func buildGraph(t *testing.T, roads ...road) *network.Graph {
	t.Helper()
	g := network.NewGraph()
	for _, r := range roads {
		require.NoError(t, g.AddSegment(loc(t, r.a), loc(t, r.b), r.distance, r.toll))
	}
	return g
}

func tamilNadu(t *testing.T) *network.Graph {
	t.Helper()
	return buildGraph(t,
		road{depotName, "Vellore", 140, 150},
		road{depotName, "Trichy", 330, 350},
		road{depotName, "Salem", 340, 320},
		road{"Vellore", "Salem", 200, 180},
		road{"Trichy", "Madurai", 135, 120},
		road{"Madurai", "Tirunelveli", 160, 140},
		road{"Salem", "Erode", 65, 60},
		road{"Erode", "Coimbatore", 100, 90},
		road{"Trichy", "Erode", 140, 110},
		road{"Madurai", "Coimbatore", 210, 200},
	)
}

func names(locations []kernel.Location) []string {
	result := make([]string, 0, len(locations))
	for _, l := range locations {
		result = append(result, l.Name())
	}
	return result
}

func newParcel(t *testing.T, id, destination string, weight float64) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(id, loc(t, destination), weight)
	require.NoError(t, err)
	return p
}

func newTruck(t *testing.T, id string, capacity float64) *truck.Truck {
	t.Helper()
	tr, err := truck.NewTruck(id, capacity)
	require.NoError(t, err)
	return tr
}

func newRoute(t *testing.T, id string, stops ...string) *route.Route {
	t.Helper()
	locations := make([]kernel.Location, 0, len(stops))
	for _, stop := range stops {
		locations = append(locations, loc(t, stop))
	}
	r, err := route.NewRoute(id, locations, 5000, route.Static)
	require.NoError(t, err)
	return r
}

func parcelIndex(parcels ...*parcel.Parcel) map[string]*parcel.Parcel {
	index := make(map[string]*parcel.Parcel, len(parcels))
	for _, p := range parcels {
		index[p.ID()] = p
	}
	return index
}
