package services_test

import (
	"testing"

	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalGenerator_Generate(t *testing.T) {
	finder := newFinder(t)
	generator := services.NewProposalGenerator(finder, loc(t, depotName))
	g := tamilNadu(t)

	small := newTruck(t, "T-SM-001", 500)
	large := newTruck(t, "T-LG-001", 5000)
	routed := newTruck(t, "T-MD-001", 1500)
	require.NoError(t, routed.AttachRoute("R-WEST"))
	routes := map[string]*route.Route{"R-WEST": newRoute(t, "R-WEST", depotName, "Salem", "Erode")}

	loaded := newParcel(t, "P-0", "Salem", 450)
	require.NoError(t, loaded.Assign("T-SM-001"))

	parcels := []*parcel.Parcel{
		loaded,
		newParcel(t, "P-1", "Madurai", 300),
		newParcel(t, "P-2", "Erode", 700),
		newParcel(t, "P-3", "Madurai", 200),
		newParcel(t, "P-4", "Atlantis", 9000),
	}

	report := generator.Generate(g.Snapshot(), parcels, []*truck.Truck{small, routed, large}, routes)

	assert.Equal(t, 4, report.PendingParcels)
	require.Len(t, report.Proposals, 3)

	madurai := report.Proposals[0]
	assert.Equal(t, services.ClusterOptimization, madurai.Type)
	assert.Equal(t, []string{"P-1", "P-3"}, madurai.ParcelIDs)
	assert.InDelta(t, 500.0, madurai.TotalWeight, 0)
	assert.Equal(t, "T-LG-001", madurai.TruckID, "small truck is loaded and routed truck does not stop at Madurai")
	require.NotNil(t, madurai.EstimatedCost)
	assert.InDelta(t, 1051.25, *madurai.EstimatedCost, 1e-9)
	assert.Equal(t, services.ReadyToOptimize, madurai.Status)

	erode := report.Proposals[1]
	assert.Equal(t, "T-MD-001", erode.TruckID)

	atlantis := report.Proposals[2]
	assert.Equal(t, services.UnfulfilledCluster, atlantis.Type)
	assert.Equal(t, services.NoCapacityReason, atlantis.Reason)
	assert.Empty(t, atlantis.TruckID)

	assert.Len(t, report.Ready(), 2)
}

func TestProposalGenerator_ConsumesCapacityWithinARun(t *testing.T) {
	generator := services.NewProposalGenerator(newFinder(t), loc(t, depotName))
	g := tamilNadu(t)
	only := newTruck(t, "T-1", 1000)

	report := generator.Generate(g.Snapshot(), []*parcel.Parcel{
		newParcel(t, "P-1", "Salem", 600),
		newParcel(t, "P-2", "Erode", 600),
	}, []*truck.Truck{only}, nil)

	require.Len(t, report.Proposals, 2)
	assert.Equal(t, services.ClusterOptimization, report.Proposals[0].Type)
	assert.Equal(t, services.UnfulfilledCluster, report.Proposals[1].Type)
}
