package commands_test

import (
	"testing"

	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/domain/model/network"
	"fleetdispatch/internal/core/domain/services"
	"fleetdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func newToggleHandler(t *testing.T, f *fleet, g *network.Graph) commands.ToggleRoadCommandHandler {
	t.Helper()
	finder, err := services.NewPathFinder(services.DefaultFuelRate)
	require.NoError(t, err)
	return commands.NewToggleRoadCommandHandler(g, f.uows, services.NewImpactAnalyzer(finder), discard, nil)
}

func toggleCmd(t *testing.T, from, to string, closed bool) commands.ToggleRoadCommand {
	t.Helper()
	cmd, err := commands.NewToggleRoadCommand(from, to, closed)
	require.NoError(t, err)
	return cmd
}

func TestToggleRoadCommandHandler_CloseReportsImpacts(t *testing.T) {
	f := newFleet()
	f.addRoute(t, "R-SOUTH", depotName, "Trichy", "Madurai")
	f.addRoute(t, "R-WEST", depotName, "Salem", "Erode")
	f.addTruck(t, "T-1", 1500, "R-SOUTH")
	f.addTruck(t, "T-2", 1500, "R-WEST")
	f.addTruck(t, "T-3", 1500, "")
	g := tamilNadu(t)

	result, err := newToggleHandler(t, f, g).Handle(t.Context(), toggleCmd(t, "Madurai", "Trichy", true))

	require.NoError(t, err)
	assert.Equal(t, commands.SegmentClosed, result.Status)
	assert.True(t, result.Segment.IsClosed())
	assert.Equal(t, float64(network.ClosedSentinel), result.Segment.Distance())

	require.Len(t, result.Impacts, 1)
	impact := result.Impacts[0]
	assert.Equal(t, "T-1", impact.TruckID)
	assert.Equal(t, "R-SOUTH", impact.RouteID)
	assert.Equal(t, services.RoadClosedImpact, impact.Impact)
	assert.Equal(t, services.Reroute, impact.Action)
	require.NotNil(t, impact.NewCost)
	assert.InDelta(t, 1563.75, *impact.NewCost, 0.001)

	path := make([]string, 0, len(impact.AlternatePath))
	for _, stop := range impact.AlternatePath {
		path = append(path, stop.Name())
	}
	assert.Equal(t, []string{depotName, "Salem", "Erode", "Coimbatore", "Madurai"}, path)
}

func TestToggleRoadCommandHandler_ReopenRestoresSegment(t *testing.T) {
	f := newFleet()
	g := tamilNadu(t)
	handler := newToggleHandler(t, f, g)

	_, err := handler.Handle(t.Context(), toggleCmd(t, "Trichy", "Madurai", true))
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), toggleCmd(t, "Trichy", "Madurai", true))
	require.NoError(t, err)

	result, err := handler.Handle(t.Context(), toggleCmd(t, "Trichy", "Madurai", false))
	require.NoError(t, err)
	assert.Equal(t, commands.SegmentOpen, result.Status)
	assert.False(t, result.Segment.IsClosed())
	assert.Equal(t, 135.0, result.Segment.Distance())
	assert.Equal(t, 120.0, result.Segment.Toll())
	assert.Empty(t, result.Impacts)
}

func TestToggleRoadCommandHandler_UnknownSegment(t *testing.T) {
	f := newFleet()
	_, err := newToggleHandler(t, f, tamilNadu(t)).Handle(t.Context(), toggleCmd(t, "Vellore", "Madurai", true))
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewToggleRoadCommand_RequiresEndpoints(t *testing.T) {
	_, err := commands.NewToggleRoadCommand(" ", "Madurai", true)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
