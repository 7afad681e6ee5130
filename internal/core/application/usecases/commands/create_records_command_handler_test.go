package commands_test

import (
	"testing"

	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateParcelCommandHandler(t *testing.T) {
	f := newFleet()
	handler := commands.NewCreateParcelCommandHandler(f.uows)

	cmd, err := commands.NewCreateParcelCommand("P-1", "Madurai", 12.5)
	require.NoError(t, err)

	created, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "P-1", created.ID())
	assert.Equal(t, 12.5, f.parcel(t, "P-1").Weight())

	_, err = handler.Handle(t.Context(), cmd)
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestNewCreateParcelCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateParcelCommand("", "Madurai", 1)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateParcelCommand("P-1", "Madurai", 0)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestCreateTruckCommandHandler(t *testing.T) {
	f := newFleet()
	f.addRoute(t, "R-1", depotName, "Madurai")
	handler := commands.NewCreateTruckCommandHandler(f.uows)

	t.Run("routed truck starts active", func(t *testing.T) {
		cmd, err := commands.NewCreateTruckCommand("T-1", 500, "R-1")
		require.NoError(t, err)

		created, err := handler.Handle(t.Context(), cmd)
		require.NoError(t, err)
		assert.Equal(t, truck.Active, created.Status())
		routeID, _ := f.truck(t, "T-1").RouteID()
		assert.Equal(t, "R-1", routeID)
	})

	t.Run("unrouted truck starts idle", func(t *testing.T) {
		cmd, err := commands.NewCreateTruckCommand("T-2", 500, "")
		require.NoError(t, err)

		created, err := handler.Handle(t.Context(), cmd)
		require.NoError(t, err)
		assert.Equal(t, truck.Idle, created.Status())
	})

	t.Run("unknown route is rejected", func(t *testing.T) {
		cmd, err := commands.NewCreateTruckCommand("T-3", 500, "R-404")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestCreateRouteCommandHandler(t *testing.T) {
	f := newFleet()
	handler := commands.NewCreateRouteCommandHandler(f.uows)

	cmd, err := commands.NewCreateRouteCommand("R-1", []string{depotName, "Trichy", "Madurai"}, 1500)
	require.NoError(t, err)

	created, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, []string{depotName, "Trichy", "Madurai"}, stopNames(created))
	assert.Equal(t, []string{depotName, "Trichy", "Madurai"}, stopNames(f.route(t, "R-1")))

	_, err = commands.NewCreateRouteCommand("R-2", nil, 1500)
	assert.Error(t, err)
}
