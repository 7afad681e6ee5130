package seed_test

import (
	"os"
	"path/filepath"
	"testing"

	"fleetdispatch/internal/adapters/out/memory"
	"fleetdispatch/internal/adapters/out/seed"
	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_BuildsTamilNaduNetwork(t *testing.T) {
	file, err := seed.Default()
	require.NoError(t, err)

	g, err := file.BuildGraph()
	require.NoError(t, err)
	assert.Len(t, g.Snapshot().Nodes(), 8)
	assert.Len(t, g.Segments(), 10)

	finder, err := services.NewPathFinder(services.DefaultFuelRate)
	require.NoError(t, err)
	from, _ := kernel.NewLocation("Chennai (Warehouse)")
	to, _ := kernel.NewLocation("Tirunelveli")

	path, err := finder.FindPath(g.Snapshot(), from, to)
	require.NoError(t, err)
	assert.InDelta(t, 1391.25, path.TotalCost, 0.001)
}

func TestApply_IsIdempotent(t *testing.T) {
	file, err := seed.Default()
	require.NoError(t, err)
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())

	added, err := file.Apply(t.Context(), factory)
	require.NoError(t, err)
	assert.Equal(t, 6, added)

	again, err := file.Apply(t.Context(), factory)
	require.NoError(t, err)
	assert.Zero(t, again)

	uow := factory.CreateUnitOfWork()
	require.NoError(t, uow.Begin(t.Context()))
	trucks, err := uow.TruckRepository().ListAll(t.Context())
	require.NoError(t, err)
	require.Len(t, trucks, 6)
	assert.Equal(t, "T-SM-001", trucks[0].ID())
	assert.Equal(t, 5000.0, trucks[5].MaxCapacity())
}

func TestLoad_FileWithRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
network:
  segments:
    - {from: X, to: Y, distance: 100, toll: 50}
    - {from: Y, to: Z, distance: 100, toll: 50}
routes:
  - {id: R-1, stops: [X, Y, Z], capacityLimit: 1000}
trucks:
  - {id: T-1, maxCapacity: 100, routeId: R-1}
parcels:
  - {id: P-1, destination: Z, weight: 10}
`), 0o600))

	file, err := seed.Load(path)
	require.NoError(t, err)

	g, err := file.BuildGraph()
	require.NoError(t, err)
	assert.Len(t, g.Snapshot().Nodes(), 3)

	added, err := file.Apply(t.Context(), memory.NewUnitOfWorkFactory(memory.NewStore()))
	require.NoError(t, err)
	assert.Equal(t, 3, added)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := seed.Parse([]byte("network:\n  nodes: [X]\nlorries: []\n"))
	assert.Error(t, err)

	_, err = seed.Parse([]byte("trucks: []\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := seed.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
