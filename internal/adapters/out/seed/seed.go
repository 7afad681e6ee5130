// Package seed reads the road network and the initial fleet from YAML.
// A default Tamil Nadu network is embedded in the binary.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/network"
	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/core/ports"
	"fleetdispatch/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type SegmentSpec struct {
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Distance float64 `yaml:"distance"`
	Toll     float64 `yaml:"toll"`
}

type NetworkSpec struct {
	Nodes    []string      `yaml:"nodes"`
	Segments []SegmentSpec `yaml:"segments"`
}

type RouteSpec struct {
	ID            string   `yaml:"id"`
	Stops         []string `yaml:"stops"`
	CapacityLimit float64  `yaml:"capacityLimit"`
}

type TruckSpec struct {
	ID          string  `yaml:"id"`
	MaxCapacity float64 `yaml:"maxCapacity"`
	RouteID     string  `yaml:"routeId,omitempty"`
}

type ParcelSpec struct {
	ID          string  `yaml:"id"`
	Destination string  `yaml:"destination"`
	Weight      float64 `yaml:"weight"`
}

// File models a seed document.
type File struct {
	Network NetworkSpec  `yaml:"network"`
	Routes  []RouteSpec  `yaml:"routes,omitempty"`
	Trucks  []TruckSpec  `yaml:"trucks,omitempty"`
	Parcels []ParcelSpec `yaml:"parcels,omitempty"`
}

// Default returns the embedded seed.
func Default() (File, error) {
	return Parse(defaultYAML)
}

// Load reads the seed at path, or the embedded one when path is empty.
func Load(path string) (File, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return File{}, fmt.Errorf("decode seed: %w", err)
	}
	if len(file.Network.Nodes) == 0 && len(file.Network.Segments) == 0 {
		return File{}, errs.NewValueIsRequiredError("network")
	}
	return file, nil
}

// BuildGraph creates the road network. Nodes keep their listed order, then
// any endpoint only named by a segment.
func (f File) BuildGraph() (*network.Graph, error) {
	g := network.NewGraph()
	for _, name := range f.Network.Nodes {
		location, err := kernel.NewLocation(name)
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(location); err != nil {
			return nil, err
		}
	}
	for i, s := range f.Network.Segments {
		from, fromErr := kernel.NewLocation(s.From)
		to, toErr := kernel.NewLocation(s.To)
		if err := errors.Join(fromErr, toErr); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if err := g.AddSegment(from, to, s.Distance, s.Toll); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return g, nil
}

// Apply stores the seeded routes, trucks and parcels in one unit of work.
// Records that already exist are left untouched, so applying a seed to a
// persistent store on every start is safe.
//
// Returns the number of records added.
func (f File) Apply(ctx context.Context, factory ports.UnitOfWorkFactory) (int, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	added := 0
	for _, spec := range f.Routes {
		ok, err := f.addRoute(ctx, uow.RouteRepository(), spec)
		if err != nil {
			return 0, fmt.Errorf("route %s: %w", spec.ID, err)
		}
		added += boolToInt(ok)
	}
	for _, spec := range f.Trucks {
		ok, err := f.addTruck(ctx, uow.TruckRepository(), spec)
		if err != nil {
			return 0, fmt.Errorf("truck %s: %w", spec.ID, err)
		}
		added += boolToInt(ok)
	}
	for _, spec := range f.Parcels {
		ok, err := f.addParcel(ctx, uow.ParcelRepository(), spec)
		if err != nil {
			return 0, fmt.Errorf("parcel %s: %w", spec.ID, err)
		}
		added += boolToInt(ok)
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}
	return added, nil
}

func (f File) addRoute(ctx context.Context, repo ports.RouteRepository, spec RouteSpec) (bool, error) {
	if exists, err := present(repo.Get(ctx, spec.ID)); exists || err != nil {
		return false, err
	}
	stops := make([]kernel.Location, 0, len(spec.Stops))
	for _, name := range spec.Stops {
		stop, err := kernel.NewLocation(name)
		if err != nil {
			return false, err
		}
		stops = append(stops, stop)
	}
	r, err := route.NewRoute(spec.ID, stops, spec.CapacityLimit, route.Static)
	if err != nil {
		return false, err
	}
	return true, repo.Add(ctx, r)
}

func (f File) addTruck(ctx context.Context, repo ports.TruckRepository, spec TruckSpec) (bool, error) {
	if exists, err := present(repo.Get(ctx, spec.ID)); exists || err != nil {
		return false, err
	}
	t, err := truck.NewTruck(spec.ID, spec.MaxCapacity)
	if err != nil {
		return false, err
	}
	if spec.RouteID != "" {
		if err := t.AttachRoute(spec.RouteID); err != nil {
			return false, err
		}
	}
	return true, repo.Add(ctx, t)
}

func (f File) addParcel(ctx context.Context, repo ports.ParcelRepository, spec ParcelSpec) (bool, error) {
	if exists, err := present(repo.Get(ctx, spec.ID)); exists || err != nil {
		return false, err
	}
	destination, err := kernel.NewLocation(spec.Destination)
	if err != nil {
		return false, err
	}
	p, err := parcel.NewParcel(spec.ID, destination, spec.Weight)
	if err != nil {
		return false, err
	}
	return true, repo.Add(ctx, p)
}

// present reports whether a Get found its record. Not found is not an error.
func present[T any](_ T, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	return false, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
