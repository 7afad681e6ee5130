// Package commands contains the operations that change dispatch state.
// Every command is built through its constructor and validated by its
// handler; handlers own the transaction boundary and the audit trail.
package commands

import (
	"context"

	"fleetdispatch/internal/core/ports"
)

// Unit of Work interfaces narrowed to what command handlers need.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides the parcel repository bound to the transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// TruckRepoFactory provides the truck repository bound to the transaction.
	TruckRepoFactory interface {
		TruckRepository() ports.TruckRepository
	}

	// RouteRepoFactory provides the route repository bound to the transaction.
	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	// UoW spans parcels, trucks and routes. Assignment commands open one per
	// truck so that each truck's changes commit or roll back together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   parcelRepo := uow.ParcelRepository()
	//   truckRepo := uow.TruckRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ParcelRepoFactory
		TruckRepoFactory
		RouteRepoFactory
	}

	// UoWFactory creates unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
