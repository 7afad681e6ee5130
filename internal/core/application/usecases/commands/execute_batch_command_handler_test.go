package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/domain/model/assignment"
	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/core/ports"
	"fleetdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBatchHandler(t *testing.T, f *fleet, lock ports.ExecutionLock, delay time.Duration) commands.ExecuteBatchCommandHandler {
	t.Helper()
	return commands.NewExecuteBatchCommandHandler(f.uows, f.audit, lock, synthesizer(t), delay, discard, nil)
}

func batch(t *testing.T, proposals ...assignment.Proposal) commands.ExecuteBatchCommand {
	t.Helper()
	cmd, err := commands.NewExecuteBatchCommand(proposals, audit.Manual)
	require.NoError(t, err)
	return cmd
}

func alertMessages(t *testing.T, f *fleet) []string {
	t.Helper()
	alerts, err := f.audit.ListAlerts(context.Background(), 0)
	require.NoError(t, err)
	messages := make([]string, 0, len(alerts))
	for i := len(alerts) - 1; i >= 0; i-- {
		messages = append(messages, alerts[i].Message)
	}
	return messages
}

func TestExecuteBatchCommandHandler_PriorityPrecedence(t *testing.T) {
	f := newFleet()
	f.addRoute(t, "R-1", depotName, "Madurai")
	f.addTruck(t, "T-1", 100, "R-1")
	f.addParcel(t, "P-LOW", "Madurai", 60, "")
	f.addParcel(t, "P-HIGH", "Madurai", 60, "")

	handler := newBatchHandler(t, f, f.lock, 0)
	result, err := handler.Handle(t.Context(), batch(t,
		assignment.Proposal{ParcelID: "P-LOW", TruckID: "T-1", Priority: assignment.Low},
		assignment.Proposal{ParcelID: "P-HIGH", TruckID: "T-1", Priority: assignment.High},
	))

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	assert.Equal(t, []string{"Capacity Limit Reached for Truck T-1. Skipped Parcel P-LOW (Priority: LOW)."}, result.Errors)

	holder, assigned := f.parcel(t, "P-HIGH").AssignedTruck()
	assert.True(t, assigned)
	assert.Equal(t, "T-1", holder)
	assert.False(t, f.parcel(t, "P-LOW").IsAssigned())

	assert.Equal(t, []string{"Optimization Skipped: Truck T-1 full. Parcel P-LOW left behind."}, alertMessages(t, f))

	alerts, err := f.audit.ListAlerts(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, audit.SL2, alerts[0].Severity)
}

func TestExecuteBatchCommandHandler_CapacityCountsExistingLoad(t *testing.T) {
	f := newFleet()
	f.addRoute(t, "R-1", depotName, "Salem")
	f.addTruck(t, "T-1", 100, "R-1")
	f.addParcel(t, "P-OLD", "Salem", 70, "T-1")
	f.addParcel(t, "P-1", "Salem", 30, "")
	f.addParcel(t, "P-2", "Salem", 1, "")

	result, err := newBatchHandler(t, f, f.lock, 0).Handle(t.Context(), batch(t,
		assignment.Proposal{ParcelID: "P-1", TruckID: "T-1", Priority: assignment.Medium},
		assignment.Proposal{ParcelID: "P-2", TruckID: "T-1", Priority: assignment.Low},
	))

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount, "a load equal to capacity still fits")
	assert.Equal(t, 1, result.FailureCount)
	assert.True(t, f.parcel(t, "P-1").IsAssignedTo("T-1"))
	assert.False(t, f.parcel(t, "P-2").IsAssigned())
}

func TestExecuteBatchCommandHandler_SkipsInvalidProposals(t *testing.T) {
	f := newFleet()
	f.addRoute(t, "R-1", depotName, "Madurai")
	f.addTruck(t, "T-1", 500, "R-1")
	f.addParcel(t, "P-1", "Madurai", 10, "")
	f.addParcel(t, "P-TAKEN", "Madurai", 10, "T-9")
	f.addParcel(t, "P-FAR", "Coimbatore", 10, "")

	result, err := newBatchHandler(t, f, f.lock, 0).Handle(t.Context(), batch(t,
		assignment.Proposal{ParcelID: "P-1", TruckID: "T-1"},
		assignment.Proposal{ParcelID: "P-404", TruckID: "T-1"},
		assignment.Proposal{ParcelID: "P-TAKEN", TruckID: "T-1"},
		assignment.Proposal{ParcelID: "P-FAR", TruckID: "T-1"},
		assignment.Proposal{ParcelID: "P-1", TruckID: "T-1"},
		assignment.Proposal{ParcelID: "P-2", TruckID: "T-GHOST"},
		assignment.Proposal{ParcelID: "P-3", TruckID: "T-GHOST"},
	))

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 6, result.FailureCount)
	assert.Equal(t, []string{
		"Parcel P-404 not found.",
		"Parcel P-TAKEN is already assigned.",
		"Route R-1 of Truck T-1 does not stop at Coimbatore. Skipped Parcel P-FAR.",
		"Parcel P-1 is already accepted in this batch.",
		"Truck T-GHOST not found. Skipped 2 assignments.",
	}, result.Errors)

	assert.Equal(t, []string{
		"Parcel P-TAKEN is already assigned.",
		"Route R-1 of Truck T-1 does not stop at Coimbatore. Skipped Parcel P-FAR.",
	}, alertMessages(t, f))

	holder, _ := f.parcel(t, "P-TAKEN").AssignedTruck()
	assert.Equal(t, "T-9", holder, "an assigned parcel never changes hands")
}

func TestExecuteBatchCommandHandler_DanglingRouteFailsGroup(t *testing.T) {
	f := newFleet()
	f.addTruck(t, "T-1", 500, "R-GONE")
	f.addParcel(t, "P-1", "Madurai", 10, "")

	result, err := newBatchHandler(t, f, f.lock, 0).Handle(t.Context(), batch(t,
		assignment.Proposal{ParcelID: "P-1", TruckID: "T-1", Priority: assignment.High},
	))

	require.NoError(t, err)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	assert.Equal(t, []string{"Route R-GONE of Truck T-1 not found. Skipped 1 assignments."}, result.Errors)

	alerts, err := f.audit.ListAlerts(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, audit.SL3, alerts[0].Severity)
	assert.False(t, f.parcel(t, "P-1").IsAssigned())
}

func TestExecuteBatchCommandHandler_SynthesizesDynamicRoute(t *testing.T) {
	f := newFleet()
	f.addTruck(t, "T-1", 500, "")
	f.addParcel(t, "P-1", "Madurai", 10, "")
	f.addParcel(t, "P-2", "Tirunelveli", 10, "")
	f.addParcel(t, "P-3", "Madurai", 10, "")

	result, err := newBatchHandler(t, f, f.lock, 0).Handle(t.Context(), batch(t,
		assignment.Proposal{ParcelID: "P-1", TruckID: "T-1"},
		assignment.Proposal{ParcelID: "P-2", TruckID: "T-1"},
		assignment.Proposal{ParcelID: "P-3", TruckID: "T-1"},
	))

	require.NoError(t, err)
	assert.Equal(t, 3, result.SuccessCount)
	require.Len(t, result.Commits, 1)
	assert.Equal(t, "R-DYNAMIC-MADURAI", result.Commits[0].RouteID)
	assert.True(t, result.Commits[0].RouteCreated)

	r := f.route(t, "R-DYNAMIC-MADURAI")
	assert.Equal(t, []string{depotName, "Madurai", "Tirunelveli"}, stopNames(r))
	assert.Equal(t, route.Dynamic, r.Kind())
	assert.Equal(t, route.DynamicCapacityLimit, r.CapacityLimit())

	tr := f.truck(t, "T-1")
	routeID, routed := tr.RouteID()
	assert.True(t, routed)
	assert.Equal(t, "R-DYNAMIC-MADURAI", routeID)
	assert.Equal(t, truck.Active, tr.Status())

	replay, err := f.audit.WorkflowsByBatch(t.Context(), result.BatchID.String())
	require.NoError(t, err)
	require.Len(t, replay, 1)
	assert.Equal(t, audit.BatchAssign, replay[0].Type)
	assert.Equal(t, audit.Completed, replay[0].Status)
	assert.Equal(t, "T-1", replay[0].Input["truckID"])
	assert.Equal(t, "3", replay[0].Input["parcelCount"])
	assert.Equal(t, "AtomicCommit", replay[0].Steps[0].Name)
}

func TestExecuteBatchCommandHandler_ExtendsExistingDynamicRoute(t *testing.T) {
	f := newFleet()
	f.addRouteOfKind(t, "R-DYNAMIC-SALEM", route.Dynamic, depotName, "Salem")
	f.addTruck(t, "T-1", 500, "")
	f.addParcel(t, "P-1", "Salem", 10, "")
	f.addParcel(t, "P-2", "Erode", 10, "")

	result, err := newBatchHandler(t, f, f.lock, 0).Handle(t.Context(), batch(t,
		assignment.Proposal{ParcelID: "P-1", TruckID: "T-1"},
		assignment.Proposal{ParcelID: "P-2", TruckID: "T-1"},
	))

	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.False(t, result.Commits[0].RouteCreated)
	assert.Equal(t, []string{depotName, "Salem", "Erode"}, stopNames(f.route(t, "R-DYNAMIC-SALEM")))
}

func TestExecuteBatchCommandHandler_StaticRouteIDIsNeverExtended(t *testing.T) {
	f := newFleet()
	f.addRoute(t, "R-DYNAMIC-SALEM", depotName, "Salem")
	f.addTruck(t, "T-1", 500, "")
	f.addParcel(t, "P-1", "Salem", 10, "")
	f.addParcel(t, "P-2", "Erode", 10, "")

	result, err := newBatchHandler(t, f, f.lock, 0).Handle(t.Context(), batch(t,
		assignment.Proposal{ParcelID: "P-1", TruckID: "T-1"},
		assignment.Proposal{ParcelID: "P-2", TruckID: "T-1"},
	))

	require.NoError(t, err)
	assert.Zero(t, result.SuccessCount)
	assert.Equal(t, 2, result.FailureCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Cannot synthesize a route for Truck T-1")

	assert.Equal(t, []string{depotName, "Salem"}, stopNames(f.route(t, "R-DYNAMIC-SALEM")))
	assert.False(t, f.parcel(t, "P-1").IsAssigned())
	assert.False(t, f.parcel(t, "P-2").IsAssigned())
	assert.False(t, f.truck(t, "T-1").IsRouted())

	alerts, err := f.audit.ListAlerts(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, audit.SL3, alerts[0].Severity)
}

func TestExecuteBatchCommandHandler_ParcelSentToTwoTrucks(t *testing.T) {
	f := newFleet()
	f.addRoute(t, "R-1", depotName, "Madurai")
	f.addTruck(t, "T-1", 500, "R-1")
	f.addTruck(t, "T-2", 500, "R-1")
	f.addParcel(t, "P-1", "Madurai", 40, "")

	result, err := newBatchHandler(t, f, f.lock, 0).Handle(t.Context(), batch(t,
		assignment.Proposal{ParcelID: "P-1", TruckID: "T-1", Priority: assignment.Low},
		assignment.Proposal{ParcelID: "P-1", TruckID: "T-2", Priority: assignment.High},
	))

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	assert.Equal(t, []string{"Parcel P-1 is already assigned."}, result.Errors)
	require.Len(t, result.Commits, 1)
	assert.Equal(t, "T-1", result.Commits[0].TruckID)

	holder, _ := f.parcel(t, "P-1").AssignedTruck()
	assert.Equal(t, "T-1", holder, "the first truck group keeps the parcel")
	assert.Equal(t, []string{"Parcel P-1 is already assigned."}, alertMessages(t, f))

	alerts, err := f.audit.ListAlerts(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, audit.SL1, alerts[0].Severity)
}

func TestExecuteBatchCommandHandler_Exclusivity(t *testing.T) {
	f := newFleet()
	f.addRoute(t, "R-1", depotName, "Madurai")
	f.addTruck(t, "T-1", 5000, "R-1")
	f.addParcel(t, "P-1", "Madurai", 10, "")

	handler := newBatchHandler(t, f, f.lock, 300*time.Millisecond)
	cmd := batch(t, assignment.Proposal{ParcelID: "P-1", TruckID: "T-1", Priority: assignment.High})
	const callers = 5

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	start := make(chan struct{})
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := handler.Handle(context.Background(), cmd)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrConflict):
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, conflicts)
	assert.True(t, f.parcel(t, "P-1").IsAssignedTo("T-1"))
}

func TestExecuteBatchCommandHandler_ConflictWhenLockHeld(t *testing.T) {
	f := newFleet()
	lock := &MockExecutionLock{}
	lock.On("TryAcquire", mock.Anything).Return(nil, errs.NewConflictError("execution lock"))

	_, err := newBatchHandler(t, f, lock, 0).Handle(t.Context(), batch(t,
		assignment.Proposal{ParcelID: "P-1", TruckID: "T-1"},
	))

	assert.ErrorIs(t, err, errs.ErrConflict)
	stats, statsErr := f.audit.Stats(t.Context())
	require.NoError(t, statsErr)
	assert.Zero(t, stats.Alerts+stats.Workflows)
	lock.AssertExpectations(t)
}

func TestExecuteBatchCommandHandler_CancelDuringSettleChangesNothing(t *testing.T) {
	f := newFleet()
	f.addRoute(t, "R-1", depotName, "Madurai")
	f.addTruck(t, "T-1", 500, "R-1")
	f.addParcel(t, "P-1", "Madurai", 10, "")

	released := false
	lock := &MockExecutionLock{}
	lock.On("TryAcquire", mock.Anything).Return(func() { released = true }, nil)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	_, err := newBatchHandler(t, f, lock, time.Minute).Handle(ctx, batch(t,
		assignment.Proposal{ParcelID: "P-1", TruckID: "T-1"},
	))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, released)
	assert.False(t, f.parcel(t, "P-1").IsAssigned())
}

func TestExecuteBatchCommandHandler_StoreErrorAbortsAndReleases(t *testing.T) {
	f := newFleet()
	storeErr := errors.New("connection reset")

	truckRepo := &MockTruckRepository{}
	truckRepo.On("Get", mock.Anything, "T-1").Return(nil, storeErr)

	uow := &MockUoW{}
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("ParcelRepository").Return(nil)
	uow.On("TruckRepository").Return(truckRepo)
	uow.On("RouteRepository").Return(nil)

	released := false
	lock := &MockExecutionLock{}
	lock.On("TryAcquire", mock.Anything).Return(func() { released = true }, nil)

	handler := commands.NewExecuteBatchCommandHandler(
		uowFactoryFunc(func() commands.UoW { return uow }),
		f.audit, lock, synthesizer(t), 0, discard, nil,
	)
	_, err := handler.Handle(t.Context(), batch(t, assignment.Proposal{ParcelID: "P-1", TruckID: "T-1"}))

	assert.ErrorIs(t, err, storeErr)
	assert.True(t, released)
	uow.AssertCalled(t, "Rollback", mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewExecuteBatchCommand(t *testing.T) {
	t.Run("trims ids and defaults source", func(t *testing.T) {
		cmd, err := commands.NewExecuteBatchCommand([]assignment.Proposal{
			{ParcelID: " P-1 ", TruckID: "T-1 "},
		}, "")
		require.NoError(t, err)
		assert.Equal(t, audit.Manual, cmd.Source())
		assert.Equal(t, "P-1", cmd.Proposals()[0].ParcelID)
		assert.Equal(t, "T-1", cmd.Proposals()[0].TruckID)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		for _, proposals := range [][]assignment.Proposal{nil, {}} {
			_, err := commands.NewExecuteBatchCommand(proposals, audit.Manual)
			require.ErrorIs(t, err, errs.ErrValueIsRequired)
			assert.ErrorIs(t, err, commands.ErrEmptyBatch)
		}
	})

	t.Run("requires ids", func(t *testing.T) {
		_, err := commands.NewExecuteBatchCommand([]assignment.Proposal{{ParcelID: "P-1"}}, audit.Manual)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is rejected by the handler", func(t *testing.T) {
		f := newFleet()
		_, err := newBatchHandler(t, f, f.lock, 0).Handle(t.Context(), commands.ExecuteBatchCommand{})
		assert.ErrorIs(t, err, commands.ErrExecuteBatchCommandIsNotConstructed)
	})
}
