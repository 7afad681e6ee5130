package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fleetdispatch/internal/core/domain/model/assignment"
	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/route"
	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/core/domain/services"
	"fleetdispatch/internal/core/ports"
	"fleetdispatch/internal/pkg/errs"
	"fleetdispatch/internal/pkg/metrics"
)

// DefaultSettleDelay is the pause taken inside the lock before a batch
// starts touching records.
const DefaultSettleDelay = 200 * time.Millisecond

// ExecuteBatchCommandHandler runs assignment batches.
//
// Only one batch, or single assignment, runs at a time: the handler
// try-acquires the execution lock and fails with errs.ErrConflict instead
// of waiting. Inside the lock, proposals are grouped by truck and every group
// is packed by services.LoadPlanner and committed in its own unit of work,
// so one truck's failure never leaves another truck half-updated. Groups
// committed before an unexpected error stay committed.
//
// Example:
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // another batch is running, retry later
//	}
type ExecuteBatchCommandHandler struct {
	uowFactory  UoWFactory
	auditLog    ports.AuditLog
	lock        ports.ExecutionLock
	planner     services.LoadPlanner
	synthesizer *services.RouteSynthesizer
	settleDelay time.Duration
	logger      *slog.Logger
	metrics     *metrics.Collector
}

// NewExecuteBatchCommandHandler creates the batch handler. A negative
// settleDelay is treated as zero and collector may be nil.
func NewExecuteBatchCommandHandler(
	uowFactory UoWFactory,
	auditLog ports.AuditLog,
	lock ports.ExecutionLock,
	synthesizer *services.RouteSynthesizer,
	settleDelay time.Duration,
	logger *slog.Logger,
	collector *metrics.Collector,
) ExecuteBatchCommandHandler {
	if settleDelay < 0 {
		settleDelay = 0
	}
	return ExecuteBatchCommandHandler{
		uowFactory:  uowFactory,
		auditLog:    auditLog,
		lock:        lock,
		planner:     services.NewLoadPlanner(),
		synthesizer: synthesizer,
		settleDelay: settleDelay,
		logger:      logger.With("component", "batch-executor"),
		metrics:     collector,
	}
}

// Handle executes the batch.
//
// Returns:
//   - BatchResult with per-parcel outcomes when the batch ran
//   - an error wrapping errs.ErrConflict when the lock is held
//   - ctx.Err() when cancelled during the settle delay, before any change
//   - any unexpected store error, after the lock is released
func (h ExecuteBatchCommandHandler) Handle(ctx context.Context, command ExecuteBatchCommand) (assignment.BatchResult, error) {
	if err := command.Validate(); err != nil {
		return assignment.BatchResult{}, err
	}

	release, err := h.lock.TryAcquire(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			h.metrics.BatchFinished(metrics.OutcomeConflict, 0)
		}
		return assignment.BatchResult{}, err
	}
	defer release()

	started := time.Now()
	if err := h.settle(ctx); err != nil {
		return assignment.BatchResult{}, err
	}

	result := assignment.BatchResult{BatchID: kernel.NewUUID()}
	for _, group := range assignment.GroupByTruck(command.Proposals()) {
		if err := h.executeGroup(ctx, &result, group, command.Source()); err != nil {
			h.logger.ErrorContext(ctx, "batch aborted",
				"batchId", result.BatchID.String(),
				"truckId", group.TruckID,
				"error", err,
			)
			h.metrics.BatchFinished(metrics.OutcomeError, time.Since(started))
			return result, fmt.Errorf("batch %s aborted at truck %s: %w", result.BatchID, group.TruckID, err)
		}
	}

	h.metrics.BatchFinished(metrics.OutcomeCommitted, time.Since(started))
	h.metrics.Assignments("batch", result.SuccessCount, result.FailureCount)
	h.logger.InfoContext(ctx, "batch executed",
		"batchId", result.BatchID.String(),
		"successCount", result.SuccessCount,
		"failureCount", result.FailureCount,
	)
	return result, nil
}

func (h ExecuteBatchCommandHandler) settle(ctx context.Context) error {
	if h.settleDelay == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(h.settleDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (h ExecuteBatchCommandHandler) executeGroup(
	ctx context.Context,
	result *assignment.BatchResult,
	group assignment.Group,
	source audit.Source,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	truckRepo := uow.TruckRepository()
	routeRepo := uow.RouteRepository()

	t, err := truckRepo.Get(ctx, group.TruckID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		result.FailureCount += len(group.Proposals)
		result.Errors = append(result.Errors,
			fmt.Sprintf("Truck %s not found. Skipped %d assignments.", group.TruckID, len(group.Proposals)))
		return nil
	}
	if err != nil {
		return err
	}

	var current *route.Route
	if routeID, routed := t.RouteID(); routed {
		current, err = routeRepo.Get(ctx, routeID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			message := fmt.Sprintf("Route %s of Truck %s not found. Skipped %d assignments.",
				routeID, t.ID(), len(group.Proposals))
			result.FailureCount += len(group.Proposals)
			result.Errors = append(result.Errors, message)
			return h.alert(ctx, audit.SL3, message, "", t.ID())
		}
		if err != nil {
			return err
		}
	}

	ids := make([]string, 0, len(group.Proposals))
	for _, p := range group.Proposals {
		ids = append(ids, p.ParcelID)
	}
	parcels, err := parcelRepo.GetMany(ctx, ids)
	if err != nil {
		return err
	}

	load, err := currentLoad(ctx, parcelRepo, t.ID())
	if err != nil {
		return err
	}

	plan := h.planner.Plan(t, current, load, group.Proposals, parcels)
	result.FailureCount += len(plan.Rejections)
	for _, rejection := range plan.Rejections {
		result.Errors = append(result.Errors, rejection.Message)
		if err := h.alertRejection(ctx, t, rejection); err != nil {
			return err
		}
	}

	if len(plan.Accepted) == 0 {
		return nil
	}

	commit, err := h.commitPlan(ctx, uow, t, current, plan)
	if errors.Is(err, services.ErrRouteNotDynamic) {
		message := fmt.Sprintf("Cannot synthesize a route for Truck %s: %v. Skipped %d assignments.",
			t.ID(), err, len(plan.Accepted))
		result.FailureCount += len(plan.Accepted)
		result.Errors = append(result.Errors, message)
		return h.alert(ctx, audit.SL3, message, "", t.ID())
	}
	if err != nil {
		return err
	}
	result.SuccessCount += len(commit.ParcelIDs)
	result.Commits = append(result.Commits, commit)

	return h.recordCommit(ctx, result.BatchID, source, commit)
}

func (h ExecuteBatchCommandHandler) commitPlan(
	ctx context.Context,
	uow UoW,
	t *truck.Truck,
	current *route.Route,
	plan services.LoadPlan,
) (assignment.TruckCommit, error) {
	parcelRepo := uow.ParcelRepository()
	commit := assignment.TruckCommit{TruckID: t.ID(), ParcelIDs: plan.AcceptedIDs()}

	destinations := make([]kernel.Location, 0, len(plan.Accepted))
	for _, p := range plan.Accepted {
		if err := p.Assign(t.ID()); err != nil {
			return commit, err
		}
		if err := parcelRepo.Update(ctx, p); err != nil {
			return commit, err
		}
		destinations = append(destinations, p.Destination())
	}

	if current != nil {
		commit.RouteID = current.ID()
	} else {
		synthesized, created, err := h.synthesizeRoute(ctx, uow.RouteRepository(), destinations)
		if err != nil {
			return commit, err
		}
		if err := t.AttachRoute(synthesized.ID()); err != nil {
			return commit, err
		}
		if err := uow.TruckRepository().Update(ctx, t); err != nil {
			return commit, err
		}
		commit.RouteID = synthesized.ID()
		commit.RouteCreated = created
	}

	if err := uow.Commit(ctx); err != nil {
		return commit, err
	}
	return commit, nil
}

func (h ExecuteBatchCommandHandler) synthesizeRoute(
	ctx context.Context,
	routeRepo ports.RouteRepository,
	destinations []kernel.Location,
) (*route.Route, bool, error) {
	routeID, err := h.synthesizer.RouteID(destinations)
	if err != nil {
		return nil, false, err
	}

	existing, err := routeRepo.Get(ctx, routeID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	synthesized, created, err := h.synthesizer.Synthesize(existing, destinations)
	if err != nil {
		return nil, false, err
	}

	if created {
		err = routeRepo.Add(ctx, synthesized)
	} else {
		err = routeRepo.Update(ctx, synthesized)
	}
	if err != nil {
		return nil, false, err
	}
	return synthesized, created, nil
}

func (h ExecuteBatchCommandHandler) recordCommit(
	ctx context.Context,
	batchID kernel.UUID,
	source audit.Source,
	commit assignment.TruckCommit,
) error {
	now := time.Now().UTC()
	workflow := audit.NewWorkflow(audit.BatchAssign, source, map[string]string{
		"truckID":     commit.TruckID,
		"parcelCount": strconv.Itoa(len(commit.ParcelIDs)),
		"routeID":     commit.RouteID,
	}, now)
	workflow.BatchID = batchID.String()
	workflow.Pass("AtomicCommit", fmt.Sprintf("Assigned %d parcels.", len(commit.ParcelIDs)), now)
	workflow.Complete(now)

	return h.auditLog.AppendWorkflow(ctx, *workflow)
}

func (h ExecuteBatchCommandHandler) alertRejection(ctx context.Context, t *truck.Truck, rejection services.Rejection) error {
	parcelID := rejection.Proposal.ParcelID
	switch rejection.Reason {
	case services.OverCapacity:
		return h.alert(ctx, audit.SL2,
			fmt.Sprintf("Optimization Skipped: Truck %s full. Parcel %s left behind.", t.ID(), parcelID),
			parcelID, t.ID())
	case services.AlreadyAssigned, services.OffRoute:
		return h.alert(ctx, audit.SL1, rejection.Message, parcelID, t.ID())
	case services.ParcelMissing, services.DuplicateInBatch:
		return nil
	}
	return nil
}

func (h ExecuteBatchCommandHandler) alert(ctx context.Context, severity audit.Severity, message, parcelID, truckID string) error {
	h.metrics.AlertRaised(string(severity))
	return h.auditLog.AppendAlert(ctx, audit.NewAlert(severity, message, parcelID, truckID, time.Now().UTC()))
}

func currentLoad(ctx context.Context, repo ports.ParcelRepository, truckID string) (float64, error) {
	assigned, err := repo.ListAssignedTo(ctx, truckID)
	if err != nil {
		return 0, err
	}
	return sumWeights(assigned), nil
}

func sumWeights(parcels []*parcel.Parcel) float64 {
	total := 0.0
	for _, p := range parcels {
		total += p.Weight()
	}
	return total
}
