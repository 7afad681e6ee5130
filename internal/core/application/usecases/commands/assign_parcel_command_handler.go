package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/core/domain/model/kernel"
	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/core/domain/model/truck"
	"fleetdispatch/internal/core/ports"
	"fleetdispatch/internal/pkg/errs"
	"fleetdispatch/internal/pkg/metrics"
)

// Names of the recorded assignment steps.
const (
	StepValidateExistence = "validateExistence"
	StepCheckUniqueness   = "checkUniqueness"
	StepCheckDestination  = "checkDestination"
	StepCheckCapacity     = "checkCapacity"
	StepCommitAssignment  = "commitAssignment"
)

// AssignmentResult describes a committed single assignment.
type AssignmentResult struct {
	WorkflowID kernel.UUID
	ParcelID   string
	TruckID    string
	RouteID    string
	Message    string
}

// AssignParcelCommandHandler assigns a single parcel through a fixed
// sequence of checks. Each check is recorded as a workflow step; the first
// failing one ends the workflow, raises an alert and returns an
// *AssignmentRejectedError.
//
// The handler shares the execution lock with batch execution, so a single
// assignment never interleaves with a batch.
type AssignParcelCommandHandler struct {
	uowFactory UoWFactory
	auditLog   ports.AuditLog
	lock       ports.ExecutionLock
	logger     *slog.Logger
	metrics    *metrics.Collector
}

// NewAssignParcelCommandHandler creates the handler. collector may be nil.
func NewAssignParcelCommandHandler(
	uowFactory UoWFactory,
	auditLog ports.AuditLog,
	lock ports.ExecutionLock,
	logger *slog.Logger,
	collector *metrics.Collector,
) AssignParcelCommandHandler {
	return AssignParcelCommandHandler{
		uowFactory: uowFactory,
		auditLog:   auditLog,
		lock:       lock,
		logger:     logger.With("component", "single-assignment"),
		metrics:    collector,
	}
}

// Handle runs validateExistence, checkUniqueness, checkDestination,
// checkCapacity and commitAssignment in that order.
//
// Returns:
//   - AssignmentResult on success
//   - an error wrapping errs.ErrConflict when a batch holds the lock
//   - *AssignmentRejectedError when a check fails
//   - any unexpected store error
func (h AssignParcelCommandHandler) Handle(ctx context.Context, command AssignParcelCommand) (AssignmentResult, error) {
	if err := command.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	release, err := h.lock.TryAcquire(ctx)
	if err != nil {
		return AssignmentResult{}, err
	}
	defer release()

	workflow := audit.NewWorkflow(audit.AssignParcel, audit.Manual, map[string]string{
		"parcelID": command.ParcelID(),
		"truckID":  command.TruckID(),
	}, time.Now().UTC())

	result, rejection, err := h.run(ctx, workflow, command)
	if err != nil {
		h.logger.ErrorContext(ctx, "single assignment failed",
			"parcelId", command.ParcelID(),
			"truckId", command.TruckID(),
			"error", err,
		)
		return AssignmentResult{}, err
	}

	if rejection != nil {
		rejection.WorkflowID = workflow.ID
		h.metrics.Assignments("single", 0, 1)
		h.metrics.AlertRaised(string(rejection.Severity))
		alert := audit.NewAlert(rejection.Severity, "Assignment failed: "+rejection.Reason,
			command.ParcelID(), command.TruckID(), time.Now().UTC())
		if err := errors.Join(
			h.auditLog.AppendWorkflow(ctx, *workflow),
			h.auditLog.AppendAlert(ctx, alert),
		); err != nil {
			return AssignmentResult{}, err
		}
		return AssignmentResult{}, rejection
	}

	h.metrics.Assignments("single", 1, 0)
	if err := h.auditLog.AppendWorkflow(ctx, *workflow); err != nil {
		return AssignmentResult{}, err
	}
	result.WorkflowID = workflow.ID
	return result, nil
}

func (h AssignParcelCommandHandler) run(
	ctx context.Context,
	workflow *audit.Workflow,
	command AssignParcelCommand,
) (AssignmentResult, *AssignmentRejectedError, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignmentResult{}, nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	truckRepo := uow.TruckRepository()

	reject := func(step, reason string, severity audit.Severity, kind error) *AssignmentRejectedError {
		workflow.Reject(step, reason, time.Now().UTC())
		return &AssignmentRejectedError{Step: step, Reason: reason, Severity: severity, Kind: kind}
	}

	// validateExistence
	p, err := parcelRepo.Get(ctx, command.ParcelID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AssignmentResult{}, reject(StepValidateExistence, "Parcel not found", audit.SL3, errs.ErrObjectNotFound), nil
	}
	if err != nil {
		return AssignmentResult{}, nil, err
	}
	t, err := truckRepo.Get(ctx, command.TruckID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AssignmentResult{}, reject(StepValidateExistence, "Truck not found", audit.SL3, errs.ErrObjectNotFound), nil
	}
	if err != nil {
		return AssignmentResult{}, nil, err
	}
	workflow.Pass(StepValidateExistence, "", time.Now().UTC())

	// checkUniqueness
	if holder, assigned := p.AssignedTruck(); assigned {
		return AssignmentResult{}, reject(StepCheckUniqueness,
			"Parcel already assigned to truck "+holder, audit.SL1, parcel.ErrAlreadyAssigned), nil
	}
	workflow.Pass(StepCheckUniqueness, "", time.Now().UTC())

	// checkDestination
	routeID, rejection, err := h.checkDestination(ctx, uow.RouteRepository(), p, t, reject)
	if err != nil || rejection != nil {
		return AssignmentResult{}, rejection, err
	}
	workflow.Pass(StepCheckDestination, "", time.Now().UTC())

	// checkCapacity
	load, err := currentLoad(ctx, parcelRepo, t.ID())
	if err != nil {
		return AssignmentResult{}, nil, err
	}
	if !t.Fits(load, p.Weight()) {
		return AssignmentResult{}, reject(StepCheckCapacity, "Truck capacity exceeded", audit.SL2, ErrCapacityExceeded), nil
	}
	workflow.Pass(StepCheckCapacity, "", time.Now().UTC())

	// commitAssignment
	if err := p.Assign(t.ID()); err != nil {
		return AssignmentResult{}, nil, err
	}
	if err := parcelRepo.Update(ctx, p); err != nil {
		return AssignmentResult{}, nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return AssignmentResult{}, nil, err
	}
	now := time.Now().UTC()
	workflow.Pass(StepCommitAssignment, "", now)
	workflow.Complete(now)

	return AssignmentResult{
		ParcelID: p.ID(),
		TruckID:  t.ID(),
		RouteID:  routeID,
		Message:  fmt.Sprintf("Parcel %s assigned to Truck %s", p.ID(), t.ID()),
	}, nil, nil
}

func (h AssignParcelCommandHandler) checkDestination(
	ctx context.Context,
	routeRepo ports.RouteRepository,
	p *parcel.Parcel,
	t *truck.Truck,
	reject func(step, reason string, severity audit.Severity, kind error) *AssignmentRejectedError,
) (string, *AssignmentRejectedError, error) {
	const noRoute = "Truck has no valid route assigned"

	routeID, routed := t.RouteID()
	if !routed {
		return "", reject(StepCheckDestination, noRoute, audit.SL3, ErrStructuralInvalid), nil
	}
	r, err := routeRepo.Get(ctx, routeID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return "", reject(StepCheckDestination, noRoute, audit.SL3, ErrStructuralInvalid), nil
	}
	if err != nil {
		return "", nil, err
	}
	if !r.Includes(p.Destination()) {
		return "", reject(StepCheckDestination,
			fmt.Sprintf("Truck's route does not stop at %s", p.Destination()), audit.SL1, ErrDestinationMismatch), nil
	}
	return routeID, nil, nil
}
