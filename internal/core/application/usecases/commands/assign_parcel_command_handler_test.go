package commands_test

import (
	"testing"

	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/core/domain/model/parcel"
	"fleetdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assignCmd(t *testing.T, parcelID, truckID string) commands.AssignParcelCommand {
	t.Helper()
	cmd, err := commands.NewAssignParcelCommand(parcelID, truckID)
	require.NoError(t, err)
	return cmd
}

func TestAssignParcelCommandHandler_Commits(t *testing.T) {
	f := newFleet()
	f.addRoute(t, "R-1", depotName, "Madurai")
	f.addTruck(t, "T-1", 100, "R-1")
	f.addParcel(t, "P-1", "Madurai", 40, "")

	handler := commands.NewAssignParcelCommandHandler(f.uows, f.audit, f.lock, discard, nil)
	result, err := handler.Handle(t.Context(), assignCmd(t, "P-1", "T-1"))

	require.NoError(t, err)
	assert.Equal(t, "R-1", result.RouteID)
	assert.Equal(t, "Parcel P-1 assigned to Truck T-1", result.Message)
	assert.True(t, f.parcel(t, "P-1").IsAssignedTo("T-1"))

	workflows, err := f.audit.ListWorkflows(t.Context(), 1)
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	w := workflows[0]
	assert.Equal(t, result.WorkflowID, w.ID)
	assert.Equal(t, audit.AssignParcel, w.Type)
	assert.Equal(t, audit.Completed, w.Status)

	steps := make([]string, 0, len(w.Steps))
	for _, step := range w.Steps {
		steps = append(steps, step.Name)
		assert.Equal(t, audit.Succeeded, step.Status)
	}
	assert.Equal(t, []string{
		commands.StepValidateExistence,
		commands.StepCheckUniqueness,
		commands.StepCheckDestination,
		commands.StepCheckCapacity,
		commands.StepCommitAssignment,
	}, steps)
}

func TestAssignParcelCommandHandler_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		seed     func(t *testing.T, f *fleet)
		step     string
		reason   string
		severity audit.Severity
		kind     error
	}{
		{
			name:     "unknown parcel",
			seed:     func(t *testing.T, f *fleet) { f.addTruck(t, "T-1", 100, "") },
			step:     commands.StepValidateExistence,
			reason:   "Parcel not found",
			severity: audit.SL3,
			kind:     errs.ErrObjectNotFound,
		},
		{
			name:     "unknown truck",
			seed:     func(t *testing.T, f *fleet) { f.addParcel(t, "P-1", "Madurai", 10, "") },
			step:     commands.StepValidateExistence,
			reason:   "Truck not found",
			severity: audit.SL3,
			kind:     errs.ErrObjectNotFound,
		},
		{
			name: "already assigned",
			seed: func(t *testing.T, f *fleet) {
				f.addTruck(t, "T-1", 100, "")
				f.addParcel(t, "P-1", "Madurai", 10, "T-2")
			},
			step:     commands.StepCheckUniqueness,
			reason:   "Parcel already assigned to truck T-2",
			severity: audit.SL1,
			kind:     parcel.ErrAlreadyAssigned,
		},
		{
			name: "truck without route",
			seed: func(t *testing.T, f *fleet) {
				f.addTruck(t, "T-1", 100, "")
				f.addParcel(t, "P-1", "Madurai", 10, "")
			},
			step:     commands.StepCheckDestination,
			reason:   "Truck has no valid route assigned",
			severity: audit.SL3,
			kind:     commands.ErrStructuralInvalid,
		},
		{
			name: "route missing from store",
			seed: func(t *testing.T, f *fleet) {
				f.addTruck(t, "T-1", 100, "R-GONE")
				f.addParcel(t, "P-1", "Madurai", 10, "")
			},
			step:     commands.StepCheckDestination,
			reason:   "Truck has no valid route assigned",
			severity: audit.SL3,
			kind:     commands.ErrStructuralInvalid,
		},
		{
			name: "destination off route",
			seed: func(t *testing.T, f *fleet) {
				f.addRoute(t, "R-1", depotName, "Salem")
				f.addTruck(t, "T-1", 100, "R-1")
				f.addParcel(t, "P-1", "Madurai", 10, "")
			},
			step:     commands.StepCheckDestination,
			reason:   "Truck's route does not stop at Madurai",
			severity: audit.SL1,
			kind:     commands.ErrDestinationMismatch,
		},
		{
			name: "over capacity",
			seed: func(t *testing.T, f *fleet) {
				f.addRoute(t, "R-1", depotName, "Madurai")
				f.addTruck(t, "T-1", 100, "R-1")
				f.addParcel(t, "P-OLD", "Madurai", 90, "T-1")
				f.addParcel(t, "P-1", "Madurai", 11, "")
			},
			step:     commands.StepCheckCapacity,
			reason:   "Truck capacity exceeded",
			severity: audit.SL2,
			kind:     commands.ErrCapacityExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFleet()
			tt.seed(t, f)

			handler := commands.NewAssignParcelCommandHandler(f.uows, f.audit, f.lock, discard, nil)
			_, err := handler.Handle(t.Context(), assignCmd(t, "P-1", "T-1"))

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var rejected *commands.AssignmentRejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, tt.step, rejected.Step)
			assert.Equal(t, tt.reason, rejected.Reason)
			assert.Equal(t, tt.severity, rejected.Severity)

			alerts, err := f.audit.ListAlerts(t.Context(), 0)
			require.NoError(t, err)
			require.Len(t, alerts, 1)
			assert.Equal(t, "Assignment failed: "+tt.reason, alerts[0].Message)
			assert.Equal(t, tt.severity, alerts[0].Severity)

			workflows, err := f.audit.ListWorkflows(t.Context(), 0)
			require.NoError(t, err)
			require.Len(t, workflows, 1)
			assert.Equal(t, rejected.WorkflowID, workflows[0].ID)
			assert.Equal(t, audit.Failed, workflows[0].Status)
			failed, ok := workflows[0].FailedStep()
			require.True(t, ok)
			assert.Equal(t, tt.step, failed.Name)
		})
	}
}

func TestAssignParcelCommandHandler_SharesExecutionLock(t *testing.T) {
	f := newFleet()
	f.addRoute(t, "R-1", depotName, "Madurai")
	f.addTruck(t, "T-1", 100, "R-1")
	f.addParcel(t, "P-1", "Madurai", 10, "")

	release, err := f.lock.TryAcquire(t.Context())
	require.NoError(t, err)

	handler := commands.NewAssignParcelCommandHandler(f.uows, f.audit, f.lock, discard, nil)
	_, err = handler.Handle(t.Context(), assignCmd(t, "P-1", "T-1"))
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.False(t, f.parcel(t, "P-1").IsAssigned())

	release()
	_, err = handler.Handle(t.Context(), assignCmd(t, "P-1", "T-1"))
	assert.NoError(t, err)
}

func TestAssignParcelCommandHandler_ReleasesLockOnRejection(t *testing.T) {
	f := newFleet()
	releases := 0
	lock := &MockExecutionLock{}
	lock.On("TryAcquire", mock.Anything).Return(func() { releases++ }, nil)

	handler := commands.NewAssignParcelCommandHandler(f.uows, f.audit, lock, discard, nil)
	_, err := handler.Handle(t.Context(), assignCmd(t, "P-404", "T-404"))

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, 1, releases)
}

func TestNewAssignParcelCommand(t *testing.T) {
	cmd, err := commands.NewAssignParcelCommand(" P-1 ", "T-1")
	require.NoError(t, err)
	assert.Equal(t, "P-1", cmd.ParcelID())

	_, err = commands.NewAssignParcelCommand("", " ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
