package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fleetdispatch/internal/core/application/usecases/commands"
	"fleetdispatch/internal/core/application/usecases/queries"
	"fleetdispatch/internal/core/domain/model/assignment"
	"fleetdispatch/internal/core/domain/model/audit"
	"fleetdispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultAutoOptimizeSchedule runs the optimizer once a minute.
const DefaultAutoOptimizeSchedule = "0 * * * * *"

// AutoOptimizationJob turns ready optimization proposals into assignment
// batches on a schedule.
type AutoOptimizationJob struct {
	proposals queries.GetOptimizationProposalsQueryHandler
	executor  commands.ExecuteBatchCommandHandler
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewAutoOptimizationJob creates the job. schedule is a six-field cron
// expression with seconds; an empty one means DefaultAutoOptimizeSchedule.
func NewAutoOptimizationJob(
	proposals queries.GetOptimizationProposalsQueryHandler,
	executor commands.ExecuteBatchCommandHandler,
	schedule string,
	logger *slog.Logger,
) *AutoOptimizationJob {
	if schedule == "" {
		schedule = DefaultAutoOptimizeSchedule
	}
	return &AutoOptimizationJob{
		proposals: proposals,
		executor:  executor,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "auto_optimization_job"),
	}
}

// Start schedules the job.
func (j *AutoOptimizationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			// A batch submitted by an operator is already running.
			if errors.Is(err, errs.ErrConflict) {
				j.logger.DebugContext(ctx, "Auto optimization skipped, execution lock busy")
				return
			}
			j.logger.ErrorContext(ctx, "Auto optimization job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto optimization job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running batch to finish.
func (j *AutoOptimizationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Auto optimization job stopped")
}

// RunOnce executes every ready proposal as one batch at MEDIUM priority.
// It returns a zero result without touching the lock when nothing is ready.
func (j *AutoOptimizationJob) RunOnce(ctx context.Context) (assignment.BatchResult, error) {
	report, err := j.proposals.Handle(ctx, queries.NewFleetQuery())
	if err != nil {
		return assignment.BatchResult{}, err
	}

	var batch []assignment.Proposal
	for _, ready := range report.Ready() {
		for _, parcelID := range ready.ParcelIDs {
			batch = append(batch, assignment.Proposal{
				ParcelID: parcelID,
				TruckID:  ready.TruckID,
				Priority: assignment.Medium,
			})
		}
	}
	if len(batch) == 0 {
		return assignment.BatchResult{}, nil
	}

	cmd, err := commands.NewExecuteBatchCommand(batch, audit.Automation)
	if err != nil {
		return assignment.BatchResult{}, err
	}
	result, err := j.executor.Handle(ctx, cmd)
	if err != nil {
		return assignment.BatchResult{}, err
	}

	j.logger.InfoContext(ctx, "Auto optimization batch executed",
		"batchId", result.BatchID.String(),
		"successCount", result.SuccessCount,
		"failureCount", result.FailureCount,
	)
	return result, nil
}
