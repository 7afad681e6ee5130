package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	autoOptimizationJob *AutoOptimizationJob
}

// NewJobManager creates a job manager. A nil job is skipped, which is how
// automation is switched off.
func NewJobManager(autoOptimizationJob *AutoOptimizationJob) *JobManager {
	return &JobManager{autoOptimizationJob: autoOptimizationJob}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if jm.autoOptimizationJob == nil {
		return nil
	}
	if err := jm.autoOptimizationJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto optimization job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.autoOptimizationJob != nil {
		jm.autoOptimizationJob.Stop()
	}
}
