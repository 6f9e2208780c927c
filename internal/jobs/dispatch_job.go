package jobs

import (
	"context"
	"errors"
	"log/slog"

	"nexus/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchJob runs the assignment cycle on a schedule, matching pending
// shipments with idle drivers. An empty backlog or an empty fleet is a quiet
// cycle, not an error.
type DispatchJob struct {
	handler  commands.AssignShipmentsCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewDispatchJob creates a scheduled dispatch job. The schedule is a cron
// expression with a seconds field, for example "*/5 * * * * *" for every five
// seconds.
func NewDispatchJob(
	handler commands.AssignShipmentsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *DispatchJob {
	return &DispatchJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "dispatch_job"),
	}
}

// Start begins running the dispatch cycle on the configured schedule.
func (j *DispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewAssignShipmentsCommand()

		result, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			// No work to do is an expected business scenario
			if !errors.Is(handleErr, commands.ErrNoPendingShipments) &&
				!errors.Is(handleErr, commands.ErrNoIdleDrivers) {
				j.logger.ErrorContext(ctx, "Dispatch cycle failed", "error", handleErr)
			}
			return
		}

		if result.AssignedShipments > 0 {
			j.logger.InfoContext(ctx, "Dispatch cycle completed",
				"assignedShipments", result.AssignedShipments,
				"busyDrivers", result.BusyDrivers)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the dispatch job.
func (j *DispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}
