package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ShipperAssignmentJob manages the scheduled assignment of shippers to
// shipped orders. Runs every second to match orders awaiting pickup with
// free shippers on the roster.
type ShipperAssignmentJob struct {
	handler commands.AutoAssignShipperCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewShipperAssignmentJob creates a new job for assigning shippers.
// Uses AutoAssignShipperCommandHandler to process one assignment round per tick.
func NewShipperAssignmentJob(handler commands.AutoAssignShipperCommandHandler, logger *slog.Logger) *ShipperAssignmentJob {
	return &ShipperAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "shipper_assignment_job"),
	}
}

// Start begins the shipper assignment job to run every second.
func (j *ShipperAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAutoAssignShipperCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Only log errors that are not expected business scenarios
			if !errors.Is(err, commands.ErrNoShippedOrderFound) && !errors.Is(err, commands.ErrNoFreeShippersFound) {
				j.logger.ErrorContext(ctx, "Shipper assignment job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shipper assignment job started (running every second)")
	return nil
}

// Stop stops the shipper assignment job.
func (j *ShipperAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shipper assignment job stopped")
}
