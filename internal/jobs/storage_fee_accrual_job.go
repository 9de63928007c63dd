package jobs

import (
	"context"
	"log/slog"

	"cargolink/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StorageFeeAccrualJob runs the daily warehouse sweep for storage debt.
// Parcels past their free storage window surface here instead of waiting
// for the next quote attempt to discover the debt.
type StorageFeeAccrualJob struct {
	handler commands.FlagStorageDebtsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStorageFeeAccrualJob creates the daily storage debt sweep job.
func NewStorageFeeAccrualJob(handler commands.FlagStorageDebtsCommandHandler, logger *slog.Logger) *StorageFeeAccrualJob {
	return &StorageFeeAccrualJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "storage_fee_accrual_job"),
	}
}

// Start schedules the sweep to run daily at 03:00.
func (j *StorageFeeAccrualJob) Start() error {
	_, err := j.cron.AddFunc("0 0 3 * * *", func() {
		ctx := context.Background()
		cmd := commands.NewFlagStorageDebtsCommand()

		notices, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Storage fee accrual sweep failed", "error", err)
			return
		}

		for _, notice := range notices {
			j.logger.InfoContext(ctx, "Parcel carries outstanding storage debt",
				"parcel_id", notice.ParcelID.String(),
				"customer_id", notice.CustomerID.String(),
				"tracking_code", notice.TrackingCode,
				"amount", notice.Amount,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Storage fee accrual job started (running daily at 03:00)")
	return nil
}

// Stop stops the storage fee accrual job.
func (j *StorageFeeAccrualJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Storage fee accrual job stopped")
}
