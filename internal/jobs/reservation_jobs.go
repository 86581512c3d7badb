package jobs

import (
	"context"
	"time"

	"rentdesk/internal/logger"
)

// MarkDeliveredReturns closes out reservations whose rental period has ended
// but are still marked as checked out.
func (jr *JobRunner) MarkDeliveredReturns() {
	jr.runWithRecovery("MarkDeliveredReturns", func() {
		ctx := context.Background()

		cutoff := time.Now().UTC().Truncate(24 * time.Hour)
		ids, err := jr.store.Reservations.MarkDeliveredPastEnd(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to mark delivered returns", "error", err)
			return
		}

		logger.Info("Marked reservations as delivered", "count", len(ids))
		for _, id := range ids {
			logger.Debug("Marked reservation as delivered", "reservation_id", id)
		}
	})
}

// SendReturnReminders emails customers whose reservation ends tomorrow.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		tomorrow := time.Now().UTC().AddDate(0, 0, 1)
		ending, err := jr.store.Reservations.ListEndingOn(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to list reservations ending tomorrow", "error", err)
			return
		}

		sent := 0
		for _, res := range ending {
			if res.CustomerID == nil {
				continue
			}
			customer, err := jr.store.Customers.GetByID(ctx, *res.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for reminder",
					"reservation", res.Code, "customer_id", *res.CustomerID, "error", err)
				continue
			}
			asset, err := jr.store.Assets.GetByID(ctx, res.AssetID)
			if err != nil {
				logger.Error("Failed to load asset for reminder",
					"reservation", res.Code, "asset_id", res.AssetID, "error", err)
				continue
			}

			if err := jr.services.Email.SendReturnReminder(ctx, customer.Email, customer.Name, asset.Name, &res); err != nil {
				logger.Error("Failed to send return reminder", "reservation", res.Code, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent return reminders", "count", sent, "ending_tomorrow", len(ending))
	})
}
