package jobs

import (
	"context"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/logger"
)

// SyncExternalCalendars reconciles every asset that has a feed URL attached.
// One bad feed must not stop the rest, so per-asset failures are logged and
// the loop continues.
func (jr *JobRunner) SyncExternalCalendars() {
	jr.runWithRecovery("SyncExternalCalendars", func() {
		ctx := context.Background()

		assets, err := jr.store.Assets.ListWithFeed(ctx)
		if err != nil {
			logger.Error("Failed to list assets with feeds", "error", err)
			return
		}

		var synced, failed int
		for _, asset := range assets {
			report, err := jr.services.Sync.SyncAsset(ctx, asset.ID)
			if err != nil {
				failed++
				logger.Error("Feed sync failed", "asset_id", asset.ID,
					"code", apperrors.CodeOf(err), "error", err)
				continue
			}
			synced++
			if report.ExternalConflicts > 0 {
				logger.Warn("Feed events conflict with manual reservations",
					"asset_id", asset.ID, "external_conflicts", report.ExternalConflicts)
			}
		}

		logger.Info("External calendar sweep finished", "synced", synced, "failed", failed)
	})
}
