package jobs

import (
	"context"

	"crewvar-backend/internal/logger"
)

// PurgeDeclinedRequests deletes declined connection requests older than the
// retention window. Declined requests carry no lifecycle weight, the pair
// can resubmit at any time, so old ones are just noise.
func (jr *JobRunner) PurgeDeclinedRequests() {
	jr.runWithRecovery("PurgeDeclinedRequests", func() {
		ctx := context.Background()
		retentionDays := int32(jr.config.Scheduler.DeclinedRetentionDays)

		deleted, err := jr.store.ConnectionRepository.PurgeDeclinedBefore(ctx, retentionDays)
		if err != nil {
			logger.Error("Failed to purge declined requests", "error", err)
			return
		}

		logger.Info("Purged declined connection requests", "deleted", deleted, "retention_days", retentionDays)
	})
}
