package jobs

import (
	"context"

	"crewvar-backend/internal/logger"
	"crewvar-backend/internal/onboarding"
)

// SendOnboardingReminders emails users whose profile has been sitting
// incomplete for longer than the configured window.
func (jr *JobRunner) SendOnboardingReminders() {
	jr.runWithRecovery("SendOnboardingReminders", func() {
		ctx := context.Background()
		staleDays := int32(jr.config.Scheduler.OnboardingReminderAfterDays)

		statuses, err := jr.store.OnboardingRepository.ListIncompleteBefore(ctx, staleDays)
		if err != nil {
			logger.Error("Failed to list stale incomplete profiles", "error", err)
			return
		}

		count := 0
		for _, status := range statuses {
			missing := onboarding.Missing(&status)
			if len(missing) == 0 {
				// All six flags set but never finalized; nothing actionable to list.
				continue
			}

			user, err := jr.store.UserRepository.GetByID(ctx, status.UserID)
			if err != nil {
				logger.Error("Failed to load user for reminder", "user_id", status.UserID, "error", err)
				continue
			}

			if err := jr.services.Email.SendOnboardingReminder(ctx, user.Email, user.DisplayName, missing); err != nil {
				logger.Error("Failed to send onboarding reminder",
					"user_id", status.UserID,
					"email", user.Email,
					"error", err)
				continue
			}

			count++
			logger.Debug("Sent onboarding reminder", "user_id", status.UserID, "missing", len(missing))
		}

		logger.Info("Onboarding reminders sent", "count", count, "stale_days", staleDays)
	})
}
