// Package onboarding holds the requirement registry and the pure gate
// derivations over an OnboardingStatus record. Nothing here touches storage;
// gated routes re-evaluate these on every request.
package onboarding

import "crewvar-backend/internal/domain"

// CompletedFlagCount counts the satisfied requirement flags.
func CompletedFlagCount(s *domain.OnboardingStatus) int32 {
	var n int32
	for _, req := range registry {
		if flagFor(req.ID, s) {
			n++
		}
	}
	return n
}

// Progress recomputes the completion percentage from the six flags,
// rounded to the nearest integer. This is the only writer of the
// onboarding_progress cache; caller-supplied values are discarded.
func Progress(s *domain.OnboardingStatus) int32 {
	return (100*CompletedFlagCount(s) + RequirementCount/2) / RequirementCount
}

// IsComplete requires the explicit completion flag AND all six requirement
// flags. A record with has_completed_onboarding=true but a false flag (stale
// or partially migrated data) is not complete.
func IsComplete(s *domain.OnboardingStatus) bool {
	return s.HasCompletedOnboarding && CompletedFlagCount(s) == RequirementCount
}

// IsRequired reports whether the user must still be routed through the
// onboarding flow.
func IsRequired(s *domain.OnboardingStatus) bool {
	return !IsComplete(s)
}

// Missing returns the display names of unsatisfied requirements in ascending
// priority order, for use as the actionable checklist.
func Missing(s *domain.OnboardingStatus) []string {
	var names []string
	for _, req := range registry {
		if !flagFor(req.ID, s) {
			names = append(names, req.Name)
		}
	}
	return names
}
