package onboarding

import (
	"testing"

	"crewvar-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func allTrueStatus() *domain.OnboardingStatus {
	return &domain.OnboardingStatus{
		IsEmailVerified:        true,
		HasProfilePhoto:        true,
		HasDisplayName:         true,
		HasDepartment:          true,
		HasRole:                true,
		HasShipAssignment:      true,
		HasCompletedOnboarding: true,
	}
}

func TestProgress(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, int32(0), Progress(&domain.OnboardingStatus{}))
	})

	t.Run("TwoOfSixRoundsTo33", func(t *testing.T) {
		s := &domain.OnboardingStatus{IsEmailVerified: true, HasDisplayName: true}
		assert.Equal(t, int32(33), Progress(s))
	})

	t.Run("OneOfSixRoundsTo17", func(t *testing.T) {
		s := &domain.OnboardingStatus{HasRole: true}
		assert.Equal(t, int32(17), Progress(s))
	})

	t.Run("FiveOfSixRoundsTo83", func(t *testing.T) {
		s := allTrueStatus()
		s.HasProfilePhoto = false
		assert.Equal(t, int32(83), Progress(s))
	})

	t.Run("AllSix", func(t *testing.T) {
		assert.Equal(t, int32(100), Progress(allTrueStatus()))
	})
}

func TestIsComplete(t *testing.T) {
	t.Run("CompleteFlagAndAllSix", func(t *testing.T) {
		assert.True(t, IsComplete(allTrueStatus()))
		assert.False(t, IsRequired(allTrueStatus()))
	})

	t.Run("AllSixWithoutExplicitFlag", func(t *testing.T) {
		s := allTrueStatus()
		s.HasCompletedOnboarding = false
		assert.False(t, IsComplete(s))
	})

	t.Run("ExplicitFlagWithStaleFalseFlag", func(t *testing.T) {
		// The fast-track override can produce this anomaly; the conjunctive
		// rule still reports incomplete.
		for _, flip := range []func(*domain.OnboardingStatus){
			func(s *domain.OnboardingStatus) { s.IsEmailVerified = false },
			func(s *domain.OnboardingStatus) { s.HasProfilePhoto = false },
			func(s *domain.OnboardingStatus) { s.HasDisplayName = false },
			func(s *domain.OnboardingStatus) { s.HasDepartment = false },
			func(s *domain.OnboardingStatus) { s.HasRole = false },
			func(s *domain.OnboardingStatus) { s.HasShipAssignment = false },
		} {
			s := allTrueStatus()
			flip(s)
			assert.False(t, IsComplete(s))
			assert.True(t, IsRequired(s))
		}
	})
}

func TestMissing(t *testing.T) {
	t.Run("PriorityOrder", func(t *testing.T) {
		s := &domain.OnboardingStatus{IsEmailVerified: true, HasDisplayName: true}
		assert.Equal(t, []string{"Profile Photo", "Department", "Role", "Current Ship"}, Missing(s))
	})

	t.Run("NothingMissingWhenAllTrue", func(t *testing.T) {
		assert.Empty(t, Missing(allTrueStatus()))
	})

	t.Run("EverythingMissingWhenFresh", func(t *testing.T) {
		assert.Equal(t, []string{
			"Email Verification", "Profile Photo", "Display Name",
			"Department", "Role", "Current Ship",
		}, Missing(&domain.OnboardingStatus{}))
	})

	t.Run("NeverContainsSatisfiedRequirement", func(t *testing.T) {
		s := &domain.OnboardingStatus{HasProfilePhoto: true}
		for _, name := range Missing(s) {
			assert.NotEqual(t, "Profile Photo", name)
		}
	})
}

func TestRequirements(t *testing.T) {
	reqs := Requirements()
	assert.Len(t, reqs, 6)
	for i, r := range reqs {
		assert.Equal(t, int32(i+1), r.Priority)
		assert.True(t, r.IsRequired)
	}
}

func TestRequirementCountTracksRegistry(t *testing.T) {
	// RequirementCount is the progress divisor; it must follow the registry.
	assert.Equal(t, int32(len(Requirements())), RequirementCount)
	assert.Equal(t, int32(6), RequirementCount)
}
