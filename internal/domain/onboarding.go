package domain

import "time"

// Requirement is one discrete onboarding prerequisite, defined once at
// process start. Priority 1 is the highest and drives display order.
type Requirement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsRequired  bool   `json:"is_required"`
	Priority    int32  `json:"priority"`
}

// OnboardingStatus tracks which requirements a user has satisfied.
// OnboardingProgress is a cache of the recomputation formula over the six
// flags; it is never written directly by callers.
type OnboardingStatus struct {
	UserID                 int32     `json:"user_id"`
	IsEmailVerified        bool      `json:"is_email_verified"`
	HasProfilePhoto        bool      `json:"has_profile_photo"`
	HasDisplayName         bool      `json:"has_display_name"`
	HasDepartment          bool      `json:"has_department"`
	HasRole                bool      `json:"has_role"`
	HasShipAssignment      bool      `json:"has_ship_assignment"`
	HasCompletedOnboarding bool      `json:"has_completed_onboarding"`
	OnboardingProgress     int32     `json:"onboarding_progress"`
	LastOnboardingUpdate   time.Time `json:"last_onboarding_update"`
}

// OnboardingPatch carries a partial flag update. Nil fields are left
// untouched by the merge.
type OnboardingPatch struct {
	IsEmailVerified   *bool
	HasProfilePhoto   *bool
	HasDisplayName    *bool
	HasDepartment     *bool
	HasRole           *bool
	HasShipAssignment *bool
}

// IsEmpty reports whether the patch touches no flag at all.
func (p OnboardingPatch) IsEmpty() bool {
	return p.IsEmailVerified == nil && p.HasProfilePhoto == nil &&
		p.HasDisplayName == nil && p.HasDepartment == nil &&
		p.HasRole == nil && p.HasShipAssignment == nil
}
