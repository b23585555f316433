package onboarding

import "crewvar-backend/internal/domain"

// Requirement ids are stable keys; consumers persist flags, not ids.
const (
	ReqEmailVerified  = "email_verified"
	ReqProfilePhoto   = "profile_photo"
	ReqDisplayName    = "display_name"
	ReqDepartment     = "department"
	ReqRole           = "role"
	ReqShipAssignment = "ship_assignment"
)

// registry is the fixed ordered list of onboarding requirements. Priority 1
// is highest; Missing walks this slice in order, so it must stay sorted.
var registry = []domain.Requirement{
	{ID: ReqEmailVerified, Name: "Email Verification", Description: "Verify your email address", IsRequired: true, Priority: 1},
	{ID: ReqProfilePhoto, Name: "Profile Photo", Description: "Upload a profile photo", IsRequired: true, Priority: 2},
	{ID: ReqDisplayName, Name: "Display Name", Description: "Choose the name shown to other crew", IsRequired: true, Priority: 3},
	{ID: ReqDepartment, Name: "Department", Description: "Select your department", IsRequired: true, Priority: 4},
	{ID: ReqRole, Name: "Role", Description: "Select your role", IsRequired: true, Priority: 5},
	{ID: ReqShipAssignment, Name: "Current Ship", Description: "Tell us which ship you are on", IsRequired: true, Priority: 6},
}

// RequirementCount is the divisor of the progress formula.
var RequirementCount = int32(len(registry))

// Requirements returns the registry in ascending priority order. The slice
// is shared; callers must not mutate it.
func Requirements() []domain.Requirement {
	return registry
}

// flagFor maps a requirement id to the corresponding status flag.
func flagFor(id string, s *domain.OnboardingStatus) bool {
	switch id {
	case ReqEmailVerified:
		return s.IsEmailVerified
	case ReqProfilePhoto:
		return s.HasProfilePhoto
	case ReqDisplayName:
		return s.HasDisplayName
	case ReqDepartment:
		return s.HasDepartment
	case ReqRole:
		return s.HasRole
	case ReqShipAssignment:
		return s.HasShipAssignment
	}
	return false
}
