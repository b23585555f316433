package service

import (
	"context"
	"fmt"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/repository"
)

type userService struct {
	userRepo      repository.UserRepository
	shipRepo      repository.ShipRepository
	onboardingSvc OnboardingService
}

func NewUserService(userRepo repository.UserRepository, shipRepo repository.ShipRepository, onboardingSvc OnboardingService) UserService {
	return &userService{userRepo: userRepo, shipRepo: shipRepo, onboardingSvc: onboardingSvc}
}

func (s *userService) GetUser(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	photos, err := s.userRepo.GetPhotos(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Photos = photos
	return user, nil
}

// UpdateProfile merges the partial input into the profile, then derives the
// onboarding flags from whether the corresponding fields are non-empty.
func (s *userService) UpdateProfile(ctx context.Context, userID int32, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	mergeField(&user.DisplayName, input.DisplayName)
	mergeField(&user.Department, input.Department)
	mergeField(&user.Role, input.Role)
	mergeField(&user.Subcategory, input.Subcategory)
	mergeField(&user.Bio, input.Bio)
	mergeField(&user.Phone, input.Phone)
	mergeField(&user.ContactEmail, input.ContactEmail)
	mergeField(&user.Instagram, input.Instagram)
	mergeField(&user.Snapchat, input.Snapchat)
	mergeField(&user.Website, input.Website)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	patch := domain.OnboardingPatch{}
	if input.DisplayName != nil {
		patch.HasDisplayName = boolPtr(user.DisplayName != "")
	}
	if input.Department != nil {
		patch.HasDepartment = boolPtr(user.Department != "")
	}
	if input.Role != nil {
		patch.HasRole = boolPtr(user.Role != "")
	}
	if !patch.IsEmpty() {
		if _, err := s.onboardingSvc.UpdateFlags(ctx, userID, patch); err != nil {
			return nil, fmt.Errorf("update onboarding flags: %w", err)
		}
	}
	return user, nil
}

func (s *userService) AssignShip(ctx context.Context, userID, shipID int32) (*domain.User, error) {
	if _, err := s.shipRepo.GetByID(ctx, shipID); err != nil {
		return nil, fmt.Errorf("ship: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.ShipID = &shipID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if _, err := s.onboardingSvc.UpdateFlags(ctx, userID, domain.OnboardingPatch{HasShipAssignment: boolPtr(true)}); err != nil {
		return nil, fmt.Errorf("update onboarding flags: %w", err)
	}
	return user, nil
}

func mergeField(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func boolPtr(b bool) *bool {
	return &b
}
