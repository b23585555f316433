package service

import (
	"context"
	"testing"

	"crewvar-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	str := func(s string) *string { return &s }

	t.Run("merges touched fields and derives onboarding flags", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		onboardingSvc := new(MockOnboardingService)
		svc := NewUserService(userRepo, new(MockShipRepo), onboardingSvc)

		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, DisplayName: "Jonas"}, nil).Once()
		userRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Department == "Deck" && u.Role == "Bosun" && u.DisplayName == "Jonas"
		})).Return(nil).Once()
		onboardingSvc.On("UpdateFlags", ctx, int32(1), mock.MatchedBy(func(p domain.OnboardingPatch) bool {
			// Only the touched fields flip flags; display name was not in
			// this patch so its flag must stay untouched.
			return p.HasDisplayName == nil &&
				p.HasDepartment != nil && *p.HasDepartment &&
				p.HasRole != nil && *p.HasRole
		})).Return(&domain.OnboardingStatus{}, nil).Once()

		user, err := svc.UpdateProfile(ctx, 1, UpdateProfileInput{
			Department: str("Deck"),
			Role:       str("Bosun"),
		})
		assert.NoError(t, err)
		assert.Equal(t, "Deck", user.Department)
		onboardingSvc.AssertExpectations(t)
	})

	t.Run("clearing a field lowers its flag", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		onboardingSvc := new(MockOnboardingService)
		svc := NewUserService(userRepo, new(MockShipRepo), onboardingSvc)

		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Department: "Deck"}, nil).Once()
		userRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
		onboardingSvc.On("UpdateFlags", ctx, int32(1), mock.MatchedBy(func(p domain.OnboardingPatch) bool {
			return p.HasDepartment != nil && !*p.HasDepartment
		})).Return(&domain.OnboardingStatus{}, nil).Once()

		_, err := svc.UpdateProfile(ctx, 1, UpdateProfileInput{Department: str("")})
		assert.NoError(t, err)
	})

	t.Run("extended-only update touches no onboarding flag", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		onboardingSvc := new(MockOnboardingService)
		svc := NewUserService(userRepo, new(MockShipRepo), onboardingSvc)

		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1}, nil).Once()
		userRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.UpdateProfile(ctx, 1, UpdateProfileInput{Bio: str("new bio")})
		assert.NoError(t, err)
		onboardingSvc.AssertNotCalled(t, "UpdateFlags", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_AssignShip(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns and flips the ship flag", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		shipRepo := new(MockShipRepo)
		onboardingSvc := new(MockOnboardingService)
		svc := NewUserService(userRepo, shipRepo, onboardingSvc)

		shipRepo.On("GetByID", ctx, int32(3)).Return(&domain.Ship{ID: 3, Name: "MS Aurora"}, nil).Once()
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1}, nil).Once()
		userRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.ShipID != nil && *u.ShipID == 3
		})).Return(nil).Once()
		onboardingSvc.On("UpdateFlags", ctx, int32(1), mock.MatchedBy(func(p domain.OnboardingPatch) bool {
			return p.HasShipAssignment != nil && *p.HasShipAssignment
		})).Return(&domain.OnboardingStatus{}, nil).Once()

		user, err := svc.AssignShip(ctx, 1, 3)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), *user.ShipID)
	})

	t.Run("unknown ship", func(t *testing.T) {
		shipRepo := new(MockShipRepo)
		svc := NewUserService(new(MockUserRepo), shipRepo, new(MockOnboardingService))
		shipRepo.On("GetByID", ctx, int32(99)).Return(nil, domain.ErrNotFound).Once()

		_, err := svc.AssignShip(ctx, 1, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
