package service

import (
	"context"
	"testing"

	"crewvar-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOnboardingService_GetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user reads as default record", func(t *testing.T) {
		repo := new(MockOnboardingRepo)
		svc := NewOnboardingService(repo)
		repo.On("Get", ctx, int32(7)).Return(nil, domain.ErrNotFound).Once()

		status, missing, err := svc.GetStatus(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), status.UserID)
		assert.False(t, status.HasCompletedOnboarding)
		assert.Equal(t, int32(0), status.OnboardingProgress)
		assert.Len(t, missing, 6)
	})

	t.Run("partial record reports remaining requirements", func(t *testing.T) {
		repo := new(MockOnboardingRepo)
		svc := NewOnboardingService(repo)
		repo.On("Get", ctx, int32(7)).Return(&domain.OnboardingStatus{
			UserID:             7,
			IsEmailVerified:    true,
			HasDisplayName:     true,
			OnboardingProgress: 33,
		}, nil).Once()

		_, missing, err := svc.GetStatus(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, []string{"Profile Photo", "Department", "Role", "Current Ship"}, missing)
	})
}

func TestOnboardingService_UpdateFlags(t *testing.T) {
	ctx := context.Background()

	t.Run("empty patch is rejected", func(t *testing.T) {
		repo := new(MockOnboardingRepo)
		svc := NewOnboardingService(repo)

		_, err := svc.UpdateFlags(ctx, 7, domain.OnboardingPatch{})
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("patch is applied through the repository merge", func(t *testing.T) {
		repo := new(MockOnboardingRepo)
		svc := NewOnboardingService(repo)
		verified := true
		patch := domain.OnboardingPatch{IsEmailVerified: &verified}
		repo.On("Apply", ctx, int32(7), patch).Return(&domain.OnboardingStatus{
			UserID:             7,
			IsEmailVerified:    true,
			OnboardingProgress: 17,
		}, nil).Once()

		status, err := svc.UpdateFlags(ctx, 7, patch)
		assert.NoError(t, err)
		assert.Equal(t, int32(17), status.OnboardingProgress)
	})
}

func TestOnboardingService_Complete(t *testing.T) {
	ctx := context.Background()
	allSet := &domain.OnboardingStatus{
		UserID:            7,
		IsEmailVerified:   true,
		HasProfilePhoto:   true,
		HasDisplayName:    true,
		HasDepartment:     true,
		HasRole:           true,
		HasShipAssignment: true,
	}

	t.Run("refuses while requirements outstanding", func(t *testing.T) {
		repo := new(MockOnboardingRepo)
		svc := NewOnboardingService(repo)
		repo.On("Get", ctx, int32(7)).Return(&domain.OnboardingStatus{UserID: 7, IsEmailVerified: true}, nil).Once()

		_, err := svc.Complete(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
		repo.AssertNotCalled(t, "MarkComplete", mock.Anything, mock.Anything)
	})

	t.Run("completes once all six flags are set", func(t *testing.T) {
		repo := new(MockOnboardingRepo)
		svc := NewOnboardingService(repo)
		repo.On("Get", ctx, int32(7)).Return(allSet, nil).Once()
		done := *allSet
		done.HasCompletedOnboarding = true
		done.OnboardingProgress = 100
		repo.On("MarkComplete", ctx, int32(7)).Return(&done, nil).Once()

		status, err := svc.Complete(ctx, 7)
		assert.NoError(t, err)
		assert.True(t, status.HasCompletedOnboarding)
		assert.Equal(t, int32(100), status.OnboardingProgress)
	})
}

func TestOnboardingService_FastTrack(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOnboardingRepo)
	svc := NewOnboardingService(repo)

	// FastTrack forces completion regardless of the flags; the result can
	// carry progress 100 with requirements still unmet.
	repo.On("MarkComplete", ctx, int32(7)).Return(&domain.OnboardingStatus{
		UserID:                 7,
		HasCompletedOnboarding: true,
		OnboardingProgress:     100,
	}, nil).Once()

	status, err := svc.FastTrack(ctx, 7)
	assert.NoError(t, err)
	assert.True(t, status.HasCompletedOnboarding)
	assert.Equal(t, int32(100), status.OnboardingProgress)
	assert.False(t, status.IsEmailVerified)
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestOnboardingService_Requirements(t *testing.T) {
	svc := NewOnboardingService(new(MockOnboardingRepo))
	reqs := svc.Requirements()
	assert.Len(t, reqs, 6)
	for i, r := range reqs {
		assert.Equal(t, int32(i+1), r.Priority)
		assert.True(t, r.IsRequired)
	}
}
