package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/obs"
	"crewvar-backend/internal/onboarding"
	"crewvar-backend/internal/repository"
)

type onboardingService struct {
	onboardingRepo repository.OnboardingRepository
}

func NewOnboardingService(onboardingRepo repository.OnboardingRepository) OnboardingService {
	return &onboardingService{onboardingRepo: onboardingRepo}
}

func (s *onboardingService) GetStatus(ctx context.Context, userID int32) (*domain.OnboardingStatus, []string, error) {
	status, err := s.onboardingRepo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		// Never-touched users read as a default all-false record; the row is
		// only materialized on first update.
		status = &domain.OnboardingStatus{UserID: userID, LastOnboardingUpdate: time.Now()}
	} else if err != nil {
		return nil, nil, err
	}
	return status, onboarding.Missing(status), nil
}

func (s *onboardingService) UpdateFlags(ctx context.Context, userID int32, patch domain.OnboardingPatch) (*domain.OnboardingStatus, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: patch touches no flag", domain.ErrValidation)
	}
	return s.onboardingRepo.Apply(ctx, userID, patch)
}

// Complete ends the normal onboarding flow. It refuses until every
// requirement flag is satisfied; FastTrack is the way around that.
func (s *onboardingService) Complete(ctx context.Context, userID int32) (*domain.OnboardingStatus, error) {
	status, _, err := s.GetStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	if missing := onboarding.Missing(status); len(missing) > 0 {
		return nil, fmt.Errorf("%w: requirements outstanding: %v", domain.ErrInvalidStateTransition, missing)
	}
	done, err := s.onboardingRepo.MarkComplete(ctx, userID)
	if err != nil {
		return nil, err
	}
	obs.RecordOnboardingCompletion()
	return done, nil
}

// FastTrack forces has_completed_onboarding and a progress of 100 no matter
// what the flags say. An operator escape hatch, kept deliberately: the
// resulting record can have the explicit flag set while the conjunctive gate
// still reports the user as incomplete.
func (s *onboardingService) FastTrack(ctx context.Context, userID int32) (*domain.OnboardingStatus, error) {
	return s.onboardingRepo.MarkComplete(ctx, userID)
}

func (s *onboardingService) Requirements() []domain.Requirement {
	return onboarding.Requirements()
}
