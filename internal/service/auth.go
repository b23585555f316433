package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/logger"
	"crewvar-backend/internal/presence"
	"crewvar-backend/internal/repository"
	"crewvar-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

const refreshTokenTTL = 7 * 24 * time.Hour

type authService struct {
	userRepo      repository.UserRepository
	onboardingSvc OnboardingService
	emailSvc      EmailService
	tokens        security.TokenManager
	sessions      *presence.Tracker
}

func NewAuthService(
	userRepo repository.UserRepository,
	onboardingSvc OnboardingService,
	emailSvc EmailService,
	tokens security.TokenManager,
	sessions *presence.Tracker,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		onboardingSvc: onboardingSvc,
		emailSvc:      emailSvc,
		tokens:        tokens,
		sessions:      sessions,
	}
}

func (s *authService) Signup(ctx context.Context, email, password, displayName string) (*domain.User, string, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", "", fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if len(password) < 8 {
		return nil, "", "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", "", fmt.Errorf("%w: email already registered", domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &domain.User{Email: email, PasswordHash: string(hash), DisplayName: displayName}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	// Seed the onboarding record; a non-empty display name at signup already
	// satisfies that requirement.
	patch := domain.OnboardingPatch{HasDisplayName: boolPtr(displayName != "")}
	if _, err := s.onboardingSvc.UpdateFlags(ctx, user.ID, patch); err != nil {
		return nil, "", "", fmt.Errorf("seed onboarding status: %w", err)
	}

	if err := s.sendVerification(ctx, user); err != nil {
		// The user can request a resend; signup itself still succeeds.
		logger.Warn("Failed to send verification email", "error", err, "user_id", user.ID)
	}

	access, refresh, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", fmt.Errorf("%w: refresh token required", domain.ErrUnauthorized)
	}
	ok, err := s.sessions.SessionExists(ctx, claims.ID)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", fmt.Errorf("%w: session revoked", domain.ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}

	// Rotate: the old session is revoked before new tokens are issued.
	if err := s.sessions.DeleteSession(ctx, claims.ID); err != nil {
		return "", "", err
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refresh string) error {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Type != security.TokenTypeRefresh {
		return fmt.Errorf("%w: refresh token required", domain.ErrUnauthorized)
	}
	return s.sessions.DeleteSession(ctx, claims.ID)
}

// VerifyEmail consumes the link token and flips the onboarding flag. Safe to
// call repeatedly; flipping an already-true flag is a no-op merge.
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Type != security.TokenTypeEmailVerify {
		return fmt.Errorf("%w: verification token required", domain.ErrUnauthorized)
	}
	_, err = s.onboardingSvc.UpdateFlags(ctx, claims.UserID, domain.OnboardingPatch{IsEmailVerified: boolPtr(true)})
	return err
}

func (s *authService) ResendVerification(ctx context.Context, userID int32) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.sendVerification(ctx, user)
}

func (s *authService) sendVerification(ctx context.Context, user *domain.User) error {
	token, err := s.tokens.GenerateEmailVerifyToken(user.ID, user.Email)
	if err != nil {
		return err
	}
	return s.emailSvc.SendVerificationEmail(ctx, user.Email, user.DisplayName, token)
}

func (s *authService) issueTokens(ctx context.Context, user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if err := s.sessions.PutSession(ctx, claims.ID, user.ID, refreshTokenTTL); err != nil {
		return "", "", fmt.Errorf("store session: %w", err)
	}
	return access, refresh, nil
}
