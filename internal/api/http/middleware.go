package http

import (
	"context"
	"net/http"
	"strings"

	"crewvar-backend/internal/logger"
	"crewvar-backend/internal/presence"
	"crewvar-backend/internal/security"
	"crewvar-backend/internal/service"
)

type contextKey string

const claimsKey contextKey = "claims"

// claimsFrom returns the authenticated claims placed by AuthMiddleware.
func claimsFrom(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	return claims, ok
}

type Middleware struct {
	tokens        security.TokenManager
	onboardingSvc service.OnboardingService
	tracker       *presence.Tracker
}

func NewMiddleware(tokens security.TokenManager, onboardingSvc service.OnboardingService, tracker *presence.Tracker) *Middleware {
	return &Middleware{
		tokens:        tokens,
		onboardingSvc: onboardingSvc,
		tracker:       tracker,
	}
}

// Authenticate validates the bearer access token, stores the claims in the
// request context and records a presence heartbeat.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}
		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondError(w, err)
			return
		}
		if claims.Type != security.TokenTypeAccess {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "access token required"})
			return
		}

		if err := m.tracker.Touch(r.Context(), claims.UserID); err != nil {
			logger.Warn("Presence heartbeat failed", "error", err, "user_id", claims.UserID)
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOnboarding rejects requests from users who have not finished
// onboarding. The 403 body carries the outstanding requirement names so the
// client can render the checklist.
func (m *Middleware) RequireOnboarding(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r.Context())
		if !ok {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
			return
		}
		status, missing, err := m.onboardingSvc.GetStatus(r.Context(), claims.UserID)
		if err != nil {
			respondError(w, err)
			return
		}
		if !status.HasCompletedOnboarding || len(missing) > 0 {
			respondJSON(w, http.StatusForbidden, errorResponse{
				Error:   "onboarding incomplete",
				Details: map[string]any{"missing": missing, "progress": status.OnboardingProgress},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates operator endpoints on the is_admin claim.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r.Context())
		if !ok || !claims.IsAdmin {
			respondJSON(w, http.StatusForbidden, errorResponse{Error: "admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
