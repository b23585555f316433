package http

import (
	"net/http"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/service"
)

type OnboardingHandler struct {
	onboardingSvc service.OnboardingService
}

func NewOnboardingHandler(onboardingSvc service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingSvc: onboardingSvc}
}

func (h *OnboardingHandler) Requirements(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.onboardingSvc.Requirements())
}

func (h *OnboardingHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	status, missing, err := h.onboardingSvc.GetStatus(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  status,
		"missing": missing,
	})
}

// UpdateFlags applies a partial flag update. The progress field is derived
// server-side and cannot be set by the client.
func (h *OnboardingHandler) UpdateFlags(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var req struct {
		IsEmailVerified   *bool `json:"is_email_verified"`
		HasProfilePhoto   *bool `json:"has_profile_photo"`
		HasDisplayName    *bool `json:"has_display_name"`
		HasDepartment     *bool `json:"has_department"`
		HasRole           *bool `json:"has_role"`
		HasShipAssignment *bool `json:"has_ship_assignment"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	status, err := h.onboardingSvc.UpdateFlags(r.Context(), claims.UserID, domain.OnboardingPatch{
		IsEmailVerified:   req.IsEmailVerified,
		HasProfilePhoto:   req.HasProfilePhoto,
		HasDisplayName:    req.HasDisplayName,
		HasDepartment:     req.HasDepartment,
		HasRole:           req.HasRole,
		HasShipAssignment: req.HasShipAssignment,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func (h *OnboardingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	status, err := h.onboardingSvc.Complete(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// FastTrack is the operator escape hatch, admin only.
func (h *OnboardingHandler) FastTrack(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	status, err := h.onboardingSvc.FastTrack(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}
