package http

import (
	"net/http"
	"strconv"

	"crewvar-backend/internal/service"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	userSvc       service.UserService
	visibilitySvc service.VisibilityService
	photoSvc      service.PhotoService
}

func NewUserHandler(userSvc service.UserService, visibilitySvc service.VisibilityService, photoSvc service.PhotoService) *UserHandler {
	return &UserHandler{
		userSvc:       userSvc,
		visibilitySvc: visibilitySvc,
		photoSvc:      photoSvc,
	}
}

// Me returns the caller's own full profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	user, err := h.userSvc.GetUser(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ViewProfile returns another user's profile with extended fields included
// only when the viewer holds an accepted connection.
func (h *UserHandler) ViewProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	ownerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	view, err := h.visibilitySvc.ViewProfile(r.Context(), claims.UserID, ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var req struct {
		DisplayName  *string `json:"display_name"`
		Department   *string `json:"department"`
		Role         *string `json:"role"`
		Subcategory  *string `json:"subcategory"`
		Bio          *string `json:"bio"`
		Phone        *string `json:"phone"`
		ContactEmail *string `json:"contact_email"`
		Instagram    *string `json:"instagram"`
		Snapchat     *string `json:"snapchat"`
		Website      *string `json:"website"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.userSvc.UpdateProfile(r.Context(), claims.UserID, service.UpdateProfileInput{
		DisplayName:  req.DisplayName,
		Department:   req.Department,
		Role:         req.Role,
		Subcategory:  req.Subcategory,
		Bio:          req.Bio,
		Phone:        req.Phone,
		ContactEmail: req.ContactEmail,
		Instagram:    req.Instagram,
		Snapchat:     req.Snapchat,
		Website:      req.Website,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) AssignShip(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var req struct {
		ShipID int32 `json:"ship_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.userSvc.AssignShip(r.Context(), claims.UserID, req.ShipID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var req struct {
		Filename    string `json:"filename"`
		ContentType string `json:"content_type"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	key, url, err := h.photoSvc.GetUploadURL(r.Context(), claims.UserID, req.Filename, req.ContentType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"key": key, "upload_url": url})
}

func (h *UserHandler) ConfirmAvatar(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var req struct {
		Key string `json:"key"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.photoSvc.ConfirmAvatar(r.Context(), claims.UserID, req.Key)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ConfirmExtraPhoto(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var req struct {
		Key string `json:"key"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.photoSvc.ConfirmExtraPhoto(r.Context(), claims.UserID, req.Key); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

func (h *UserHandler) DeleteExtraPhoto(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var req struct {
		URL string `json:"url"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.photoSvc.DeleteExtraPhoto(r.Context(), claims.UserID, req.URL); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// pathID parses a numeric {name} path variable, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return int32(id), true
}
