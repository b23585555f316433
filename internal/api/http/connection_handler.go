package http

import (
	"net/http"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/service"
)

type ConnectionHandler struct {
	connSvc service.ConnectionService
}

func NewConnectionHandler(connSvc service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connSvc: connSvc}
}

func (h *ConnectionHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var req struct {
		ReceiverID int32  `json:"receiver_id"`
		Message    string `json:"message"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := h.connSvc.SendRequest(r.Context(), claims.UserID, req.ReceiverID, req.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Respond accepts or declines a pending request; only the receiver may act.
func (h *ConnectionHandler) Respond(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	requestID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Decision string `json:"decision"` // "accept" or "decline"
	}
	if !decodeBody(w, r, &req) {
		return
	}
	var decision domain.ConnectionStatus
	switch req.Decision {
	case "accept":
		decision = domain.ConnectionStatusAccepted
	case "decline":
		decision = domain.ConnectionStatusDeclined
	default:
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "decision must be accept or decline"})
		return
	}
	updated, err := h.connSvc.Respond(r.Context(), claims.UserID, requestID, decision)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *ConnectionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	requestID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.connSvc.Cancel(r.Context(), claims.UserID, requestID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// List returns the caller's requests, optionally filtered by ?status=.
func (h *ConnectionHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	requests, err := h.connSvc.List(r.Context(), claims.UserID, r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

func (h *ConnectionHandler) State(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	otherID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	state, err := h.connSvc.StateFor(r.Context(), claims.UserID, otherID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]domain.ConnectionState{"state": state})
}

func (h *ConnectionHandler) Block(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	otherID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.connSvc.Block(r.Context(), claims.UserID, otherID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ConnectionHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	otherID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.connSvc.Unblock(r.Context(), claims.UserID, otherID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
