package http

import (
	"net/http"

	"crewvar-backend/internal/service"
)

type RosterHandler struct {
	rosterSvc service.RosterService
	shipSvc   service.ShipService
}

func NewRosterHandler(rosterSvc service.RosterService, shipSvc service.ShipService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc, shipSvc: shipSvc}
}

// ShipRoster lists crew on the caller's own ship.
func (h *RosterHandler) ShipRoster(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	cards, err := h.rosterSvc.ShipRoster(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// PortRoster lists crew on other ships docked in the same port today.
func (h *RosterHandler) PortRoster(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	cards, err := h.rosterSvc.PortRoster(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

func (h *RosterHandler) Search(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	query := r.URL.Query().Get("q")
	if query == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "missing query"})
		return
	}
	cards, err := h.rosterSvc.SearchCrew(r.Context(), claims.UserID, query)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

func (h *RosterHandler) ListShips(w http.ResponseWriter, r *http.Request) {
	ships, err := h.shipSvc.ListShips(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ships)
}

func (h *RosterHandler) GetShip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ship, err := h.shipSvc.GetShip(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ship)
}
