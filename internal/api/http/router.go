package http

import (
	"net/http"

	"crewvar-backend/internal/obs"
	"crewvar-backend/internal/storage"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Onboarding   *OnboardingHandler
	Connection   *ConnectionHandler
	Roster       *RosterHandler
	Notification *NotificationHandler
	Middleware   *Middleware
	// MockStorage is nil when photos live in a real bucket.
	MockStorage *storage.MockStorageService
}

// NewRouter builds the full route table. Three tiers: public, authenticated,
// and authenticated-plus-onboarded. Discovery and connections sit behind the
// onboarding gate; profile editing and onboarding itself do not, or nobody
// could ever finish.
func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(obs.Instrument)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	r.Handle("/metrics", obs.Handler()).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods("POST")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods("POST")
	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods("POST")
	api.HandleFunc("/auth/verify-email", h.Auth.VerifyEmail).Methods("GET")

	// Authenticated, pre-onboarding
	authed := api.NewRoute().Subrouter()
	authed.Use(h.Middleware.Authenticate)
	authed.HandleFunc("/auth/resend-verification", h.Auth.ResendVerification).Methods("POST")
	authed.HandleFunc("/users/me", h.User.Me).Methods("GET")
	authed.HandleFunc("/users/me", h.User.UpdateProfile).Methods("PATCH")
	authed.HandleFunc("/users/me/ship", h.User.AssignShip).Methods("PUT")
	authed.HandleFunc("/users/me/photos/upload-url", h.User.GetUploadURL).Methods("POST")
	authed.HandleFunc("/users/me/avatar", h.User.ConfirmAvatar).Methods("PUT")
	authed.HandleFunc("/users/me/photos", h.User.ConfirmExtraPhoto).Methods("POST")
	authed.HandleFunc("/users/me/photos", h.User.DeleteExtraPhoto).Methods("DELETE")
	authed.HandleFunc("/onboarding/requirements", h.Onboarding.Requirements).Methods("GET")
	authed.HandleFunc("/onboarding/status", h.Onboarding.Status).Methods("GET")
	authed.HandleFunc("/onboarding/status", h.Onboarding.UpdateFlags).Methods("PATCH")
	authed.HandleFunc("/onboarding/complete", h.Onboarding.Complete).Methods("POST")
	authed.HandleFunc("/ships", h.Roster.ListShips).Methods("GET")
	authed.HandleFunc("/ships/{id:[0-9]+}", h.Roster.GetShip).Methods("GET")
	authed.HandleFunc("/notifications", h.Notification.List).Methods("GET")
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkAsRead).Methods("POST")
	authed.HandleFunc("/devices", h.Notification.RegisterDevice).Methods("POST")

	// Authenticated and onboarded
	gated := api.NewRoute().Subrouter()
	gated.Use(h.Middleware.Authenticate, h.Middleware.RequireOnboarding)
	gated.HandleFunc("/users/{id:[0-9]+}", h.User.ViewProfile).Methods("GET")
	gated.HandleFunc("/roster/ship", h.Roster.ShipRoster).Methods("GET")
	gated.HandleFunc("/roster/port", h.Roster.PortRoster).Methods("GET")
	gated.HandleFunc("/roster/search", h.Roster.Search).Methods("GET")
	gated.HandleFunc("/connections", h.Connection.List).Methods("GET")
	gated.HandleFunc("/connections", h.Connection.SendRequest).Methods("POST")
	gated.HandleFunc("/connections/{id:[0-9]+}/respond", h.Connection.Respond).Methods("POST")
	gated.HandleFunc("/connections/{id:[0-9]+}", h.Connection.Cancel).Methods("DELETE")
	gated.HandleFunc("/connections/state/{id:[0-9]+}", h.Connection.State).Methods("GET")
	gated.HandleFunc("/blocks/{id:[0-9]+}", h.Connection.Block).Methods("PUT")
	gated.HandleFunc("/blocks/{id:[0-9]+}", h.Connection.Unblock).Methods("DELETE")

	// Operator endpoints
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(h.Middleware.Authenticate, h.Middleware.RequireAdmin)
	admin.HandleFunc("/users/{id:[0-9]+}/onboarding/fast-track", h.Onboarding.FastTrack).Methods("POST")

	if h.MockStorage != nil {
		RegisterMockStorageRoutes(r, h.MockStorage)
	}

	return r
}
