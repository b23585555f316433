package service

import (
	"context"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/logger"
	"crewvar-backend/internal/presence"
	"crewvar-backend/internal/repository"
)

type visibilityService struct {
	userRepo repository.UserRepository
	shipRepo repository.ShipRepository
	connRepo repository.ConnectionRepository
	tracker  *presence.Tracker
}

func NewVisibilityService(
	userRepo repository.UserRepository,
	shipRepo repository.ShipRepository,
	connRepo repository.ConnectionRepository,
	tracker *presence.Tracker,
) VisibilityService {
	return &visibilityService{
		userRepo: userRepo,
		shipRepo: shipRepo,
		connRepo: connRepo,
		tracker:  tracker,
	}
}

// ViewProfile recomputes the projection on every call; visibility is never
// cached across connection-state changes.
func (s *visibilityService) ViewProfile(ctx context.Context, viewerID, ownerID int32) (*domain.ProfileView, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	state := domain.ConnectionStateNone
	if viewerID != ownerID {
		states, err := s.connRepo.ListStatesForViewer(ctx, viewerID, []int32{ownerID})
		if err != nil {
			return nil, err
		}
		state = states[ownerID]
	} else {
		// Owners always see their own extended fields.
		state = domain.ConnectionStateAccepted
	}

	view := s.project(ctx, owner, state)
	if view.Extended != nil {
		photos, err := s.userRepo.GetPhotos(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		view.Extended.Photos = photos
	}
	return view, nil
}

// project builds the per-render card. Extended fields are attached only for
// an accepted connection; every other state, pending included, projects
// exactly like NONE.
func (s *visibilityService) project(ctx context.Context, owner *domain.User, state domain.ConnectionState) *domain.ProfileView {
	view := &domain.ProfileView{
		UserID:      owner.ID,
		DisplayName: owner.DisplayName,
		AvatarURL:   owner.AvatarURL,
		ShipID:      owner.ShipID,
		Department:  owner.Department,
		Role:        owner.Role,
		Subcategory: owner.Subcategory,
		State:       state,
	}

	if owner.ShipID != nil {
		if ship, err := s.shipRepo.GetByID(ctx, *owner.ShipID); err == nil {
			view.ShipName = ship.Name
		}
	}

	if s.tracker != nil {
		if online, err := s.tracker.IsOnline(ctx, owner.ID); err == nil {
			view.Online = online
		} else {
			logger.Warn("Presence lookup failed", "error", err, "user_id", owner.ID)
		}
		if lastSeen, err := s.tracker.LastSeen(ctx, owner.ID); err == nil {
			view.LastSeen = lastSeen
		}
	}

	if domain.ExtendedVisible(state) {
		view.Extended = &domain.ExtendedProfile{
			Bio:          owner.Bio,
			Phone:        owner.Phone,
			ContactEmail: owner.ContactEmail,
			Instagram:    owner.Instagram,
			Snapchat:     owner.Snapchat,
			Website:      owner.Website,
			Photos:       owner.Photos,
		}
	}
	return view
}
