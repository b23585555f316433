package service

import (
	"context"
	"fmt"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/presence"
	"crewvar-backend/internal/repository"
)

type rosterService struct {
	userRepo repository.UserRepository
	shipRepo repository.ShipRepository
	connRepo repository.ConnectionRepository
	vis      *visibilityService
}

func NewRosterService(
	userRepo repository.UserRepository,
	shipRepo repository.ShipRepository,
	connRepo repository.ConnectionRepository,
	tracker *presence.Tracker,
) RosterService {
	return &rosterService{
		userRepo: userRepo,
		shipRepo: shipRepo,
		connRepo: connRepo,
		vis: &visibilityService{
			userRepo: userRepo,
			shipRepo: shipRepo,
			connRepo: connRepo,
			tracker:  tracker,
		},
	}
}

func (s *rosterService) ShipRoster(ctx context.Context, viewerID int32) ([]domain.ProfileView, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer.ShipID == nil {
		return nil, fmt.Errorf("%w: viewer has no ship assignment", domain.ErrValidation)
	}
	crew, err := s.userRepo.ListByShip(ctx, *viewer.ShipID)
	if err != nil {
		return nil, err
	}
	return s.projectAll(ctx, viewerID, crew)
}

// PortRoster lists crew of other ships sharing the viewer's current port.
func (s *rosterService) PortRoster(ctx context.Context, viewerID int32) ([]domain.ProfileView, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer.ShipID == nil {
		return nil, fmt.Errorf("%w: viewer has no ship assignment", domain.ErrValidation)
	}
	ship, err := s.shipRepo.GetByID(ctx, *viewer.ShipID)
	if err != nil {
		return nil, err
	}
	if ship.CurrentPort == "" {
		return nil, nil
	}
	docked, err := s.shipRepo.ListByPort(ctx, ship.CurrentPort)
	if err != nil {
		return nil, err
	}
	var otherShipIDs []int32
	for _, d := range docked {
		if d.ID != ship.ID {
			otherShipIDs = append(otherShipIDs, d.ID)
		}
	}
	if len(otherShipIDs) == 0 {
		return nil, nil
	}
	crew, err := s.userRepo.ListByShips(ctx, otherShipIDs)
	if err != nil {
		return nil, err
	}
	return s.projectAll(ctx, viewerID, crew)
}

func (s *rosterService) SearchCrew(ctx context.Context, viewerID int32, query string) ([]domain.ProfileView, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrValidation)
	}
	matches, err := s.userRepo.Search(ctx, query, 50)
	if err != nil {
		return nil, err
	}
	return s.projectAll(ctx, viewerID, matches)
}

// projectAll resolves connection states for the whole page in one pass,
// drops the viewer and any blocked pair, and projects each card through the
// visibility resolver. Blocked users never surface in discovery.
func (s *rosterService) projectAll(ctx context.Context, viewerID int32, users []domain.User) ([]domain.ProfileView, error) {
	ids := make([]int32, 0, len(users))
	for _, u := range users {
		if u.ID != viewerID {
			ids = append(ids, u.ID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	states, err := s.connRepo.ListStatesForViewer(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	var views []domain.ProfileView
	for i := range users {
		u := &users[i]
		if u.ID == viewerID {
			continue
		}
		state := states[u.ID]
		if state == domain.ConnectionStateBlocked {
			continue
		}
		views = append(views, *s.vis.project(ctx, u, state))
	}
	return views, nil
}
