package service

import (
	"context"
	"fmt"
	"strings"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/repository"
)

type shipService struct {
	shipRepo repository.ShipRepository
}

func NewShipService(shipRepo repository.ShipRepository) ShipService {
	return &shipService{shipRepo: shipRepo}
}

func (s *shipService) ListShips(ctx context.Context) ([]domain.Ship, error) {
	return s.shipRepo.List(ctx)
}

func (s *shipService) GetShip(ctx context.Context, id int32) (*domain.Ship, error) {
	return s.shipRepo.GetByID(ctx, id)
}

func (s *shipService) CreateShip(ctx context.Context, ship *domain.Ship) error {
	if err := validateShip(ship); err != nil {
		return err
	}
	return s.shipRepo.Create(ctx, ship)
}

func (s *shipService) UpdateShip(ctx context.Context, ship *domain.Ship) error {
	if err := validateShip(ship); err != nil {
		return err
	}
	if _, err := s.shipRepo.GetByID(ctx, ship.ID); err != nil {
		return err
	}
	return s.shipRepo.Update(ctx, ship)
}

func validateShip(ship *domain.Ship) error {
	if strings.TrimSpace(ship.Name) == "" {
		return fmt.Errorf("%w: ship name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(ship.CruiseLine) == "" {
		return fmt.Errorf("%w: cruise line is required", domain.ErrValidation)
	}
	return nil
}
