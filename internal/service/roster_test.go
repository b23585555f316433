package service

import (
	"context"
	"testing"

	"crewvar-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRosterService_ShipRoster(t *testing.T) {
	ctx := context.Background()

	t.Run("filters out the viewer and blocked pairs", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		shipRepo := new(MockShipRepo)
		connRepo := new(MockConnectionRepo)
		svc := NewRosterService(userRepo, shipRepo, connRepo, nil)

		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, ShipID: shipID(3)}, nil).Once()
		userRepo.On("ListByShip", ctx, int32(3)).Return([]domain.User{
			{ID: 1, DisplayName: "Viewer", ShipID: shipID(3)},
			{ID: 2, DisplayName: "Friend", ShipID: shipID(3), Bio: "secret"},
			{ID: 4, DisplayName: "Blocked", ShipID: shipID(3)},
			{ID: 5, DisplayName: "Stranger", ShipID: shipID(3)},
		}, nil).Once()
		connRepo.On("ListStatesForViewer", ctx, int32(1), []int32{2, 4, 5}).
			Return(map[int32]domain.ConnectionState{
				2: domain.ConnectionStateAccepted,
				4: domain.ConnectionStateBlocked,
				5: domain.ConnectionStateNone,
			}, nil).Once()
		shipRepo.On("GetByID", ctx, int32(3)).Return(&domain.Ship{ID: 3, Name: "MS Aurora"}, nil)

		views, err := svc.ShipRoster(ctx, 1)
		assert.NoError(t, err)
		assert.Len(t, views, 2)

		byID := map[int32]domain.ProfileView{}
		for _, v := range views {
			byID[v.UserID] = v
		}
		assert.NotContains(t, byID, int32(1))
		assert.NotContains(t, byID, int32(4))
		// Accepted connection gets the extended card, stranger does not.
		assert.NotNil(t, byID[2].Extended)
		assert.Equal(t, "secret", byID[2].Extended.Bio)
		assert.Nil(t, byID[5].Extended)
	})

	t.Run("viewer without ship assignment", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewRosterService(userRepo, new(MockShipRepo), new(MockConnectionRepo), nil)
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1}, nil).Once()

		_, err := svc.ShipRoster(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRosterService_PortRoster(t *testing.T) {
	ctx := context.Background()

	t.Run("only other ships in the same port", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		shipRepo := new(MockShipRepo)
		connRepo := new(MockConnectionRepo)
		svc := NewRosterService(userRepo, shipRepo, connRepo, nil)

		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, ShipID: shipID(3)}, nil).Once()
		shipRepo.On("GetByID", ctx, int32(3)).Return(&domain.Ship{ID: 3, Name: "MS Aurora", CurrentPort: "Cozumel"}, nil)
		shipRepo.On("ListByPort", ctx, "Cozumel").Return([]domain.Ship{
			{ID: 3, Name: "MS Aurora", CurrentPort: "Cozumel"},
			{ID: 9, Name: "MS Borealis", CurrentPort: "Cozumel"},
		}, nil).Once()
		userRepo.On("ListByShips", ctx, []int32{9}).Return([]domain.User{
			{ID: 7, DisplayName: "Neighbor", ShipID: shipID(9)},
		}, nil).Once()
		connRepo.On("ListStatesForViewer", ctx, int32(1), []int32{7}).
			Return(map[int32]domain.ConnectionState{7: domain.ConnectionStateNone}, nil).Once()
		shipRepo.On("GetByID", ctx, int32(9)).Return(&domain.Ship{ID: 9, Name: "MS Borealis"}, nil)

		views, err := svc.PortRoster(ctx, 1)
		assert.NoError(t, err)
		assert.Len(t, views, 1)
		assert.Equal(t, int32(7), views[0].UserID)
	})

	t.Run("ship at sea yields empty roster", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		shipRepo := new(MockShipRepo)
		svc := NewRosterService(userRepo, shipRepo, new(MockConnectionRepo), nil)

		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, ShipID: shipID(3)}, nil).Once()
		shipRepo.On("GetByID", ctx, int32(3)).Return(&domain.Ship{ID: 3, CurrentPort: ""}, nil).Once()

		views, err := svc.PortRoster(ctx, 1)
		assert.NoError(t, err)
		assert.Empty(t, views)
	})
}
