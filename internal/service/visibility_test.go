package service

import (
	"context"
	"testing"

	"crewvar-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func shipID(id int32) *int32 { return &id }

func fullProfile() *domain.User {
	return &domain.User{
		ID:           5,
		DisplayName:  "Maya",
		AvatarURL:    "http://example/avatar.jpg",
		Department:   "Entertainment",
		Role:         "Dancer",
		ShipID:       shipID(3),
		Bio:          "ten contracts and counting",
		Phone:        "+1 555 0100",
		ContactEmail: "maya@crew.example",
		Instagram:    "@maya",
	}
}

func newVisibilityFixture() (*MockUserRepo, *MockShipRepo, *MockConnectionRepo, VisibilityService) {
	userRepo := new(MockUserRepo)
	shipRepo := new(MockShipRepo)
	connRepo := new(MockConnectionRepo)
	return userRepo, shipRepo, connRepo, NewVisibilityService(userRepo, shipRepo, connRepo, nil)
}

func TestVisibilityService_ViewProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted connection sees extended fields", func(t *testing.T) {
		userRepo, shipRepo, connRepo, svc := newVisibilityFixture()
		userRepo.On("GetByID", ctx, int32(5)).Return(fullProfile(), nil).Once()
		connRepo.On("ListStatesForViewer", ctx, int32(1), []int32{5}).
			Return(map[int32]domain.ConnectionState{5: domain.ConnectionStateAccepted}, nil).Once()
		shipRepo.On("GetByID", ctx, int32(3)).Return(&domain.Ship{ID: 3, Name: "MS Aurora"}, nil).Once()
		userRepo.On("GetPhotos", ctx, int32(5)).Return([]string{"http://example/p1.jpg"}, nil).Once()

		view, err := svc.ViewProfile(ctx, 1, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.ConnectionStateAccepted, view.State)
		assert.NotNil(t, view.Extended)
		assert.Equal(t, "ten contracts and counting", view.Extended.Bio)
		assert.Equal(t, []string{"http://example/p1.jpg"}, view.Extended.Photos)
		assert.Equal(t, "MS Aurora", view.ShipName)
	})

	t.Run("no connection sees basic fields only", func(t *testing.T) {
		userRepo, shipRepo, connRepo, svc := newVisibilityFixture()
		userRepo.On("GetByID", ctx, int32(5)).Return(fullProfile(), nil).Once()
		connRepo.On("ListStatesForViewer", ctx, int32(1), []int32{5}).
			Return(map[int32]domain.ConnectionState{5: domain.ConnectionStateNone}, nil).Once()
		shipRepo.On("GetByID", ctx, int32(3)).Return(&domain.Ship{ID: 3, Name: "MS Aurora"}, nil).Once()

		view, err := svc.ViewProfile(ctx, 1, 5)
		assert.NoError(t, err)
		assert.Nil(t, view.Extended)
		assert.Equal(t, "Maya", view.DisplayName)
		assert.Equal(t, "Entertainment", view.Department)
		userRepo.AssertNotCalled(t, "GetPhotos", ctx, int32(5))
	})

	t.Run("pending projects exactly like none", func(t *testing.T) {
		userRepo, shipRepo, connRepo, svc := newVisibilityFixture()
		userRepo.On("GetByID", ctx, int32(5)).Return(fullProfile(), nil).Once()
		connRepo.On("ListStatesForViewer", ctx, int32(1), []int32{5}).
			Return(map[int32]domain.ConnectionState{5: domain.ConnectionStatePending}, nil).Once()
		shipRepo.On("GetByID", ctx, int32(3)).Return(&domain.Ship{ID: 3, Name: "MS Aurora"}, nil).Once()

		view, err := svc.ViewProfile(ctx, 1, 5)
		assert.NoError(t, err)
		assert.Nil(t, view.Extended)
		assert.Equal(t, domain.ConnectionStatePending, view.State)
	})

	t.Run("owner always sees their own extended fields", func(t *testing.T) {
		userRepo, shipRepo, connRepo, svc := newVisibilityFixture()
		userRepo.On("GetByID", ctx, int32(5)).Return(fullProfile(), nil).Once()
		shipRepo.On("GetByID", ctx, int32(3)).Return(&domain.Ship{ID: 3, Name: "MS Aurora"}, nil).Once()
		userRepo.On("GetPhotos", ctx, int32(5)).Return(nil, nil).Once()

		view, err := svc.ViewProfile(ctx, 5, 5)
		assert.NoError(t, err)
		assert.NotNil(t, view.Extended)
		connRepo.AssertNotCalled(t, "ListStatesForViewer", ctx, int32(5), []int32{5})
	})

	t.Run("unknown owner", func(t *testing.T) {
		userRepo, _, _, svc := newVisibilityFixture()
		userRepo.On("GetByID", ctx, int32(99)).Return(nil, domain.ErrNotFound).Once()

		_, err := svc.ViewProfile(ctx, 1, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
