package service

import (
	"context"

	"crewvar-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) ListByShip(ctx context.Context, shipID int32) ([]domain.User, error) {
	args := m.Called(ctx, shipID)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) ListByShips(ctx context.Context, shipIDs []int32) ([]domain.User, error) {
	args := m.Called(ctx, shipIDs)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) Search(ctx context.Context, query string, limit int32) ([]domain.User, error) {
	args := m.Called(ctx, query, limit)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetPhotos(ctx context.Context, userID int32) ([]string, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) AddPhoto(ctx context.Context, userID int32, url string) error {
	return m.Called(ctx, userID, url).Error(0)
}

func (m *MockUserRepo) DeletePhoto(ctx context.Context, userID int32, url string) error {
	return m.Called(ctx, userID, url).Error(0)
}

type MockOnboardingRepo struct{ mock.Mock }

func (m *MockOnboardingRepo) Get(ctx context.Context, userID int32) (*domain.OnboardingStatus, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.(*domain.OnboardingStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOnboardingRepo) Apply(ctx context.Context, userID int32, patch domain.OnboardingPatch) (*domain.OnboardingStatus, error) {
	args := m.Called(ctx, userID, patch)
	if s := args.Get(0); s != nil {
		return s.(*domain.OnboardingStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOnboardingRepo) MarkComplete(ctx context.Context, userID int32) (*domain.OnboardingStatus, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.(*domain.OnboardingStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOnboardingRepo) ListIncompleteBefore(ctx context.Context, cutoffDays int32) ([]domain.OnboardingStatus, error) {
	args := m.Called(ctx, cutoffDays)
	if s := args.Get(0); s != nil {
		return s.([]domain.OnboardingStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockConnectionRepo struct{ mock.Mock }

func (m *MockConnectionRepo) CreatePending(ctx context.Context, req *domain.ConnectionRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockConnectionRepo) GetByID(ctx context.Context, id int32) (*domain.ConnectionRequest, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.ConnectionRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConnectionRepo) GetActiveByPair(ctx context.Context, userA, userB int32) (*domain.ConnectionRequest, error) {
	args := m.Called(ctx, userA, userB)
	if r := args.Get(0); r != nil {
		return r.(*domain.ConnectionRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConnectionRepo) UpdateStatusFromPending(ctx context.Context, id int32, status domain.ConnectionStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockConnectionRepo) DeletePending(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockConnectionRepo) ListByUser(ctx context.Context, userID int32, status string) ([]domain.ConnectionRequest, error) {
	args := m.Called(ctx, userID, status)
	if r := args.Get(0); r != nil {
		return r.([]domain.ConnectionRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConnectionRepo) ListStatesForViewer(ctx context.Context, viewerID int32, userIDs []int32) (map[int32]domain.ConnectionState, error) {
	args := m.Called(ctx, viewerID, userIDs)
	if r := args.Get(0); r != nil {
		return r.(map[int32]domain.ConnectionState), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConnectionRepo) PurgeDeclinedBefore(ctx context.Context, days int32) (int64, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConnectionRepo) CreateBlock(ctx context.Context, blockerID, blockedID int32) error {
	return m.Called(ctx, blockerID, blockedID).Error(0)
}

func (m *MockConnectionRepo) DeleteBlock(ctx context.Context, blockerID, blockedID int32) error {
	return m.Called(ctx, blockerID, blockedID).Error(0)
}

func (m *MockConnectionRepo) IsBlockedEitherWay(ctx context.Context, userA, userB int32) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockConnectionRepo) ListBlockedIDs(ctx context.Context, userID int32) ([]int32, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.([]int32), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockShipRepo struct{ mock.Mock }

func (m *MockShipRepo) Create(ctx context.Context, ship *domain.Ship) error {
	return m.Called(ctx, ship).Error(0)
}

func (m *MockShipRepo) GetByID(ctx context.Context, id int32) (*domain.Ship, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*domain.Ship), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShipRepo) List(ctx context.Context) ([]domain.Ship, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.([]domain.Ship), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShipRepo) ListByPort(ctx context.Context, port string) ([]domain.Ship, error) {
	args := m.Called(ctx, port)
	if s := args.Get(0); s != nil {
		return s.([]domain.Ship), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShipRepo) Update(ctx context.Context, ship *domain.Ship) error {
	return m.Called(ctx, ship).Error(0)
}

type MockOnboardingService struct{ mock.Mock }

func (m *MockOnboardingService) GetStatus(ctx context.Context, userID int32) (*domain.OnboardingStatus, []string, error) {
	args := m.Called(ctx, userID)
	var status *domain.OnboardingStatus
	if s := args.Get(0); s != nil {
		status = s.(*domain.OnboardingStatus)
	}
	var missing []string
	if v := args.Get(1); v != nil {
		missing = v.([]string)
	}
	return status, missing, args.Error(2)
}

func (m *MockOnboardingService) UpdateFlags(ctx context.Context, userID int32, patch domain.OnboardingPatch) (*domain.OnboardingStatus, error) {
	args := m.Called(ctx, userID, patch)
	if s := args.Get(0); s != nil {
		return s.(*domain.OnboardingStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOnboardingService) Complete(ctx context.Context, userID int32) (*domain.OnboardingStatus, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.(*domain.OnboardingStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOnboardingService) FastTrack(ctx context.Context, userID int32) (*domain.OnboardingStatus, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.(*domain.OnboardingStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOnboardingService) Requirements() []domain.Requirement {
	args := m.Called()
	if r := args.Get(0); r != nil {
		return r.([]domain.Requirement)
	}
	return nil
}

type MockNotificationService struct{ mock.Mock }

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if n := args.Get(0); n != nil {
		return n.([]domain.Notification), args.Get(1).(int32), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return m.Called(ctx, userID, notificationID).Error(0)
}

func (m *MockNotificationService) Dispatch(ctx context.Context, note *domain.Notification) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNotificationService) RegisterDevice(ctx context.Context, userID int32, token, platform string) error {
	return m.Called(ctx, userID, token, platform).Error(0)
}
