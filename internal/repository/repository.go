package repository

import (
	"context"
	"crewvar-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListByShip(ctx context.Context, shipID int32) ([]domain.User, error)
	ListByShips(ctx context.Context, shipIDs []int32) ([]domain.User, error)
	Search(ctx context.Context, query string, limit int32) ([]domain.User, error)

	// Extended profile photos
	GetPhotos(ctx context.Context, userID int32) ([]string, error)
	AddPhoto(ctx context.Context, userID int32, url string) error
	DeletePhoto(ctx context.Context, userID int32, url string) error
}

type OnboardingRepository interface {
	// Get returns domain.ErrNotFound for a user never touched.
	Get(ctx context.Context, userID int32) (*domain.OnboardingStatus, error)
	// Apply merges the patch under a transactional read-modify-write,
	// recomputing the progress cache, and returns the resulting record.
	// Unknown users get a default all-false record first (upsert semantics).
	Apply(ctx context.Context, userID int32, patch domain.OnboardingPatch) (*domain.OnboardingStatus, error)
	// MarkComplete sets the explicit completion flag and forces progress to
	// 100 regardless of the underlying flags.
	MarkComplete(ctx context.Context, userID int32) (*domain.OnboardingStatus, error)
	ListIncompleteBefore(ctx context.Context, cutoffDays int32) ([]domain.OnboardingStatus, error)
}

type ConnectionRepository interface {
	// CreatePending inserts a pending request guarded by the
	// one-active-request-per-pair unique constraint; a concurrent duplicate
	// loses with domain.ErrAlreadyExists.
	CreatePending(ctx context.Context, req *domain.ConnectionRequest) error
	GetByID(ctx context.Context, id int32) (*domain.ConnectionRequest, error)
	// GetActiveByPair returns the pending or accepted request for the
	// unordered pair, or domain.ErrNotFound.
	GetActiveByPair(ctx context.Context, userA, userB int32) (*domain.ConnectionRequest, error)
	// UpdateStatusFromPending transitions the request to the given status
	// only if it is still pending (compare-and-set); a lost race returns
	// domain.ErrInvalidStateTransition.
	UpdateStatusFromPending(ctx context.Context, id int32, status domain.ConnectionStatus) error
	// DeletePending removes a still-pending request (requester cancel);
	// returns domain.ErrInvalidStateTransition if it is no longer pending.
	DeletePending(ctx context.Context, id int32) error
	ListByUser(ctx context.Context, userID int32, status string) ([]domain.ConnectionRequest, error)
	ListStatesForViewer(ctx context.Context, viewerID int32, userIDs []int32) (map[int32]domain.ConnectionState, error)
	PurgeDeclinedBefore(ctx context.Context, days int32) (int64, error)

	// Blocks
	CreateBlock(ctx context.Context, blockerID, blockedID int32) error
	DeleteBlock(ctx context.Context, blockerID, blockedID int32) error
	IsBlockedEitherWay(ctx context.Context, userA, userB int32) (bool, error)
	ListBlockedIDs(ctx context.Context, userID int32) ([]int32, error)
}

type ShipRepository interface {
	Create(ctx context.Context, ship *domain.Ship) error
	GetByID(ctx context.Context, id int32) (*domain.Ship, error)
	List(ctx context.Context) ([]domain.Ship, error)
	ListByPort(ctx context.Context, port string) ([]domain.Ship, error)
	Update(ctx context.Context, ship *domain.Ship) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type DeviceTokenRepository interface {
	Upsert(ctx context.Context, token *domain.DeviceToken) error
	ListByUser(ctx context.Context, userID int32) ([]domain.DeviceToken, error)
	Delete(ctx context.Context, userID int32, token string) error
}
