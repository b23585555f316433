package service

import (
	"context"

	"crewvar-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, email, password, displayName string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                             // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	Logout(ctx context.Context, refresh string) error
	// VerifyEmail consumes a verification-link token and flips the
	// is_email_verified onboarding flag.
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, userID int32) error
}

type UserService interface {
	GetUser(ctx context.Context, userID int32) (*domain.User, error)
	// UpdateProfile merges the partial input and derives the corresponding
	// onboarding flags from field non-emptiness.
	UpdateProfile(ctx context.Context, userID int32, input UpdateProfileInput) (*domain.User, error)
	AssignShip(ctx context.Context, userID, shipID int32) (*domain.User, error)
}

// UpdateProfileInput carries a partial profile update; nil fields are left
// untouched.
type UpdateProfileInput struct {
	DisplayName  *string
	Department   *string
	Role         *string
	Subcategory  *string
	Bio          *string
	Phone        *string
	ContactEmail *string
	Instagram    *string
	Snapchat     *string
	Website      *string
}

type OnboardingService interface {
	// GetStatus never errors on an unknown user; it reports a default
	// all-false record instead.
	GetStatus(ctx context.Context, userID int32) (*domain.OnboardingStatus, []string, error)
	UpdateFlags(ctx context.Context, userID int32, patch domain.OnboardingPatch) (*domain.OnboardingStatus, error)
	// Complete is the normal end of the onboarding flow; it requires all six
	// flags to be satisfied.
	Complete(ctx context.Context, userID int32) (*domain.OnboardingStatus, error)
	// FastTrack is the operator escape hatch: it forces completion and a
	// progress of 100 regardless of the underlying flags, which can yield a
	// record that the gate still reports as incomplete.
	FastTrack(ctx context.Context, userID int32) (*domain.OnboardingStatus, error)
	Requirements() []domain.Requirement
}

type ConnectionService interface {
	SendRequest(ctx context.Context, requesterID, receiverID int32, message string) (*domain.ConnectionRequest, error)
	// Respond is receiver-only and pending-only. Declines are silent: no
	// notification reaches the requester.
	Respond(ctx context.Context, actorID, requestID int32, decision domain.ConnectionStatus) (*domain.ConnectionRequest, error)
	Cancel(ctx context.Context, actorID, requestID int32) error
	Block(ctx context.Context, actorID, counterpartyID int32) error
	Unblock(ctx context.Context, actorID, counterpartyID int32) error
	StateFor(ctx context.Context, viewerID, otherID int32) (domain.ConnectionState, error)
	List(ctx context.Context, userID int32, status string) ([]domain.ConnectionRequest, error)
}

type VisibilityService interface {
	// ViewProfile projects the owner's profile for the viewer, disclosing
	// extended fields only on an accepted connection.
	ViewProfile(ctx context.Context, viewerID, ownerID int32) (*domain.ProfileView, error)
}

type RosterService interface {
	ShipRoster(ctx context.Context, viewerID int32) ([]domain.ProfileView, error)
	// PortRoster lists crew on other ships currently docked in the same port.
	PortRoster(ctx context.Context, viewerID int32) ([]domain.ProfileView, error)
	SearchCrew(ctx context.Context, viewerID int32, query string) ([]domain.ProfileView, error)
}

type ShipService interface {
	ListShips(ctx context.Context) ([]domain.Ship, error)
	GetShip(ctx context.Context, id int32) (*domain.Ship, error)
	CreateShip(ctx context.Context, ship *domain.Ship) error
	UpdateShip(ctx context.Context, ship *domain.Ship) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
	// Dispatch persists an in-app notification and fans it out to the
	// user's registered devices, best effort.
	Dispatch(ctx context.Context, note *domain.Notification) error
	RegisterDevice(ctx context.Context, userID int32, token, platform string) error
}

type PhotoService interface {
	// GetUploadURL reserves a storage key and returns a presigned upload URL.
	GetUploadURL(ctx context.Context, userID int32, filename, contentType string) (key string, uploadURL string, err error)
	// ConfirmAvatar verifies the uploaded object, sets it as the user's
	// avatar and flips the has_profile_photo onboarding flag.
	ConfirmAvatar(ctx context.Context, userID int32, key string) (*domain.User, error)
	// ConfirmExtraPhoto attaches an uploaded object to the extended photo set.
	ConfirmExtraPhoto(ctx context.Context, userID int32, key string) error
	DeleteExtraPhoto(ctx context.Context, userID int32, url string) error
}

type EmailService interface {
	SendVerificationEmail(ctx context.Context, email, name, token string) error
	SendOnboardingReminder(ctx context.Context, email, name string, missing []string) error
}

// PushSender delivers a push message to one device token. Implemented by the
// FCM sender; nil-safe no-op when push is disabled.
type PushSender interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}
