package service

import (
	"context"
	"fmt"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/logger"
	"crewvar-backend/internal/repository"
)

type notificationService struct {
	noteRepo   repository.NotificationRepository
	deviceRepo repository.DeviceTokenRepository
	push       PushSender
}

func NewNotificationService(
	noteRepo repository.NotificationRepository,
	deviceRepo repository.DeviceTokenRepository,
	push PushSender,
) NotificationService {
	return &notificationService{
		noteRepo:   noteRepo,
		deviceRepo: deviceRepo,
		push:       push,
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.noteRepo.List(ctx, userID, pageSize, (page-1)*pageSize)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}

// Dispatch stores the in-app record first; push delivery failures are logged
// and never propagate to the caller.
func (s *notificationService) Dispatch(ctx context.Context, note *domain.Notification) error {
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}

	if s.push == nil {
		return nil
	}
	tokens, err := s.deviceRepo.ListByUser(ctx, note.UserID)
	if err != nil {
		logger.Warn("Failed to load device tokens for push", "error", err, "user_id", note.UserID)
		return nil
	}
	for _, t := range tokens {
		if err := s.push.Send(ctx, t.Token, note.Title, note.Message, note.Attributes); err != nil {
			logger.Warn("Push delivery failed",
				"error", err,
				"user_id", note.UserID,
				"platform", t.Platform)
		}
	}
	return nil
}

func (s *notificationService) RegisterDevice(ctx context.Context, userID int32, token, platform string) error {
	if token == "" {
		return fmt.Errorf("%w: device token is required", domain.ErrValidation)
	}
	switch platform {
	case "ios", "android", "web":
	default:
		return fmt.Errorf("%w: unknown platform %q", domain.ErrValidation, platform)
	}
	return s.deviceRepo.Upsert(ctx, &domain.DeviceToken{
		UserID:   userID,
		Token:    token,
		Platform: platform,
	})
}
