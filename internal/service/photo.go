package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/repository"
	"crewvar-backend/internal/storage"

	"github.com/google/uuid"
)

const (
	uploadURLTTL      = 15 * time.Minute
	downloadURLTTL    = 24 * time.Hour
	maxExtendedPhotos = 6
	maxPhotoSizeBytes = 10 << 20
)

var allowedPhotoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type photoService struct {
	userRepo      repository.UserRepository
	onboardingSvc OnboardingService
	store         storage.StorageInterface
}

func NewPhotoService(
	userRepo repository.UserRepository,
	onboardingSvc OnboardingService,
	store storage.StorageInterface,
) PhotoService {
	return &photoService{
		userRepo:      userRepo,
		onboardingSvc: onboardingSvc,
		store:         store,
	}
}

func (s *photoService) GetUploadURL(ctx context.Context, userID int32, filename, contentType string) (string, string, error) {
	ext, ok := allowedPhotoTypes[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported content type %q", domain.ErrValidation, contentType)
	}
	// The original filename only contributes its extension when it matches.
	if e := strings.ToLower(path.Ext(filename)); e == ext || (e == ".jpeg" && ext == ".jpg") {
		ext = e
	}
	key := fmt.Sprintf("users/%d/%s%s", userID, uuid.NewString(), ext)
	url, err := s.store.GeneratePresignedUploadURL(ctx, key, contentType, uploadURLTTL)
	if err != nil {
		return "", "", fmt.Errorf("generate upload url: %w", err)
	}
	return key, url, nil
}

// ConfirmAvatar finalizes an upload as the user's profile photo. Having an
// avatar satisfies the profile-photo onboarding requirement.
func (s *photoService) ConfirmAvatar(ctx context.Context, userID int32, key string) (*domain.User, error) {
	url, err := s.confirmUpload(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if _, err := s.onboardingSvc.UpdateFlags(ctx, userID, domain.OnboardingPatch{HasProfilePhoto: boolPtr(true)}); err != nil {
		return nil, fmt.Errorf("update onboarding flag: %w", err)
	}
	return user, nil
}

func (s *photoService) ConfirmExtraPhoto(ctx context.Context, userID int32, key string) error {
	existing, err := s.userRepo.GetPhotos(ctx, userID)
	if err != nil {
		return err
	}
	if len(existing) >= maxExtendedPhotos {
		return fmt.Errorf("%w: at most %d extended photos", domain.ErrValidation, maxExtendedPhotos)
	}
	url, err := s.confirmUpload(ctx, userID, key)
	if err != nil {
		return err
	}
	return s.userRepo.AddPhoto(ctx, userID, url)
}

func (s *photoService) DeleteExtraPhoto(ctx context.Context, userID int32, url string) error {
	existing, err := s.userRepo.GetPhotos(ctx, userID)
	if err != nil {
		return err
	}
	found := false
	for _, p := range existing {
		if p == url {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: photo", domain.ErrNotFound)
	}
	return s.userRepo.DeletePhoto(ctx, userID, url)
}

// confirmUpload checks the object landed under the caller's own prefix and
// within the size cap, then issues a long-lived download URL for it.
func (s *photoService) confirmUpload(ctx context.Context, userID int32, key string) (string, error) {
	prefix := fmt.Sprintf("users/%d/", userID)
	if !strings.HasPrefix(key, prefix) || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: key does not belong to caller", domain.ErrUnauthorized)
	}
	exists, size, err := s.store.FileExists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("check upload: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: uploaded object", domain.ErrNotFound)
	}
	if size > maxPhotoSizeBytes {
		_ = s.store.DeleteFile(ctx, key)
		return "", fmt.Errorf("%w: photo exceeds size limit", domain.ErrValidation)
	}
	url, err := s.store.GeneratePresignedDownloadURL(ctx, key, downloadURLTTL)
	if err != nil {
		return "", fmt.Errorf("generate download url: %w", err)
	}
	return url, nil
}
