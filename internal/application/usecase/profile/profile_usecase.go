package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/application/service"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/logger"
	"go.uber.org/zap"
)

type ProfileUseCase struct {
	profileRepo cv.ProfileRepository
	uploader    service.Uploader
	logger      logger.Logger
}

func NewProfileUseCase(repo cv.ProfileRepository, uploader service.Uploader, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		uploader:    uploader,
		logger:      log,
	}
}

type GetProfileInput struct {
	OwnerID uuid.UUID
}

type GetProfileOutput struct {
	// Profile is nil until the owner saves one.
	Profile *cv.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.GetByOwner(ctx, input.OwnerID)
	if errors.Is(err, apperror.ErrNotFound) {
		return &GetProfileOutput{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

type UpdateProfileInput struct {
	OwnerID uuid.UUID
	Profile cv.Profile
}

type UpdateProfileOutput struct {
	Profile *cv.Profile
}

func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	now := time.Now().UTC()
	p := input.Profile
	p.OwnerID = input.OwnerID
	p.UpdatedAt = now

	existing, err := uc.profileRepo.GetByOwner(ctx, input.OwnerID)
	switch {
	case err == nil:
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		if p.ProfilePhoto == "" {
			p.ProfilePhoto = existing.ProfilePhoto
		}
	case errors.Is(err, apperror.ErrNotFound):
		p.ID = uuid.New()
		p.CreatedAt = now
	default:
		return nil, fmt.Errorf("load profile failed: %w", err)
	}

	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.profileRepo.Upsert(ctx, &p); err != nil {
		return nil, fmt.Errorf("update profile failed: %w", err)
	}
	return &UpdateProfileOutput{Profile: &p}, nil
}

type UploadPhotoInput struct {
	OwnerID  uuid.UUID
	File     io.Reader
	FileName string
}

type UploadPhotoOutput struct {
	Profile *cv.Profile
	URL     string
}

// ExecuteUploadPhoto stores the photo and points the existing profile at it.
func (uc *ProfileUseCase) ExecuteUploadPhoto(ctx context.Context, input UploadPhotoInput) (*UploadPhotoOutput, error) {
	if uc.uploader == nil {
		return nil, apperror.NewInvalidInput("photo upload is not configured", nil)
	}
	p, err := uc.profileRepo.GetByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	folder := fmt.Sprintf("users/%s/profile", input.OwnerID)
	publicID := fmt.Sprintf("photo-%d", time.Now().UTC().Unix())
	url, err := uc.uploader.Upload(ctx, input.File, folder, publicID)
	if err != nil {
		uc.logger.Error("Failed to upload profile photo", err, zap.String("owner_id", input.OwnerID.String()))
		return nil, apperror.NewInternal("failed to upload profile photo", err)
	}

	p.ProfilePhoto = url
	p.UpdatedAt = time.Now().UTC()
	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile photo failed: %w", err)
	}
	uc.logger.Info("Profile photo updated", zap.String("url", url), zap.String("file_name", input.FileName))
	return &UploadPhotoOutput{Profile: p, URL: url}, nil
}
