package profile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/internal/mocks"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetProfileMissingIsEmpty(t *testing.T) {
	repo := &mocks.ProfileRepository{}
	owner := uuid.New()
	repo.On("GetByOwner", mock.Anything, owner).Return(nil, apperror.NewNotFound("profile", owner.String()))

	out, err := NewProfileUseCase(repo, &mocks.Uploader{}, logger.NewNop()).ExecuteGetProfile(context.Background(), GetProfileInput{OwnerID: owner})
	require.NoError(t, err)
	assert.Nil(t, out.Profile)
}

func TestUpdateProfileKeepsIdentityAndPhoto(t *testing.T) {
	repo := &mocks.ProfileRepository{}
	owner := uuid.New()
	existing := &cv.Profile{ID: uuid.New(), OwnerID: owner, FullName: "Old", ProfilePhoto: "https://img/1.png"}
	repo.On("GetByOwner", mock.Anything, owner).Return(existing, nil)
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*cv.Profile")).Return(nil)

	out, err := NewProfileUseCase(repo, &mocks.Uploader{}, logger.NewNop()).ExecuteUpdateProfile(context.Background(), UpdateProfileInput{
		OwnerID: owner,
		Profile: cv.Profile{FullName: " Jane ", Email: "jane@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, out.Profile.ID)
	assert.Equal(t, "Jane", out.Profile.FullName)
	assert.Equal(t, "https://img/1.png", out.Profile.ProfilePhoto)
	assert.NotNil(t, out.Profile.CoreStrengths)
}

func TestUpdateProfileValidates(t *testing.T) {
	repo := &mocks.ProfileRepository{}
	owner := uuid.New()
	repo.On("GetByOwner", mock.Anything, owner).Return(nil, apperror.NewNotFound("profile", owner.String()))

	_, err := NewProfileUseCase(repo, &mocks.Uploader{}, logger.NewNop()).ExecuteUpdateProfile(context.Background(), UpdateProfileInput{
		OwnerID: owner,
		Profile: cv.Profile{Email: "not-an-email"},
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUploadPhoto(t *testing.T) {
	repo := &mocks.ProfileRepository{}
	up := &mocks.Uploader{}
	owner := uuid.New()
	p := &cv.Profile{ID: uuid.New(), OwnerID: owner, FullName: "Jane"}
	repo.On("GetByOwner", mock.Anything, owner).Return(p, nil)
	repo.On("Upsert", mock.Anything, p).Return(nil)
	up.On("Upload", mock.Anything, mock.Anything, "users/"+owner.String()+"/profile", mock.AnythingOfType("string")).
		Return("https://cdn/photo.png", nil)

	out, err := NewProfileUseCase(repo, up, logger.NewNop()).ExecuteUploadPhoto(context.Background(), UploadPhotoInput{
		OwnerID: owner, File: strings.NewReader("img"), FileName: "me.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/photo.png", out.Profile.ProfilePhoto)
}

func TestUploadPhotoFailureLeavesProfile(t *testing.T) {
	repo := &mocks.ProfileRepository{}
	up := &mocks.Uploader{}
	owner := uuid.New()
	p := &cv.Profile{ID: uuid.New(), OwnerID: owner, FullName: "Jane"}
	repo.On("GetByOwner", mock.Anything, owner).Return(p, nil)
	up.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("quota"))

	_, err := NewProfileUseCase(repo, up, logger.NewNop()).ExecuteUploadPhoto(context.Background(), UploadPhotoInput{OwnerID: owner, File: strings.NewReader("x")})
	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.Empty(t, p.ProfilePhoto)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
