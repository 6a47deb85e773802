package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/cv-studio/internal/application/usecase/profile"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

const maxPhotoBytes = 5 << 20

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileUseCase: uc, logger: log}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}

	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}
	// profile is null until the owner saves one
	c.JSON(http.StatusOK, gin.H{"profile": output.Profile})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}

	var req cv.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	output, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), profileUC.UpdateProfileInput{
		OwnerID: ownerID,
		Profile: req,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": output.Profile})
}

func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.Error(apperror.NewInvalidInput("multipart field 'photo' is required", err))
		return
	}
	if header.Size > maxPhotoBytes {
		c.Error(apperror.NewInvalidInput("photo must be at most 5MB", nil))
		return
	}
	file, err := header.Open()
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read uploaded photo", err))
		return
	}
	defer file.Close()

	output, err := h.profileUseCase.ExecuteUploadPhoto(c.Request.Context(), profileUC.UploadPhotoInput{
		OwnerID:  ownerID,
		File:     file,
		FileName: header.Filename,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": output.Profile, "url": output.URL})
}
