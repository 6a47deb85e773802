package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	exportUC "github.com/khoahotran/cv-studio/internal/application/usecase/export"
	"github.com/khoahotran/cv-studio/internal/domain/user"
)

// PublicHandler serves the owner's default CV without authentication.
type PublicHandler struct {
	users   user.Repository
	preview *exportUC.PreviewUseCase
}

func NewPublicHandler(users user.Repository, preview *exportUC.PreviewUseCase) *PublicHandler {
	return &PublicHandler{users: users, preview: preview}
}

func (h *PublicHandler) GetCV(c *gin.Context) {
	owner, err := h.users.FindOwner(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	view, err := h.preview.Public(c.Request.Context(), owner.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}
