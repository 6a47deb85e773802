package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/cv-studio/pkg/apperror"
)

// crudUseCase is the shape shared by the record and template use cases.
// In is the request body, Out what is stored and returned.
type crudUseCase[In any, Out any] interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]*Out, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*Out, error)
	Create(ctx context.Context, ownerID uuid.UUID, in In) (*Out, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, in In) (*Out, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// CRUDHandler exposes one record collection under a route group.
type CRUDHandler[In any, Out any] struct {
	resource string
	uc       crudUseCase[In, Out]
}

func NewCRUDHandler[In any, Out any](resource string, uc crudUseCase[In, Out]) *CRUDHandler[In, Out] {
	return &CRUDHandler[In, Out]{resource: resource, uc: uc}
}

func (h *CRUDHandler[In, Out]) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

func (h *CRUDHandler[In, Out]) List(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}
	items, err := h.uc.List(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *CRUDHandler[In, Out]) Get(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.uc.Get(c.Request.Context(), id, ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CRUDHandler[In, Out]) Create(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for "+h.resource, err))
		return
	}
	item, err := h.uc.Create(c.Request.Context(), ownerID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CRUDHandler[In, Out]) Update(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for "+h.resource, err))
		return
	}
	item, err := h.uc.Update(c.Request.Context(), id, ownerID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CRUDHandler[In, Out]) Delete(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id, ownerID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
