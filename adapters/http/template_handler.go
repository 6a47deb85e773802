package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	exportUC "github.com/khoahotran/cv-studio/internal/application/usecase/export"
	templateUC "github.com/khoahotran/cv-studio/internal/application/usecase/template"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/jsonx"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

const maxImportBytes = 2 << 20

type TemplateHandler struct {
	importUseCase  *templateUC.ImportTemplateUseCase
	previewUseCase *exportUC.PreviewUseCase
	logger         logger.Logger
}

func NewTemplateHandler(importUC *templateUC.ImportTemplateUseCase, previewUC *exportUC.PreviewUseCase, log logger.Logger) *TemplateHandler {
	return &TemplateHandler{importUseCase: importUC, previewUseCase: previewUC, logger: log}
}

// readDocument accepts the JSON either as the request body or as a multipart
// "file" field.
func readDocument(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			return nil, apperror.NewInvalidInput("multipart field 'file' is required", err)
		}
		f, err := header.Open()
		if err != nil {
			return nil, apperror.NewInvalidInput("cannot read uploaded file", err)
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxImportBytes))
	}
	return io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
}

// Import reconciles an uploaded template JSON against the owner's records.
// Unreadable JSON is rejected before anything is touched.
func (h *TemplateHandler) Import(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}
	targetID, ok := optionalID(c, "targetId")
	if !ok {
		return
	}

	raw, err := readDocument(c)
	if err != nil {
		c.Error(err)
		return
	}
	doc, err := jsonx.Decode(raw)
	if err != nil {
		c.Error(apperror.NewInvalidInput("Invalid JSON file", err))
		return
	}

	output, err := h.importUseCase.Execute(c.Request.Context(), templateUC.ImportTemplateInput{
		OwnerID:  ownerID,
		Document: doc,
		TargetID: targetID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	c.JSON(status, ImportTemplateResponse{
		Template: output.Template,
		Warnings: output.Warnings,
		Meta:     output.Meta,
		Created:  output.Created,
	})
}

// Preview returns the rendered view, or the printable page with ?format=html.
func (h *TemplateHandler) Preview(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}
	templateID, ok := optionalID(c, "templateId")
	if !ok {
		return
	}

	if c.Query("format") == "html" {
		html, err := h.previewUseCase.HTML(c.Request.Context(), ownerID, templateID)
		if err != nil {
			c.Error(err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
		return
	}

	view, err := h.previewUseCase.View(c.Request.Context(), ownerID, templateID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}
