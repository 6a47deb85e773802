package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	exportUC "github.com/khoahotran/cv-studio/internal/application/usecase/export"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/jsonx"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

type ExportHandler struct {
	exportUseCase *exportUC.ExportUseCase
	aiUseCase     *exportUC.AIUseCase
	logger        logger.Logger
}

func NewExportHandler(uc *exportUC.ExportUseCase, aiUC *exportUC.AIUseCase, log logger.Logger) *ExportHandler {
	return &ExportHandler{exportUseCase: uc, aiUseCase: aiUC, logger: log}
}

func (h *ExportHandler) CreateExport(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}
	var req CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput(err.Error(), err))
		return
	}
	format, err := exportUC.ParseFormat(req.Format)
	if err != nil {
		c.Error(err)
		return
	}

	output, err := h.exportUseCase.Execute(c.Request.Context(), exportUC.ExportInput{
		OwnerID:    ownerID,
		TemplateID: req.TemplateID,
		Format:     format,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ExportResponse{
		DownloadID:  output.DownloadID,
		FileName:    output.FileName,
		ContentType: output.ContentType,
		Size:        output.Size,
	})
}

func (h *ExportHandler) Download(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}
	file, err := h.exportUseCase.Download(c.Request.Context(), ownerID, c.Param("downloadId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *ExportHandler) ValidateAI(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read body", err))
		return
	}
	doc, err := jsonx.Decode(raw)
	if err != nil {
		c.Error(apperror.NewInvalidInput("Invalid JSON file", err))
		return
	}
	res, err := h.aiUseCase.Validate(doc)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToRewriteResponse(nil, res))
}

func (h *ExportHandler) RewriteAI(c *gin.Context) {
	ownerID, ok := mustOwner(c)
	if !ok {
		return
	}
	var req RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput(err.Error(), err))
		return
	}
	output, err := h.aiUseCase.Rewrite(c.Request.Context(), exportUC.RewriteInput{
		OwnerID:     ownerID,
		TemplateID:  req.TemplateID,
		Instruction: req.Instruction,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToRewriteResponse(output.Document, output.Result))
}
