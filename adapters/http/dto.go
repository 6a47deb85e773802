package http

import (
	"github.com/google/uuid"

	"github.com/khoahotran/cv-studio/internal/core/aiexport"
	"github.com/khoahotran/cv-studio/internal/core/reconcile"
	"github.com/khoahotran/cv-studio/internal/domain/template"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ImportTemplateResponse struct {
	Template *template.Template `json:"template"`
	Warnings []string           `json:"warnings"`
	Meta     reconcile.Meta     `json:"meta"`
	Created  bool               `json:"created"`
}

type CreateExportRequest struct {
	Format     string     `json:"format" binding:"required,oneof=json ai pdf"`
	TemplateID *uuid.UUID `json:"templateId"`
}

type ExportResponse struct {
	DownloadID  string `json:"downloadId"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

type RewriteRequest struct {
	Instruction string     `json:"instruction" binding:"required"`
	TemplateID  *uuid.UUID `json:"templateId"`
}

type RewriteResponse struct {
	Document any      `json:"document,omitempty"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
}

func ToRewriteResponse(doc any, res aiexport.Result) RewriteResponse {
	errs := res.Errors
	if errs == nil {
		errs = []string{}
	}
	return RewriteResponse{Document: doc, Valid: res.Valid, Errors: errs}
}
