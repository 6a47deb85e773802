package template

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/application/usecase/cvdata"
	"github.com/khoahotran/cv-studio/internal/core/reconcile"
	"github.com/khoahotran/cv-studio/internal/domain/template"
	"github.com/khoahotran/cv-studio/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("template_usecase")

type ImportTemplateUseCase struct {
	loader    *cvdata.Loader
	templates *TemplateUseCase
	logger    logger.Logger
	now       func() time.Time
}

func NewImportTemplateUseCase(loader *cvdata.Loader, templates *TemplateUseCase, log logger.Logger) *ImportTemplateUseCase {
	return &ImportTemplateUseCase{loader: loader, templates: templates, logger: log, now: time.Now}
}

type ImportTemplateInput struct {
	OwnerID uuid.UUID
	// Document is the decoded JSON of the uploaded file.
	Document any
	// TargetID imports into an existing template instead of creating one.
	TargetID *uuid.UUID
}

type ImportTemplateOutput struct {
	Template *template.Template
	Warnings []string
	Meta     reconcile.Meta
	Created  bool
}

func (uc *ImportTemplateUseCase) Execute(ctx context.Context, input ImportTemplateInput) (*ImportTemplateOutput, error) {
	ctx, span := tracer.Start(ctx, "ImportTemplate")
	defer span.End()

	var existing *template.Template
	opts := reconcile.Options{Now: uc.now}
	if input.TargetID != nil {
		var err error
		existing, err = uc.templates.Get(ctx, *input.TargetID, input.OwnerID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		opts = reconcile.OptionsFor(existing.Input)
		opts.Now = uc.now
	}

	records, err := uc.loader.Records(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	res := reconcile.Reconcile(input.Document, records, opts)
	if len(res.Warnings) > 0 {
		uc.logger.Warn("Template import left items unmatched",
			zap.Strings("unmatched_experiences", res.Debug.UnmatchedExperiences),
			zap.Strings("unmatched_education", res.Debug.UnmatchedEducation),
			zap.Strings("unmatched_skills", res.Debug.UnmatchedSkills),
		)
	}
	span.SetAttributes(
		attribute.Int("matched_experiences", res.Meta.MatchedExperienceCount),
		attribute.Int("matched_education", res.Meta.MatchedEducationCount),
		attribute.Int("matched_skills", res.Meta.MatchedSkillCount),
		attribute.Int("warnings", len(res.Warnings)),
	)

	out := &ImportTemplateOutput{Warnings: res.Warnings, Meta: res.Meta}
	if existing == nil {
		out.Template, err = uc.templates.Create(ctx, input.OwnerID, res.Input)
		out.Created = true
	} else {
		out.Template, err = uc.templates.Update(ctx, existing.ID, input.OwnerID, res.ApplyTo(existing.Input))
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}
