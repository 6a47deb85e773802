package cvdata

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/internal/domain/template"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("cvdata_usecase")

// Loader reads an owner's records and resolves template projections.
type Loader struct {
	profiles    cv.ProfileRepository
	experiences cv.ExperienceRepository
	education   cv.EducationRepository
	skills      cv.SkillRepository
	templates   template.Repository
}

func NewLoader(
	profiles cv.ProfileRepository,
	experiences cv.ExperienceRepository,
	education cv.EducationRepository,
	skills cv.SkillRepository,
	templates template.Repository,
) *Loader {
	return &Loader{
		profiles:    profiles,
		experiences: experiences,
		education:   education,
		skills:      skills,
		templates:   templates,
	}
}

// Records loads the four record kinds concurrently. A missing profile is not
// an error.
func (l *Loader) Records(ctx context.Context, ownerID uuid.UUID) (cv.Records, error) {
	ctx, span := tracer.Start(ctx, "Records")
	defer span.End()

	var out cv.Records
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := l.profiles.GetByOwner(gctx, ownerID)
		if errors.Is(err, apperror.ErrNotFound) {
			return nil
		}
		out.Profile = p
		return err
	})
	g.Go(func() (err error) {
		out.Experiences, err = l.experiences.ListByOwner(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		out.Education, err = l.education.ListByOwner(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		out.Skills, err = l.skills.ListByOwner(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return cv.Records{}, err
	}
	return out.Sorted(), nil
}

// Projection returns the records visible through templateID, or every record
// when templateID is nil. The template is returned alongside when used.
func (l *Loader) Projection(ctx context.Context, ownerID uuid.UUID, templateID *uuid.UUID) (cv.Records, *template.Template, error) {
	var tpl *template.Template
	if templateID != nil {
		var err error
		tpl, err = l.templates.FindByID(ctx, *templateID, ownerID)
		if err != nil {
			return cv.Records{}, nil, err
		}
	}

	all, err := l.Records(ctx, ownerID)
	if err != nil {
		return cv.Records{}, nil, err
	}
	if tpl == nil {
		return all, nil, nil
	}
	return tpl.Project(all), tpl, nil
}

// DefaultProjection resolves the owner's default template, falling back to
// every record when none is marked default.
func (l *Loader) DefaultProjection(ctx context.Context, ownerID uuid.UUID) (cv.Records, error) {
	all, err := l.Records(ctx, ownerID)
	if err != nil {
		return cv.Records{}, err
	}
	tpl, err := l.templates.FindDefault(ctx, ownerID)
	if errors.Is(err, apperror.ErrNotFound) {
		return all, nil
	}
	if err != nil {
		return cv.Records{}, err
	}
	return tpl.Project(all), nil
}
