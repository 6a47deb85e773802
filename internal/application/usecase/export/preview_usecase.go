package export

import (
	"context"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/application/usecase/cvdata"
	"github.com/khoahotran/cv-studio/internal/core/render"
	"github.com/khoahotran/cv-studio/pkg/apperror"
)

type PreviewUseCase struct {
	loader *cvdata.Loader
}

func NewPreviewUseCase(loader *cvdata.Loader) *PreviewUseCase {
	return &PreviewUseCase{loader: loader}
}

// View builds the rendered view of a template, or of every record when
// templateID is nil.
func (uc *PreviewUseCase) View(ctx context.Context, ownerID uuid.UUID, templateID *uuid.UUID) (render.View, error) {
	projection, _, err := uc.loader.Projection(ctx, ownerID, templateID)
	if err != nil {
		return render.View{}, err
	}
	return render.Build(projection), nil
}

// HTML renders the same view as a standalone A4 document.
func (uc *PreviewUseCase) HTML(ctx context.Context, ownerID uuid.UUID, templateID *uuid.UUID) ([]byte, error) {
	view, err := uc.View(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}
	html, err := render.Document(view)
	if err != nil {
		return nil, apperror.NewInternal("failed to render preview", err)
	}
	return html, nil
}

// Public renders the owner's default template.
func (uc *PreviewUseCase) Public(ctx context.Context, ownerID uuid.UUID) (render.View, error) {
	projection, err := uc.loader.DefaultProjection(ctx, ownerID)
	if err != nil {
		return render.View{}, err
	}
	return render.Build(projection), nil
}
