package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/cv-studio/internal/application/service"
	"github.com/khoahotran/cv-studio/internal/application/usecase/cvdata"
	"github.com/khoahotran/cv-studio/internal/core/aiexport"
	"github.com/khoahotran/cv-studio/pkg/apperror"
	"github.com/khoahotran/cv-studio/pkg/jsonx"
	"github.com/khoahotran/cv-studio/pkg/logger"
	"go.uber.org/zap"
)

type AIUseCase struct {
	loader *cvdata.Loader
	editor service.AIEditor
	logger logger.Logger
	now    func() time.Time
}

func NewAIUseCase(loader *cvdata.Loader, editor service.AIEditor, log logger.Logger) *AIUseCase {
	return &AIUseCase{loader: loader, editor: editor, logger: log, now: time.Now}
}

// Validate checks a document returned by an external editor.
func (uc *AIUseCase) Validate(doc any) (aiexport.Result, error) {
	res, err := aiexport.ValidateStrict(doc)
	if err != nil {
		return aiexport.Result{}, apperror.NewInternal("AI export schema unavailable", err)
	}
	return res, nil
}

type RewriteInput struct {
	OwnerID     uuid.UUID
	TemplateID  *uuid.UUID
	Instruction string
}

type RewriteOutput struct {
	Document any
	Result   aiexport.Result
}

// Rewrite sends the AI export to the configured model and validates what it
// returns. Nothing is persisted.
func (uc *AIUseCase) Rewrite(ctx context.Context, input RewriteInput) (*RewriteOutput, error) {
	ctx, span := tracer.Start(ctx, "RewriteWithAI")
	defer span.End()

	if uc.editor == nil {
		return nil, apperror.NewInvalidInput("AI editing is not configured", nil)
	}
	instruction := strings.TrimSpace(input.Instruction)
	if instruction == "" {
		return nil, apperror.NewInvalidInput("instruction is required", nil)
	}

	projection, _, err := uc.loader.Projection(ctx, input.OwnerID, input.TemplateID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	payload, err := json.Marshal(aiexport.Format(projection, uc.now()))
	if err != nil {
		return nil, apperror.NewInternal("failed to encode AI export", err)
	}

	reply, err := uc.editor.EditDocument(ctx, instruction, payload)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("AI editor call failed", err)
		return nil, apperror.NewAppError(apperror.ErrExportFailed, "AI editing failed", "the model did not return a document", err)
	}

	doc, err := jsonx.Decode(extractJSON(reply))
	if err != nil {
		uc.logger.Warn("AI editor returned malformed JSON", zap.Int("bytes", len(reply)))
		return &RewriteOutput{Result: aiexport.Result{
			Valid:  false,
			Errors: []string{fmt.Sprintf("Response is not valid JSON: %v", err)},
		}}, nil
	}

	res, err := uc.Validate(doc)
	if err != nil {
		return nil, err
	}
	return &RewriteOutput{Document: doc, Result: res}, nil
}

// extractJSON trims prose or code fences around the outermost JSON object.
func extractJSON(reply []byte) []byte {
	s := string(reply)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return reply
	}
	return []byte(s[start : end+1])
}
