package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-studio/internal/application/service"
	"github.com/khoahotran/cv-studio/internal/config"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

const systemPrompt = `You edit CV data exported as JSON. Follow the instructions and modificationGuidelines inside the document.
Reply with the complete modified JSON document only, with the same structure and no commentary.`

type openAIEditor struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     logger.Logger
}

// NewOpenAIEditor talks to any OpenAI-compatible chat endpoint (OpenAI,
// Ollama, vLLM) selected by llm.base_url.
func NewOpenAIEditor(cfg config.Config, log logger.Logger) (service.AIEditor, error) {
	if cfg.LLM.BaseURL == "" && cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("llm base_url or api_key is not configured")
	}

	apiKey := cfg.LLM.APIKey
	if apiKey == "" {
		apiKey = "dummy-key"
	}
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.LLM.BaseURL != "" {
		clientCfg.BaseURL = cfg.LLM.BaseURL
	}

	log.Info("LLM editor initialized", zap.String("base_url", clientCfg.BaseURL), zap.String("model", cfg.LLM.Model))
	return &openAIEditor{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.LLM.Model,
		timeout: cfg.LLM.Timeout,
		log:     log,
	}, nil
}

func (a *openAIEditor) EditDocument(ctx context.Context, instruction string, document []byte) ([]byte, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: instruction + "\n\n" + string(document)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("model returned no chat choices")
	}

	a.log.Debug("LLM edit completed", zap.Int("prompt_tokens", resp.Usage.PromptTokens), zap.Int("completion_tokens", resp.Usage.CompletionTokens))
	return []byte(resp.Choices[0].Message.Content), nil
}
