package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kodamai/recruitr/internal/config"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// OpenRouterService talks to the OpenAI-compatible chat completions
// endpoint at OpenRouter. Alternative CompletionService provider,
// selected with AI_PROVIDER=openrouter.
type OpenRouterService struct {
	client       *resty.Client
	apiKey       string
	defaultModel string
	logger       *zap.Logger
}

func NewOpenRouterService(logger *zap.Logger) *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(90 * time.Second)
	return &OpenRouterService{
		client:       client,
		apiKey:       cfg.APIKey,
		defaultModel: cfg.Model,
		logger:       logger,
	}
}

func (s *OpenRouterService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("completion request has no messages")
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	messages := make([]map[string]string, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, map[string]string{
			"role":    m.Role,
			"content": m.Content,
		})
	}

	body := map[string]any{
		"model":       model,
		"messages":    messages,
		"temperature": req.Temperature,
	}
	if req.JSONResponse {
		body["response_format"] = map[string]string{"type": "json_object"}
	}
	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}

	if resp.IsError() {
		s.logger.Warn("openrouter returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()))
		return "", fmt.Errorf("openrouter returned status %d", resp.StatusCode())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no completion content in openrouter response")
	}
	return text, nil
}
