package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/bom70489/YDP/internal/domain"
	"github.com/bom70489/YDP/internal/metrics"
)

// Judge scores candidates through an OpenAI-compatible chat completion API.
// Transport and provider failures are wrapped with domain.ErrJudgeUnavailable
// so callers can fall back to vector order.
type Judge struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// JudgeConfig holds the chat judge settings.
type JudgeConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewJudge creates an OpenAI-compatible chat judge.
func NewJudge(cfg *JudgeConfig) *Judge {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Judge{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Complete implements domain.Judge. Temperature is pinned to zero so
// repeated reranks of the same window stay deterministic.
func (j *Judge) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: j.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0,
	}

	start := time.Now()

	resp, err := j.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.JudgeRequestsTotal.WithLabelValues(j.model, "error").Inc()
		return "", parseJudgeError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.JudgeRequestsTotal.WithLabelValues(j.model, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrJudgeUnavailable)
	}

	metrics.JudgeRequestsTotal.WithLabelValues(j.model, "success").Inc()

	j.logger.Debug("judge completion",
		zap.String("model", j.model),
		zap.Duration("duration", duration),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

func parseJudgeError(err error) error {
	wrap := domain.ErrJudgeUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("judge API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("judge API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("judge request failed: %w", wrap)
}
