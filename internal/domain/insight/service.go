package insight

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/cemuzun/pagelens/internal/infra/llm/chatgpt"
	apperrors "github.com/cemuzun/pagelens/pkg/errors"
	"github.com/cemuzun/pagelens/pkg/metrics"
)

// Service exposes the PageSpeed relay capabilities.
type Service interface {
	Audit(ctx context.Context, req AuditRequest) (json.RawMessage, error)
	Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error)
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type PageSpeedClient interface {
	Fetch(ctx context.Context, pageURL, strategy string) (json.RawMessage, error)
}

type service struct {
	cfg       Config
	pagespeed PageSpeedClient
	chat      ChatClient
	logger    *slog.Logger
}

// NewService wires up the insight domain.
func NewService(cfg Config, pagespeed PageSpeedClient, chat ChatClient, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		pagespeed: pagespeed,
		chat:      chat,
		logger:    logger.With("component", "insight.service"),
	}
}

// Audit fetches a raw PageSpeed report and returns it verbatim. Upstream
// failure detail is logged but never surfaced to the caller.
func (s *service) Audit(ctx context.Context, req AuditRequest) (json.RawMessage, error) {
	pageURL := strings.TrimSpace(req.URL)
	if pageURL == "" {
		return nil, apperrors.Wrap("invalid_input", "url is required", nil)
	}
	strategy, err := s.resolveStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}

	raw, err := s.pagespeed.Fetch(ctx, pageURL, strategy)
	if err != nil {
		s.logger.Error("pagespeed fetch failed", "url", pageURL, "strategy", strategy, "error", err)
		return nil, apperrors.Wrap("pagespeed_error", "failed to fetch PageSpeed data", nil)
	}
	s.logger.Info("pagespeed report fetched", "url", pageURL, "strategy", strategy, "bytes", len(raw))
	return raw, nil
}

// Analyze reduces a fetched payload to a Summary and asks the language model
// for a prose report.
func (s *service) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error) {
	data := strings.TrimSpace(string(req.PagespeedData))
	if data == "" || data == "null" {
		return AnalyzeResponse{}, apperrors.Wrap("invalid_input", "pagespeedData is required", nil)
	}

	var payload AuditPayload
	if err := json.Unmarshal(req.PagespeedData, &payload); err != nil {
		return AnalyzeResponse{}, apperrors.Wrap("invalid_input", "pagespeedData is not a valid PageSpeed payload", err)
	}
	summary, err := Summarize(&payload)
	if err != nil {
		return AnalyzeResponse{}, apperrors.Wrap("invalid_input", "pagespeedData is not a valid PageSpeed payload", err)
	}

	messages := []chatgpt.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt(summary)},
	}
	s.logPromptTokens(messages)

	completion, err := s.chat.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		s.logger.Error("chatgpt request failed", "error", err)
		return AnalyzeResponse{}, apperrors.Wrap("llm_error", "failed to generate analysis", nil)
	}

	analysis := fallbackAnalysis
	if len(completion.Choices) > 0 {
		if content := strings.TrimSpace(completion.Choices[0].Message.Content); content != "" {
			analysis = content
		}
	}

	usage := metrics.TokenUsage{
		PromptTokens:     completion.Usage.PromptTokens,
		CompletionTokens: completion.Usage.CompletionTokens,
		TotalTokens:      completion.Usage.TotalTokens,
	}
	if !usage.IsZero() {
		s.logger.Info("analysis generated",
			"prompt_tokens", usage.PromptTokens,
			"completion_tokens", usage.CompletionTokens,
			"total_tokens", usage.TotalTokens)
	}

	return AnalyzeResponse{Analysis: analysis}, nil
}

func (s *service) resolveStrategy(input string) (string, error) {
	strategy := strings.ToLower(strings.TrimSpace(input))
	if strategy == "" {
		return s.cfg.DefaultStrategy, nil
	}
	if strategy != "desktop" && strategy != "mobile" {
		return "", apperrors.Wrap("invalid_input", "strategy must be desktop or mobile", nil)
	}
	return strategy, nil
}

// logPromptTokens estimates the prompt size before the call. The encoding
// lookup can fail offline; that only costs the log line.
func (s *service) logPromptTokens(messages []chatgpt.Message) {
	enc, err := tiktoken.EncodingForModel(s.cfg.Model)
	if err != nil {
		s.logger.Debug("token encoding unavailable", "model", s.cfg.Model, "error", err)
		return
	}
	total := 0
	for _, msg := range messages {
		total += len(enc.Encode(msg.Content, nil, nil))
	}
	s.logger.Info("analysis prompt built", "prompt_tokens", total, "max_tokens", s.cfg.MaxTokens)
}
