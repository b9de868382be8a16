package insight

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cemuzun/pagelens/internal/infra/llm/chatgpt"
	apperrors "github.com/cemuzun/pagelens/pkg/errors"
)

func newTestService(pagespeed PageSpeedClient, chat ChatClient) *service {
	return &service{
		cfg: Config{
			Model:           "gpt-4o-mini",
			Temperature:     0.4,
			MaxTokens:       2048,
			DefaultStrategy: "desktop",
		},
		pagespeed: pagespeed,
		chat:      chat,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func chatResponse(t *testing.T, raw string) chatgpt.ChatCompletionResponse {
	t.Helper()
	var resp chatgpt.ChatCompletionResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return resp
}

func TestAuditRequiresURL(t *testing.T) {
	svc := newTestService(&stubPageSpeedClient{}, &stubChatClient{})

	_, err := svc.Audit(context.Background(), AuditRequest{URL: "  "})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestAuditDefaultsToDesktop(t *testing.T) {
	ps := &stubPageSpeedClient{raw: json.RawMessage(`{"ok":true}`)}
	svc := newTestService(ps, &stubChatClient{})

	raw, err := svc.Audit(context.Background(), AuditRequest{URL: "https://example.com"})
	require.NoError(t, err)
	require.Equal(t, `{"ok":true}`, string(raw))
	require.Equal(t, "https://example.com", ps.lastURL)
	require.Equal(t, "desktop", ps.lastStrategy)
}

func TestAuditRejectsUnknownStrategy(t *testing.T) {
	svc := newTestService(&stubPageSpeedClient{}, &stubChatClient{})

	_, err := svc.Audit(context.Background(), AuditRequest{URL: "https://example.com", Strategy: "tablet"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestAuditFetchFailureIsGeneric(t *testing.T) {
	ps := &stubPageSpeedClient{err: errors.New("dial tcp: connection refused")}
	svc := newTestService(ps, &stubChatClient{})

	_, err := svc.Audit(context.Background(), AuditRequest{URL: "https://example.com"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "pagespeed_error"))
	// Upstream detail stays in the logs, not in the caller-visible error.
	require.NotContains(t, err.Error(), "connection refused")
}

func TestAnalyzeRequiresPayload(t *testing.T) {
	svc := newTestService(&stubPageSpeedClient{}, &stubChatClient{})

	for _, raw := range []string{"", "null", "  "} {
		_, err := svc.Analyze(context.Background(), AnalyzeRequest{PagespeedData: json.RawMessage(raw)})
		require.True(t, apperrors.IsCode(err, "invalid_input"), "payload %q", raw)
	}
}

func TestAnalyzeRejectsNonObjectPayload(t *testing.T) {
	svc := newTestService(&stubPageSpeedClient{}, &stubChatClient{})

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{PagespeedData: json.RawMessage(`"just a string"`)})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestAnalyzeSuccess(t *testing.T) {
	chat := &stubChatClient{
		response: chatResponse(t, `{"choices":[{"message":{"role":"assistant","content":"Your page is fast."}}],"usage":{"prompt_tokens":200,"completion_tokens":50,"total_tokens":250}}`),
	}
	svc := newTestService(&stubPageSpeedClient{}, chat)

	resp, err := svc.Analyze(context.Background(), AnalyzeRequest{
		PagespeedData: json.RawMessage(`{"lighthouseResult":{"categories":{"performance":{"score":0.91}},"audits":{}}}`),
	})
	require.NoError(t, err)
	require.Equal(t, "Your page is fast.", resp.Analysis)

	require.Equal(t, 1, chat.calls)
	require.Equal(t, "gpt-4o-mini", chat.lastRequest.Model)
	require.Equal(t, float32(0.4), chat.lastRequest.Temperature)
	require.Equal(t, 2048, chat.lastRequest.MaxTokens)

	require.Len(t, chat.lastRequest.Messages, 2)
	require.Equal(t, "system", chat.lastRequest.Messages[0].Role)
	user := chat.lastRequest.Messages[1]
	require.Equal(t, "user", user.Role)
	require.Contains(t, user.Content, "1. Overall Performance")
	require.Contains(t, user.Content, "2. Key Issues")
	require.Contains(t, user.Content, "3. Recommendations")
	require.Contains(t, user.Content, `"performanceScore": "91"`)
}

func TestAnalyzeNoChoicesFallsBack(t *testing.T) {
	chat := &stubChatClient{response: chatResponse(t, `{"choices":[]}`)}
	svc := newTestService(&stubPageSpeedClient{}, chat)

	resp, err := svc.Analyze(context.Background(), AnalyzeRequest{
		PagespeedData: json.RawMessage(`{"lighthouseResult":{"audits":{}}}`),
	})
	require.NoError(t, err)
	require.Equal(t, "Could not generate analysis.", resp.Analysis)
}

func TestAnalyzeEmptyContentFallsBack(t *testing.T) {
	chat := &stubChatClient{response: chatResponse(t, `{"choices":[{"message":{"role":"assistant","content":"  "}}]}`)}
	svc := newTestService(&stubPageSpeedClient{}, chat)

	resp, err := svc.Analyze(context.Background(), AnalyzeRequest{
		PagespeedData: json.RawMessage(`{"lighthouseResult":{"audits":{}}}`),
	})
	require.NoError(t, err)
	require.Equal(t, "Could not generate analysis.", resp.Analysis)
}

func TestAnalyzeChatFailure(t *testing.T) {
	chat := &stubChatClient{err: errors.New("status=500 body=boom")}
	svc := newTestService(&stubPageSpeedClient{}, chat)

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{
		PagespeedData: json.RawMessage(`{"lighthouseResult":{"audits":{}}}`),
	})
	require.True(t, apperrors.IsCode(err, "llm_error"))
	require.NotContains(t, err.Error(), "boom")
}

type stubPageSpeedClient struct {
	raw          json.RawMessage
	err          error
	lastURL      string
	lastStrategy string
}

func (s *stubPageSpeedClient) Fetch(ctx context.Context, pageURL, strategy string) (json.RawMessage, error) {
	s.lastURL = pageURL
	s.lastStrategy = strategy
	if s.err != nil {
		return nil, s.err
	}
	return s.raw, nil
}

type stubChatClient struct {
	response    chatgpt.ChatCompletionResponse
	err         error
	calls       int
	lastRequest chatgpt.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.calls++
	s.lastRequest = req
	if s.err != nil {
		return chatgpt.ChatCompletionResponse{}, s.err
	}
	return s.response, nil
}
