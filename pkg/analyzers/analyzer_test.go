package analyzers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adda-Baaj/newsq/internal/domain"
)

var sampleArticles = []domain.Article{
	domain.NewArticle("Test", "Desc", "http://example.com"),
}

type llmServer struct {
	*httptest.Server
	hits atomic.Int32
	body atomic.Value
}

func newLLMServer(t *testing.T, status int, response string) *llmServer {
	t.Helper()
	s := &llmServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		s.body.Store(payload)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *llmServer) request() map[string]any {
	v, _ := s.body.Load().(map[string]any)
	return v
}

func openAIResponse(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(b)
}

func anthropicResponse(text string) string {
	b, _ := json.Marshal(map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5",
		"stop_reason": "end_turn",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
	})
	return string(b)
}

func mustNew(t *testing.T, cfg Config) Analyzer {
	t.Helper()
	a, err := New(cfg, nil)
	require.NoError(t, err)
	return a
}

func TestNewRequiresAPIKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		for _, provider := range []string{"", ProviderOpenAI, ProviderAnthropic} {
			a, err := New(Config{Provider: provider, APIKey: key}, nil)
			assert.Nil(t, a)
			assert.ErrorIs(t, err, domain.ErrConfig)
		}
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	a, err := New(Config{Provider: "cohere", APIKey: "k"}, nil)
	assert.Nil(t, a)
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestNewAppliesDefaults(t *testing.T) {
	a := mustNew(t, Config{APIKey: "fake_key"})
	oa, ok := a.(*openAIAnalyzer)
	require.True(t, ok)
	assert.Equal(t, DefaultOpenAIModel, string(oa.model))
	assert.EqualValues(t, DefaultMaxTokens, oa.maxTokens)

	a = mustNew(t, Config{Provider: " Anthropic ", APIKey: "fake_key", MaxTokens: 42})
	aa, ok := a.(*anthropicAnalyzer)
	require.True(t, ok)
	assert.Equal(t, DefaultAnthropicModel, string(aa.model))
	assert.EqualValues(t, 42, aa.maxTokens)
}

func TestAnalyzeNoArticlesMakesNoRemoteCall(t *testing.T) {
	for _, provider := range []string{ProviderOpenAI, ProviderAnthropic} {
		t.Run(provider, func(t *testing.T) {
			srv := newLLMServer(t, http.StatusOK, "{}")
			a := mustNew(t, Config{Provider: provider, APIKey: "fake_key", BaseURL: srv.URL + "/"})

			for _, q := range []string{"Any question?", "", "Question"} {
				answer, err := a.Analyze(context.Background(), nil, q)
				require.NoError(t, err)
				assert.Equal(t, NoArticlesMessage, answer)

				answer, err = a.Analyze(context.Background(), []domain.Article{}, q)
				require.NoError(t, err)
				assert.Equal(t, NoArticlesMessage, answer)
			}
			assert.EqualValues(t, 0, srv.hits.Load())
		})
	}
}

func TestOpenAIAnalyzeSuccess(t *testing.T) {
	srv := newLLMServer(t, http.StatusOK, openAIResponse("  Test answer\n"))
	a := mustNew(t, Config{APIKey: "fake_key", Model: "gpt-4o-mini", MaxTokens: 300, BaseURL: srv.URL + "/"})

	answer, err := a.Analyze(context.Background(), sampleArticles, "What is this about?")

	require.NoError(t, err)
	assert.Equal(t, "  Test answer\n", answer)
	assert.EqualValues(t, 1, srv.hits.Load())

	req := srv.request()
	assert.Equal(t, "gpt-4o-mini", req["model"])
	assert.EqualValues(t, 300, req["max_tokens"])
	msgs, ok := req["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	user, _ := msgs[1].(map[string]any)
	content, _ := user["content"].(string)
	assert.Contains(t, content, "Title: Test")
	assert.Contains(t, content, "Description: Desc")
	assert.True(t, strings.HasSuffix(content, "Question: What is this about?"))
}

func TestOpenAIAnalyzeFailures(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		response string
	}{
		{name: "provider error", status: http.StatusInternalServerError, response: `{"error":{"message":"API error","type":"server_error"}}`},
		{name: "unauthorized", status: http.StatusUnauthorized, response: `{"error":{"message":"bad key","type":"invalid_request_error"}}`},
		{name: "no choices", status: http.StatusOK, response: `{"id":"x","object":"chat.completion","created":1,"model":"gpt-4","choices":[]}`},
		{name: "empty content", status: http.StatusOK, response: openAIResponse("")},
		{name: "malformed body", status: http.StatusOK, response: `{"choices":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newLLMServer(t, tc.status, tc.response)
			a := mustNew(t, Config{APIKey: "fake_key", BaseURL: srv.URL + "/"})

			answer, err := a.Analyze(context.Background(), sampleArticles, "Question")

			assert.Empty(t, answer)
			assert.ErrorIs(t, err, domain.ErrAnalysis)
			assert.EqualValues(t, 1, srv.hits.Load())
		})
	}
}

func TestOpenAIAnalyzeTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/"
	srv.Close()

	a := mustNew(t, Config{APIKey: "fake_key", BaseURL: base, Timeout: time.Second})

	_, err := a.Analyze(context.Background(), sampleArticles, "Question")
	assert.ErrorIs(t, err, domain.ErrAnalysis)
}

func TestAnthropicAnalyzeSuccess(t *testing.T) {
	srv := newLLMServer(t, http.StatusOK, anthropicResponse("Anthropic answer"))
	a := mustNew(t, Config{Provider: ProviderAnthropic, APIKey: "fake_key", BaseURL: srv.URL + "/"})

	answer, err := a.Analyze(context.Background(), sampleArticles, "What happened?")

	require.NoError(t, err)
	assert.Equal(t, "Anthropic answer", answer)
	assert.EqualValues(t, 1, srv.hits.Load())

	req := srv.request()
	assert.Equal(t, DefaultAnthropicModel, req["model"])
	assert.EqualValues(t, DefaultMaxTokens, req["max_tokens"])
}

func TestAnthropicAnalyzeFailure(t *testing.T) {
	srv := newLLMServer(t, http.StatusInternalServerError, `{"type":"error","error":{"type":"api_error","message":"boom"}}`)
	a := mustNew(t, Config{Provider: ProviderAnthropic, APIKey: "fake_key", BaseURL: srv.URL + "/"})

	_, err := a.Analyze(context.Background(), sampleArticles, "Question")

	assert.ErrorIs(t, err, domain.ErrAnalysis)
	assert.EqualValues(t, 1, srv.hits.Load())
}

func TestBuildContext(t *testing.T) {
	got := buildContext([]domain.Article{
		domain.NewArticle("One", "First", "http://1.com"),
		domain.NewArticle("Two", "", ""),
	})

	assert.Equal(t, "1. Title: One\n   Description: First\n   URL: http://1.com\n\n2. Title: Two\n\n", got)
}
