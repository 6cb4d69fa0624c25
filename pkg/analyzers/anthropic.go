package analyzers

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Adda-Baaj/newsq/internal/domain"
	"github.com/Adda-Baaj/newsq/internal/logger"
)

type anthropicAnalyzer struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
	log       logger.Logger
}

func newAnthropicAnalyzer(cfg Config, log logger.Logger) *anthropicAnalyzer {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)
	return &anthropicAnalyzer{
		client:    &client,
		model:     anthropic.Model(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
		log:       log,
	}
}

// Analyze asks the messages API the question about articles.
func (a *anthropicAnalyzer) Analyze(ctx context.Context, articles []domain.Article, question string) (string, error) {
	if len(articles) == 0 {
		return NoArticlesMessage, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	a.log.DebugObj("requesting analysis", "analysis_start", map[string]any{
		"provider": ProviderAnthropic,
		"model":    string(a.model),
		"articles": len(articles),
	})

	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildUserPrompt(articles, question))),
		},
	})
	if err != nil {
		a.log.WarnObj("analysis request failed", "analysis_error", map[string]any{
			"provider": ProviderAnthropic,
			"error":    err.Error(),
		})
		return "", domain.NewAnalysisError(err, "anthropic message failed")
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", domain.NewAnalysisError(errors.New("no text content returned"), "anthropic message unusable")
	}
	return sb.String(), nil
}
