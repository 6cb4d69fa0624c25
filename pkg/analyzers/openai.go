package analyzers

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Adda-Baaj/newsq/internal/domain"
	"github.com/Adda-Baaj/newsq/internal/logger"
)

type openAIAnalyzer struct {
	client    *openai.Client
	model     openai.ChatModel
	maxTokens int64
	log       logger.Logger
}

func newOpenAIAnalyzer(cfg Config, log logger.Logger) *openAIAnalyzer {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	return &openAIAnalyzer{
		client:    &client,
		model:     openai.ChatModel(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
		log:       log,
	}
}

// Analyze asks the chat completion API the question about articles.
func (a *openAIAnalyzer) Analyze(ctx context.Context, articles []domain.Article, question string) (string, error) {
	if len(articles) == 0 {
		return NoArticlesMessage, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	a.log.DebugObj("requesting analysis", "analysis_start", map[string]any{
		"provider": ProviderOpenAI,
		"model":    string(a.model),
		"articles": len(articles),
	})

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: a.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildUserPrompt(articles, question)),
		},
		MaxTokens: openai.Int(a.maxTokens),
	})
	if err != nil {
		a.log.WarnObj("analysis request failed", "analysis_error", map[string]any{
			"provider": ProviderOpenAI,
			"error":    err.Error(),
		})
		return "", domain.NewAnalysisError(err, "openai completion failed")
	}

	if len(resp.Choices) == 0 {
		return "", domain.NewAnalysisError(errors.New("no choices returned"), "openai completion unusable")
	}
	answer := resp.Choices[0].Message.Content
	if answer == "" {
		return "", domain.NewAnalysisError(errors.New("empty completion text"), "openai completion unusable")
	}
	return answer, nil
}
