// Package analyzers answers free-text questions about a set of articles using a remote language model.
package analyzers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/newsq/internal/domain"
	"github.com/Adda-Baaj/newsq/internal/logger"
)

// NoArticlesMessage is returned, without any remote call, when there is nothing to analyze.
const NoArticlesMessage = "no articles found to analyze"

// Supported analysis providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const (
	DefaultOpenAIModel    = "gpt-4"
	DefaultAnthropicModel = "claude-haiku-4-5"
	DefaultMaxTokens      = 500
	DefaultTimeout        = 10 * time.Second
)

const systemPrompt = `You are a news analyst. Answer the user's question using only the articles provided.
If the articles do not contain enough information to answer, say so plainly.`

// Analyzer answers a question about articles.
type Analyzer interface {
	Analyze(ctx context.Context, articles []domain.Article, question string) (string, error)
}

// Config selects and configures the remote model.
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	// BaseURL overrides the provider API root.
	BaseURL string
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	if normalizeProvider(provider) == ProviderAnthropic {
		return DefaultAnthropicModel
	}
	return DefaultOpenAIModel
}

func normalizeProvider(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return ProviderOpenAI
	}
	return p
}

func (c Config) withDefaults() Config {
	c.Provider = normalizeProvider(c.Provider)
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultModel(c.Provider)
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// New validates cfg and builds the analyzer for its provider. No network
// activity happens here.
func New(cfg Config, log logger.Logger) (Analyzer, error) {
	cfg = cfg.withDefaults()
	if cfg.APIKey == "" {
		return nil, domain.NewConfigError("%s api key is required for analysis", cfg.Provider)
	}

	log = logger.Ensure(log)
	switch cfg.Provider {
	case ProviderOpenAI:
		return newOpenAIAnalyzer(cfg, log), nil
	case ProviderAnthropic:
		return newAnthropicAnalyzer(cfg, log), nil
	default:
		return nil, domain.NewConfigError("analysis provider %q is not supported (expected %s or %s)", cfg.Provider, ProviderOpenAI, ProviderAnthropic)
	}
}

// buildContext renders articles as a numbered plain-text block.
func buildContext(articles []domain.Article) string {
	var sb strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&sb, "%d. Title: %s\n", i+1, a.Title)
		if a.Description != "" {
			fmt.Fprintf(&sb, "   Description: %s\n", a.Description)
		}
		if a.URL != "" {
			fmt.Fprintf(&sb, "   URL: %s\n", a.URL)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// buildUserPrompt combines the article context with the verbatim question.
func buildUserPrompt(articles []domain.Article, question string) string {
	return "Articles:\n\n" + buildContext(articles) + "Question: " + question
}
