// Package service composes the source registry and the analyzer behind one entry point.
package service

import (
	"context"

	"github.com/Adda-Baaj/newsq/internal/config"
	"github.com/Adda-Baaj/newsq/internal/domain"
	"github.com/Adda-Baaj/newsq/internal/logger"
	"github.com/Adda-Baaj/newsq/pkg/analyzers"
	"github.com/Adda-Baaj/newsq/pkg/sources"
)

// AnalyzerFactory builds the analyzer from validated settings.
type AnalyzerFactory func(cfg analyzers.Config, log logger.Logger) (analyzers.Analyzer, error)

// RegistryFactory builds the source registry from validated settings.
type RegistryFactory func(client sources.HTTPClient, s sources.Settings) *sources.Registry

// NewsService is the pass-through composition point used by the CLI. It
// holds no request-scoped state and is safe for concurrent use.
type NewsService struct {
	registry *sources.Registry
	analyzer analyzers.Analyzer
	log      logger.Logger
}

type options struct {
	log             logger.Logger
	httpClient      sources.HTTPClient
	analyzerFactory AnalyzerFactory
	registryFactory RegistryFactory
}

// Option customizes construction.
type Option func(*options)

// WithLogger sets the logger passed to sources and the analyzer.
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithHTTPClient replaces the transport used by sources.
func WithHTTPClient(c sources.HTTPClient) Option {
	return func(o *options) { o.httpClient = c }
}

// WithAnalyzerFactory replaces analyzers.New.
func WithAnalyzerFactory(f AnalyzerFactory) Option {
	return func(o *options) { o.analyzerFactory = f }
}

// WithRegistryFactory replaces sources.DefaultRegistry.
func WithRegistryFactory(f RegistryFactory) Option {
	return func(o *options) { o.registryFactory = f }
}

// New validates cfg, then builds the registry and the analyzer. A ConfigError
// is returned before anything is constructed if a required setting is missing.
func New(cfg config.Config, opts ...Option) (*NewsService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{
		analyzerFactory: analyzers.New,
		registryFactory: sources.DefaultRegistry,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = logger.Ensure(o.log)
	if o.httpClient == nil {
		o.httpClient = sources.DefaultHTTPClient(cfg.RequestTimeout())
	}

	registry := o.registryFactory(o.httpClient, sources.Settings{
		Guardian: sources.Options{
			APIKey:      cfg.GuardianAPIKey,
			Endpoint:    cfg.GuardianEndpoint,
			MaxArticles: cfg.MaxArticles,
			Log:         o.log,
		},
		NewsAPI: sources.Options{
			APIKey:      cfg.NewsAPIKey,
			Endpoint:    cfg.NewsAPIEndpoint,
			MaxArticles: cfg.MaxArticles,
			Log:         o.log,
		},
	})

	analyzer, err := o.analyzerFactory(analyzers.Config{
		Provider:  cfg.AnalysisProvider,
		APIKey:    cfg.AnalysisAPIKey(),
		Model:     cfg.AnalysisModel,
		MaxTokens: cfg.AnalysisMaxTokens,
		Timeout:   cfg.RequestTimeout(),
		BaseURL:   cfg.AnalysisBaseURL,
	}, o.log)
	if err != nil {
		return nil, err
	}

	return NewWithComponents(registry, analyzer, o.log), nil
}

// NewWithComponents assembles a service from already-built parts.
func NewWithComponents(registry *sources.Registry, analyzer analyzers.Analyzer, log logger.Logger) *NewsService {
	return &NewsService{
		registry: registry,
		analyzer: analyzer,
		log:      logger.Ensure(log),
	}
}

// GetSource resolves name against the registry (exact match).
func (s *NewsService) GetSource(name string) (sources.Source, error) {
	return s.registry.Source(name)
}

// SourceNames lists the registered sources in sorted order.
func (s *NewsService) SourceNames() []string {
	return s.registry.Names()
}

// SearchArticles fetches articles for query from the named source.
func (s *NewsService) SearchArticles(ctx context.Context, sourceName, query string) ([]domain.Article, error) {
	src, err := s.GetSource(sourceName)
	if err != nil {
		return nil, err
	}
	return src.Fetch(ctx, query)
}

// AnalyzeArticles answers question about articles.
func (s *NewsService) AnalyzeArticles(ctx context.Context, articles []domain.Article, question string) (string, error) {
	if s.analyzer == nil {
		return "", domain.NewConfigError("no analyzer configured")
	}
	return s.analyzer.Analyze(ctx, articles, question)
}
