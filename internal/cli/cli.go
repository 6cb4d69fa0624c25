// Package cli wires the newsq commands to the news service.
package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Adda-Baaj/newsq/internal/config"
	"github.com/Adda-Baaj/newsq/internal/domain"
	"github.com/Adda-Baaj/newsq/internal/logger"
	"github.com/Adda-Baaj/newsq/internal/service"
	"github.com/Adda-Baaj/newsq/pkg/publishers"
	"github.com/Adda-Baaj/newsq/pkg/sources"
)

// Service is the part of the news service the commands drive.
type Service interface {
	SearchArticles(ctx context.Context, sourceName, query string) ([]domain.Article, error)
	AnalyzeArticles(ctx context.Context, articles []domain.Article, question string) (string, error)
}

// ServiceFactory builds the Service once configuration is resolved.
type ServiceFactory func(cfg config.Config, log logger.Logger) (Service, error)

// Publish delivers a finished search to the configured publishers.
type Publish func(ctx context.Context, cfg config.Config, evt publishers.Event, log logger.Logger) error

type app struct {
	stdout io.Writer
	stderr io.Writer

	loadConfig func(path string) (config.Config, error)
	newLogger  func(level string) (logger.Logger, error)
	newService ServiceFactory
	publish    Publish

	configPath string
	logLevel   string
}

// Option customizes Execute.
type Option func(*app)

// WithConfigLoader replaces config.Load.
func WithConfigLoader(f func(path string) (config.Config, error)) Option {
	return func(a *app) { a.loadConfig = f }
}

// WithServiceFactory replaces the default service constructor.
func WithServiceFactory(f ServiceFactory) Option {
	return func(a *app) { a.newService = f }
}

// WithPublish replaces the publishers fan-out run after a search.
func WithPublish(f Publish) Option {
	return func(a *app) { a.publish = f }
}

// WithLoggerFactory replaces logger.New.
func WithLoggerFactory(f func(level string) (logger.Logger, error)) Option {
	return func(a *app) { a.newLogger = f }
}

func defaultService(cfg config.Config, log logger.Logger) (Service, error) {
	svc, err := service.New(cfg, service.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func defaultPublish(ctx context.Context, cfg config.Config, evt publishers.Event, log logger.Logger) error {
	reg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return err
	}
	pubs, err := publishers.DefaultFactory().BuildEnabled(ctx, reg, log)
	if err != nil {
		return err
	}
	return publishers.PublishAll(ctx, pubs, evt, log)
}

// Execute runs the command line in args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...Option) int {
	a := &app{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: config.Load,
		newLogger:  logger.New,
		newService: defaultService,
		publish:    defaultPublish,
	}
	for _, opt := range opts {
		opt(a)
	}

	if args == nil {
		args = []string{}
	}
	root := a.rootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		NewDisplay(stderr).Error(err)
		return 1
	}
	return 0
}

var errNoCommand = errors.New("a command is required (search or ask)")

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "newsq",
		Short:         "Search news sources and ask questions about the results",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errNoCommand
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a config file (default $NEWSQ_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(a.searchCommand(), a.askCommand())
	return root
}

func sourceFlagUsage() string {
	names := sources.DefaultRegistry(nil, sources.Settings{}).Names()
	return "news source to query (" + strings.Join(names, ", ") + ")"
}

func (a *app) searchCommand() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search a news source",
		Example: `  newsq search "climate change"
  newsq search golang --source newsapi`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.close()

			_, err = a.search(cmd.Context(), s, source, args[0])
			return err
		},
	}
	cmd.Flags().StringVar(&source, "source", sources.GuardianID, sourceFlagUsage())
	return cmd
}

func (a *app) askCommand() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:     "ask <query> <question>",
		Short:   "Search a news source and ask a question about the results",
		Example: `  newsq ask "elections" "Who is leading the polls?" --source newsapi`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.close()

			articles, err := a.search(cmd.Context(), s, source, args[0])
			if err != nil {
				return err
			}
			answer, err := s.svc.AnalyzeArticles(cmd.Context(), articles, args[1])
			if err != nil {
				return err
			}
			NewDisplay(a.stdout).Answer(answer)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", sources.GuardianID, sourceFlagUsage())
	return cmd
}

// session is the resolved configuration, logger and service for one command run.
type session struct {
	cfg config.Config
	log logger.Logger
	svc Service
}

// open resolves configuration and builds the logger and the service.
func (a *app) open() (*session, error) {
	cfg, err := a.loadConfig(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	log, err := a.newLogger(cfg.LogLevel)
	if err != nil {
		log = logger.NopLogger{}
	}

	svc, err := a.newService(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return &session{cfg: cfg, log: log, svc: svc}, nil
}

// close flushes the logger once the command has finished.
func (s *session) close() {
	_ = s.log.Sync()
}

// search prints the articles found for query. Enabled publishers receive the
// result afterwards.
func (a *app) search(ctx context.Context, s *session, source, query string) ([]domain.Article, error) {
	articles, err := s.svc.SearchArticles(ctx, source, query)
	if err != nil {
		return nil, err
	}
	NewDisplay(a.stdout).Articles(articles)

	if s.cfg.PublishersFile != "" && a.publish != nil {
		evt := publishers.NewEvent(source, query, articles)
		if err := a.publish(ctx, s.cfg, evt, s.log); err != nil {
			NewDisplay(a.stderr).Warning("publishing results failed: " + err.Error())
		}
	}
	return articles, nil
}
