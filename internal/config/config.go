// Package config loads newsq settings from .env files, an optional config file and the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Adda-Baaj/newsq/internal/domain"
	"github.com/Adda-Baaj/newsq/pkg/analyzers"
)

// Environment variable naming an optional config file.
const EnvConfigFile = "NEWSQ_CONFIG"

// Config is the explicit, fully-resolved configuration handed to the service.
type Config struct {
	GuardianAPIKey  string `mapstructure:"guardian_api_key"`
	NewsAPIKey      string `mapstructure:"newsapi_api_key"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`

	AnalysisProvider  string `mapstructure:"analysis_provider"`
	AnalysisModel     string `mapstructure:"analysis_model"`
	AnalysisMaxTokens int    `mapstructure:"analysis_max_tokens"`
	AnalysisBaseURL   string `mapstructure:"analysis_base_url"`

	MaxArticles           int `mapstructure:"max_articles"`
	RequestTimeoutSeconds int `mapstructure:"request_timeout"`

	GuardianEndpoint string `mapstructure:"guardian_endpoint"`
	NewsAPIEndpoint  string `mapstructure:"newsapi_endpoint"`

	PublishersFile string `mapstructure:"publishers_file"`
	LogLevel       string `mapstructure:"log_level"`
}

// Defaults for optional settings.
const (
	DefaultMaxArticles    = 10
	DefaultRequestTimeout = 10
	DefaultLogLevel       = "warn"
)

// envAliases binds each key to the environment variables it is read from, in priority order.
var envAliases = map[string][]string{
	"guardian_api_key":    {"GUARDIAN_API_KEY"},
	"newsapi_api_key":     {"NEWSAPI_API_KEY"},
	"openai_api_key":      {"OPENAI_API_KEY"},
	"anthropic_api_key":   {"ANTHROPIC_API_KEY"},
	"analysis_provider":   {"ANALYSIS_PROVIDER"},
	"analysis_model":      {"ANALYSIS_MODEL", "OPENAI_MODEL"},
	"analysis_max_tokens": {"ANALYSIS_MAX_TOKENS", "OPENAI_MAX_TOKENS"},
	"analysis_base_url":   {"ANALYSIS_BASE_URL"},
	"max_articles":        {"MAX_ARTICLES"},
	"request_timeout":     {"REQUEST_TIMEOUT"},
	"guardian_endpoint":   {"GUARDIAN_ENDPOINT"},
	"newsapi_endpoint":    {"NEWSAPI_ENDPOINT"},
	"publishers_file":     {"PUBLISHERS_FILE"},
	"log_level":           {"LOG_LEVEL"},
}

// Load reads a .env file from the working directory (if present), then the
// config file at path (or $NEWSQ_CONFIG), then the environment. Environment
// variables win over file values. Load does not validate required keys.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, domain.NewConfigError("load .env: %v", err)
	}

	v := viper.New()
	v.SetDefault("analysis_provider", analyzers.ProviderOpenAI)
	v.SetDefault("analysis_max_tokens", analyzers.DefaultMaxTokens)
	v.SetDefault("max_articles", DefaultMaxArticles)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("log_level", DefaultLogLevel)

	// The lower-case key itself is the last alias, so guardian_api_key works like GUARDIAN_API_KEY.
	for key, envs := range envAliases {
		names := append(append([]string{key}, envs...), key)
		if err := v.BindEnv(names...); err != nil {
			return Config{}, domain.NewConfigError("bind %s: %v", key, err)
		}
	}

	if path = strings.TrimSpace(path); path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigFile))
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, domain.NewConfigError("read config file %s: %v", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, domain.NewConfigError("decode config: %v", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.GuardianAPIKey = strings.TrimSpace(c.GuardianAPIKey)
	c.NewsAPIKey = strings.TrimSpace(c.NewsAPIKey)
	c.OpenAIAPIKey = strings.TrimSpace(c.OpenAIAPIKey)
	c.AnthropicAPIKey = strings.TrimSpace(c.AnthropicAPIKey)
	c.AnalysisProvider = strings.ToLower(strings.TrimSpace(c.AnalysisProvider))
	if c.AnalysisProvider == "" {
		c.AnalysisProvider = analyzers.ProviderOpenAI
	}
	if strings.TrimSpace(c.AnalysisModel) == "" {
		c.AnalysisModel = analyzers.DefaultModel(c.AnalysisProvider)
	}
	c.PublishersFile = strings.TrimSpace(c.PublishersFile)
}

// AnalysisAPIKey returns the key for the selected analysis provider.
func (c Config) AnalysisAPIKey() string {
	if c.AnalysisProvider == analyzers.ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.OpenAIAPIKey
}

// RequestTimeout returns the per-call timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Validate reports every missing required key and invalid limit as one ConfigError.
func (c Config) Validate() error {
	var problems []string

	missing := func(name, val string) {
		if strings.TrimSpace(val) == "" {
			problems = append(problems, name+" is required")
		}
	}
	missing("GUARDIAN_API_KEY", c.GuardianAPIKey)
	missing("NEWSAPI_API_KEY", c.NewsAPIKey)

	switch c.AnalysisProvider {
	case "", analyzers.ProviderOpenAI:
		missing("OPENAI_API_KEY", c.OpenAIAPIKey)
	case analyzers.ProviderAnthropic:
		missing("ANTHROPIC_API_KEY", c.AnthropicAPIKey)
	default:
		problems = append(problems, "ANALYSIS_PROVIDER "+c.AnalysisProvider+" is not supported")
	}

	if c.MaxArticles <= 0 {
		problems = append(problems, "MAX_ARTICLES must be a positive integer")
	}
	if c.RequestTimeoutSeconds <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be a positive integer")
	}
	if c.AnalysisMaxTokens <= 0 {
		problems = append(problems, "ANALYSIS_MAX_TOKENS must be a positive integer")
	}

	if len(problems) > 0 {
		return domain.NewConfigError("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
