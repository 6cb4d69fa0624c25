// Package sources adapts external news APIs into normalized domain.Article values.
package sources

import (
	"context"
	"time"

	"github.com/Adda-Baaj/newsq/internal/domain"
	"github.com/Adda-Baaj/newsq/internal/logger"
	"github.com/Adda-Baaj/newsq/pkg/httpclient"
)

// Known source identifiers. Registry keys are matched exactly.
const (
	GuardianID = "guardian"
	NewsAPIID  = "newsapi"
)

const (
	// DefaultMaxArticles caps results when no limit is configured.
	DefaultMaxArticles = 10
	// DefaultTimeout bounds a single provider call.
	DefaultTimeout = 10 * time.Second
)

// Source fetches articles for a query from one provider.
type Source interface {
	ID() string
	Fetch(ctx context.Context, query string) ([]domain.Article, error)
}

// HTTPClient is the transport used by sources.
type HTTPClient = httpclient.Client

// Options configures a single source.
type Options struct {
	APIKey string
	// Endpoint overrides the provider base URL.
	Endpoint    string
	MaxArticles int
	Log         logger.Logger
}

func (o Options) maxArticles() int {
	if o.MaxArticles <= 0 {
		return DefaultMaxArticles
	}
	return o.MaxArticles
}

// DefaultHTTPClient returns a resty-backed client bounded by timeout.
func DefaultHTTPClient(timeout time.Duration) HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return httpclient.NewRestyClient(timeout)
}
