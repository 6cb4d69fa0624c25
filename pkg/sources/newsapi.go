package sources

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/Adda-Baaj/newsq/internal/domain"
	"github.com/Adda-Baaj/newsq/internal/logger"
)

const (
	newsAPIDefaultEndpoint = "https://newsapi.org"
	// newsAPIMaxPageSize is the largest pageSize the /v2/everything endpoint accepts.
	newsAPIMaxPageSize = 100
)

// newsAPISource queries the NewsAPI "everything" endpoint.
type newsAPISource struct {
	client HTTPClient
	opts   Options
	log    logger.Logger
}

// NewNewsAPISource builds a Source for NewsAPI.
func NewNewsAPISource(client HTTPClient, opts Options) Source {
	if client == nil {
		client = DefaultHTTPClient(0)
	}
	if strings.TrimSpace(opts.Endpoint) == "" {
		opts.Endpoint = newsAPIDefaultEndpoint
	}
	return &newsAPISource{client: client, opts: opts, log: logger.Ensure(opts.Log)}
}

func (s *newsAPISource) ID() string {
	return NewsAPIID
}

// Fetch searches NewsAPI for query.
func (s *newsAPISource) Fetch(ctx context.Context, query string) ([]domain.Article, error) {
	maxArticles := s.opts.maxArticles()
	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", s.opts.APIKey)
	params.Set("pageSize", strconv.Itoa(min(maxArticles, newsAPIMaxPageSize)))

	s.log.DebugObj("fetching articles", "source_fetch_start", map[string]any{
		"source": NewsAPIID,
		"query":  query,
		"limit":  maxArticles,
	})

	body, err := fetchJSON(ctx, s.client, buildURL(s.opts.Endpoint, "/v2/everything", params), NewsAPIID)
	if err != nil {
		s.log.WarnObj("source fetch failed", "source_fetch_error", map[string]any{
			"source": NewsAPIID,
			"error":  err.Error(),
		})
		return nil, err
	}

	articles, err := parseNewsAPI(body)
	if err != nil {
		return nil, err
	}
	articles = limit(articles, maxArticles)

	s.log.DebugObj("fetched articles", "source_fetch_done", map[string]any{
		"source": NewsAPIID,
		"count":  len(articles),
	})
	return articles, nil
}

type newsAPIEnvelope struct {
	Status   string            `json:"status"`
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Articles *[]newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
}

func parseNewsAPI(body []byte) ([]domain.Article, error) {
	var env newsAPIEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, domain.NewAPIError(err, "decode newsapi response")
	}
	if strings.EqualFold(env.Status, "error") {
		return nil, domain.NewAPIError(nil, "newsapi error %s: %s", env.Code, env.Message)
	}
	if env.Articles == nil {
		return nil, domain.NewAPIError(nil, "newsapi response missing %q envelope", "articles")
	}

	items := *env.Articles
	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		description := ""
		if item.Description != nil {
			description = *item.Description
		}
		articles = append(articles, domain.NewArticle(item.Title, description, item.URL))
	}
	return articles, nil
}
