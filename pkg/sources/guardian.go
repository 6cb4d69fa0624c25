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
	guardianDefaultEndpoint = "https://content.guardianapis.com"
	// guardianMaxPageSize is the largest page-size the /search endpoint accepts.
	guardianMaxPageSize = 200
)

// guardianSource queries the Guardian content search API.
type guardianSource struct {
	client HTTPClient
	opts   Options
	log    logger.Logger
}

// NewGuardianSource builds a Source for the Guardian content API.
func NewGuardianSource(client HTTPClient, opts Options) Source {
	if client == nil {
		client = DefaultHTTPClient(0)
	}
	if strings.TrimSpace(opts.Endpoint) == "" {
		opts.Endpoint = guardianDefaultEndpoint
	}
	return &guardianSource{client: client, opts: opts, log: logger.Ensure(opts.Log)}
}

func (s *guardianSource) ID() string {
	return GuardianID
}

// Fetch searches Guardian content for query.
func (s *guardianSource) Fetch(ctx context.Context, query string) ([]domain.Article, error) {
	maxArticles := s.opts.maxArticles()
	params := url.Values{}
	params.Set("q", query)
	params.Set("api-key", s.opts.APIKey)
	params.Set("page-size", strconv.Itoa(min(maxArticles, guardianMaxPageSize)))
	params.Set("show-fields", "trailText")

	s.log.DebugObj("fetching articles", "source_fetch_start", map[string]any{
		"source": GuardianID,
		"query":  query,
		"limit":  maxArticles,
	})

	body, err := fetchJSON(ctx, s.client, buildURL(s.opts.Endpoint, "/search", params), GuardianID)
	if err != nil {
		s.log.WarnObj("source fetch failed", "source_fetch_error", map[string]any{
			"source": GuardianID,
			"error":  err.Error(),
		})
		return nil, err
	}

	articles, err := parseGuardian(body)
	if err != nil {
		return nil, err
	}
	articles = limit(articles, maxArticles)

	s.log.DebugObj("fetched articles", "source_fetch_done", map[string]any{
		"source": GuardianID,
		"count":  len(articles),
	})
	return articles, nil
}

type guardianEnvelope struct {
	Response *guardianResponse `json:"response"`
}

type guardianResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Results *[]guardianResult `json:"results"`
}

type guardianResult struct {
	WebTitle string          `json:"webTitle"`
	WebURL   string          `json:"webUrl"`
	Fields   *guardianFields `json:"fields"`
}

type guardianFields struct {
	TrailText string `json:"trailText"`
}

func parseGuardian(body []byte) ([]domain.Article, error) {
	var env guardianEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, domain.NewAPIError(err, "decode guardian response")
	}
	if env.Response == nil {
		return nil, domain.NewAPIError(nil, "guardian response missing %q envelope", "response")
	}
	if strings.EqualFold(env.Response.Status, "error") {
		return nil, domain.NewAPIError(nil, "guardian error: %s", env.Response.Message)
	}
	if env.Response.Results == nil {
		return nil, domain.NewAPIError(nil, "guardian response missing %q list", "results")
	}

	results := *env.Response.Results
	articles := make([]domain.Article, 0, len(results))
	for _, item := range results {
		description := ""
		if item.Fields != nil {
			description = item.Fields.TrailText
		}
		articles = append(articles, domain.NewArticle(item.WebTitle, description, item.WebURL))
	}
	return articles, nil
}
