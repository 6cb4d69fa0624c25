package sources

import (
	"context"
	"net/url"
	"strings"

	"github.com/Adda-Baaj/newsq/internal/domain"
)

// responseSnippet returns a truncated snippet of the response body for error messages.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// buildURL joins base, path and the encoded query parameters.
func buildURL(base, path string, params url.Values) string {
	return strings.TrimRight(base, "/") + path + "?" + params.Encode()
}

// fetchJSON performs the single GET for a source and returns the body of a 2xx response.
func fetchJSON(ctx context.Context, client HTTPClient, endpoint, sourceID string) ([]byte, error) {
	resp, err := client.Get(ctx, endpoint, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, domain.NewAPIError(err, "%s request failed", sourceID)
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		return nil, domain.NewAPIError(nil, "%s returned status %d body: %s", sourceID, resp.StatusCode(), responseSnippet(body))
	}
	return body, nil
}

// limit truncates articles to at most n entries, preserving order.
func limit(articles []domain.Article, n int) []domain.Article {
	if n > 0 && len(articles) > n {
		return articles[:n]
	}
	return articles
}
