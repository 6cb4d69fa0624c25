// Package httpclient wraps resty with the small surface used by sources and publishers.
package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "newsq/1.0 (+https://github.com/Adda-Baaj/newsq)"

// Client performs single-attempt HTTP calls.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (*resty.Response, error)
	Do(ctx context.Context, method, url string, headers map[string]string, body any) (*resty.Response, error)
}

type restyClient struct {
	r *resty.Client
}

// NewRestyClient builds a Client bounded by timeout. Retries are disabled.
func NewRestyClient(timeout time.Duration) Client {
	r := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent)
	return &restyClient{r: r}
}

// NewFromResty wraps an already configured resty client.
func NewFromResty(r *resty.Client) Client {
	return &restyClient{r: r}
}

// Get issues a GET request.
func (c *restyClient) Get(ctx context.Context, url string, headers map[string]string) (*resty.Response, error) {
	return c.Do(ctx, http.MethodGet, url, headers, nil)
}

// Do issues a request with the given method and optional body.
func (c *restyClient) Do(ctx context.Context, method, url string, headers map[string]string, body any) (*resty.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req := c.r.R().SetContext(ctx).SetHeaders(headers)
	if body != nil {
		req.SetBody(body)
	}
	return req.Execute(method, url)
}
