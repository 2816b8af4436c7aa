// Package fetch performs the single outbound HTML request a proxy call
// needs. There is deliberately no retry logic: a fetch failure or non-2xx
// propagates as a request-level failure, and 404 is distinguished so the
// caller can map "resource genuinely absent upstream" separately.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/vidproxy/vidproxy/internal/utils"
)

// Client fetches HTML pages from the upstream site.
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	logger     utils.Logger
}

// Options configures a Client.
type Options struct {
	UserAgent string
	// RateLimit is the outbound politeness budget in requests per
	// second, shared across all inbound requests.
	RateLimit float64
	RateBurst int
	Logger    utils.Logger
}

// NewClient creates a fetch client. Per-call deadlines come from the
// caller's context, not a client-wide timeout.
func NewClient(opts Options) *Client {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 3.0
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 5
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: opts.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
		logger:    logger,
	}
}

// FetchHTML performs one GET with browser-like headers and returns the
// body as a string. The context carries both the per-operation timeout
// and client-disconnect cancellation.
func (c *Client) FetchHTML(ctx context.Context, targetURL string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", utils.WrapError(err, utils.ErrCodeFetchFailed, "rate limiter interrupted")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", utils.WrapError(err, utils.ErrCodeFetchFailed, "failed to build request")
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", utils.WrapError(err, utils.ErrCodeFetchFailed, "upstream request failed").
			WithContext("url", targetURL)
	}
	defer resp.Body.Close()

	c.logger.WithFields(map[string]interface{}{
		"url":      targetURL,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("upstream fetch")

	if resp.StatusCode == http.StatusNotFound {
		return "", utils.NewErrorf(utils.ErrCodeUpstreamNotFound, "upstream returned 404 for %s", targetURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", utils.NewErrorf(utils.ErrCodeFetchFailed, "upstream returned HTTP %d for %s", resp.StatusCode, targetURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", utils.WrapError(err, utils.ErrCodeFetchFailed, "failed to read upstream body")
	}
	return string(body), nil
}

// setHeaders makes the request look like an ordinary browser navigation.
func (c *Client) setHeaders(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}
