// Package fetch downloads hotel pages for pet-policy extraction.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pawstays/petpolicy-cli/internal/resilience"
)

// maxPageBytes bounds how much of a hotel page is read; policy sections
// never approach this.
const maxPageBytes = 10 << 20

// Options configures the page fetcher.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RatePerSec float64
}

// Client fetches pages with a global rate limit and bounded retries on
// transient HTTP failures.
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// New creates a Client. Zero options fall back to conservative defaults.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "petpolicy-cli/1.0"
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 2
	}
	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = opts.MaxRetries
	retry.OnRetry = resilience.RetryLogger("fetch", "page")
	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSec), 1),
		retry:   retry,
	}
}

// Page fetches the URL and returns the page body as text. A 429 or 5xx
// response retries with backoff; any other non-200 status fails outright.
func (c *Client) Page(ctx context.Context, rawURL string) (string, error) {
	body, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (string, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", eris.Wrap(err, "fetch: rate limiter wait")
		}
		return c.fetchOnce(ctx, rawURL)
	})
	if err != nil {
		return "", err
	}
	zap.L().Debug("page fetched",
		zap.String("url", rawURL),
		zap.Int("bytes", len(body)))
	return body, nil
}

func (c *Client) fetchOnce(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "fetch: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		statusErr := eris.Errorf("fetch: status %d from %s", resp.StatusCode, rawURL)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return "", resilience.NewTransientError(statusErr, resp.StatusCode)
		}
		return "", statusErr
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", eris.Wrap(err, "fetch: read body")
	}
	return string(raw), nil
}
