package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Doer is the minimal HTTP client interface used across packages.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChromeUA is a consistent, modern desktop Chrome User-Agent for all outbound HTTP.
const ChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// maxBody caps how much of a response body is read into memory.
const maxBody = 16 << 20

// ErrStatus is wrapped by Fetcher.Get for non-2xx responses.
var ErrStatus = errors.New("unexpected http status")

// SetUA sets the ChromeUA header on the request.
func SetUA(req *http.Request) {
	if req != nil {
		req.Header.Set("User-Agent", ChromeUA)
	}
}

// Fetcher performs single blocking GET requests with a per-call timeout.
// It never retries.
type Fetcher struct {
	client    Doer
	limiter   *rate.Limiter
	userAgent string
}

// NewFetcher wraps client. rps <= 0 disables pacing.
func NewFetcher(client Doer, rps float64, userAgent string) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if userAgent == "" {
		userAgent = ChromeUA
	}
	return &Fetcher{client: client, limiter: rate.NewLimiter(limit, 1), userAgent: userAgent}
}

// Get issues GET endpoint?params and returns the body. A zero timeout means no
// deadline beyond ctx.
func (f *Fetcher) Get(ctx context.Context, endpoint string, params url.Values, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	target := endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, string(b))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
