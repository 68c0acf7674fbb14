package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"ivywatch/internal/model"
	"ivywatch/internal/retry"
	"ivywatch/internal/util"
	"ivywatch/internal/worker"
)

// FetchError is a failed retrieval after the retry budget is spent.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%d attempts): %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrRobotsDisallowed marks URLs the host's robots.txt forbids.
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// statusError marks non-2xx responses so the retry policy can tell
// server-side failures from client errors.
type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.status)
}

// Fetcher retrieves page text with shared rate limiting, robots.txt
// compliance, and bounded retries.
type Fetcher struct {
	httpClient *http.Client
	gate       *worker.Gate
	robots     *util.RobotsChecker // nil disables the check
	userAgent  string
	maxBytes   int64
	retryCfg   retry.Config
}

// NewFetcher creates a fetcher from the HTTP configuration. All fetches
// dispatch through the shared gate.
func NewFetcher(cfg model.HTTPConfig, gate *worker.Gate) *Fetcher {
	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.IsRetryable = isTransient

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		gate:      gate,
		robots:    robots,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		retryCfg:  retryCfg,
	}
}

// Fetch retrieves the document text at the URL. Transient failures are
// retried with exponential backoff; the final failure comes back as a
// *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.robots != nil && !f.robots.Allowed(ctx, rawURL) {
		return "", &FetchError{URL: rawURL, Err: ErrRobotsDisallowed}
	}

	var body string
	attempts := 0
	err := retry.Do(ctx, f.retryCfg, func(ctx context.Context) error {
		attempts++
		if err := f.gate.Wait(ctx); err != nil {
			return err
		}
		b, err := f.fetchOnce(ctx, rawURL)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return "", &FetchError{URL: rawURL, Attempts: attempts, Err: err}
	}
	return body, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &statusError{code: resp.StatusCode, status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	enc, _, _ := charset.DetermineEncoding(data, resp.Header.Get("Content-Type"))
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("decode body: %w", err)
		}
		decoded = data
	}

	return string(decoded), nil
}

// isTransient reports whether a fetch failure is worth another attempt:
// timeouts, connection failures, and 5xx responses. Client errors and
// cancellation are final.
func isTransient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	return false
}
