// Package ign provides a client for the IGN geodesy site: the benchmark
// search endpoint, the benchmark locator and the leveling bounding-box API.
package ign

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/time/rate"

	"github.com/jd-develop/geodesie-de-bureau/internal/resilience"
)

const (
	// DefaultSearchURL serves both the search and the locator requests.
	DefaultSearchURL = "https://geodesie.ign.fr/fiches/index.php?module=e&action=visugeod"
	// DefaultBBoxBaseURL is the leveling bounding-box API.
	DefaultBBoxBaseURL = "https://geodesie.ign.fr/ripgeo/fr/api/nivrn/bbox"

	userAgent = "geodesie-de-bureau/1.0"
	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 512
)

// Client defines the upstream operations of a benchmark lookup.
type Client interface {
	// Search sends a benchmark name and returns the raw search fragment.
	Search(ctx context.Context, query string) (string, error)
	// Locate sends a locator key (h_recherche) and returns the raw locator
	// response, whose first line holds the coordinates.
	Locate(ctx context.Context, key string) (string, error)
	// BBox fetches the feature collection around the given coordinates,
	// already formatted with one decimal.
	BBox(ctx context.Context, lon, lat string) ([]byte, error)
}

// StatusError reports a non-success HTTP status from an endpoint.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ign: %s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Option configures the client.
type Option func(*httpClient)

// WithSearchURL sets the search and locator endpoint (for testing).
func WithSearchURL(u string) Option {
	return func(c *httpClient) {
		c.searchURL = u
	}
}

// WithBBoxBaseURL sets the bounding-box API base URL (for testing).
func WithBBoxBaseURL(u string) Option {
	return func(c *httpClient) {
		c.bboxBaseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimiter throttles every request through lim.
func WithRateLimiter(lim *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = lim
	}
}

// WithRetry retries transient failures according to p.
func WithRetry(p resilience.Policy) Option {
	return func(c *httpClient) {
		c.retry = p
	}
}

type httpClient struct {
	searchURL   string
	bboxBaseURL string
	http        *http.Client
	limiter     *rate.Limiter
	retry       resilience.Policy
}

// NewClient creates a client for the public IGN endpoints. Requests are
// throttled to two per second and never retried unless configured otherwise.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		searchURL:   DefaultSearchURL,
		bboxBaseURL: DefaultBBoxBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(2, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string) (string, error) {
	form := url.Values{
		"repere_ajax":          {query},
		"identifiant_visugeod": {"identificateur_repere"},
	}
	return c.postText(ctx, "search", form)
}

func (c *httpClient) Locate(ctx context.Context, key string) (string, error) {
	form := url.Values{
		"h_recherche": {key},
		"t":           {"france"},
	}
	return c.postText(ctx, "locate", form)
}

func (c *httpClient) BBox(ctx context.Context, lon, lat string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/%s/%s/json/", c.bboxBaseURL, url.PathEscape(lon), url.PathEscape(lat))
	body, _, err := c.do(ctx, "bbox", http.MethodPost, reqURL, nil)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *httpClient) postText(ctx context.Context, op string, form url.Values) (string, error) {
	body, contentType, err := c.do(ctx, op, http.MethodPost, c.searchURL, form)
	if err != nil {
		return "", err
	}
	text, err := decodeCharset(body, contentType)
	if err != nil {
		return "", eris.Wrapf(err, "ign: %s: decode response", op)
	}
	return text, nil
}

// do sends one request, retried per the client's policy, and returns the
// body and Content-Type of a 2xx response.
func (c *httpClient) do(ctx context.Context, op, method, reqURL string, form url.Values) ([]byte, string, error) {
	type result struct {
		body        []byte
		contentType string
	}

	res, err := resilience.Do(ctx, c.retry, func(ctx context.Context) (result, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return result{}, eris.Wrapf(err, "ign: %s: rate limiter wait", op)
			}
		}

		var payload io.Reader
		if form != nil {
			payload = strings.NewReader(form.Encode())
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, payload)
		if err != nil {
			return result{}, eris.Wrapf(err, "ign: %s: create request", op)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept-Charset", "UTF-8")
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			return result{}, eris.Wrapf(err, "ign: %s: request failed", op)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return result{}, eris.Wrapf(err, "ign: %s: read response body", op)
		}

		zap.L().Debug("ign: response",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.Int("bytes", len(body)),
			zap.Duration("elapsed", time.Since(start)),
		)

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			serr := &StatusError{Op: op, StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
			if resilience.IsTransientStatus(resp.StatusCode) {
				return result{}, resilience.NewTransientError(serr, resp.StatusCode)
			}
			return result{}, serr
		}
		return result{body: body, contentType: resp.Header.Get("Content-Type")}, nil
	})
	if err != nil {
		return nil, "", err
	}
	return res.body, res.contentType, nil
}

// decodeCharset converts body to UTF-8 according to the charset parameter of
// contentType. Bodies without a charset are taken as UTF-8.
func decodeCharset(body []byte, contentType string) (string, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return string(body), nil
	}
	charset := strings.ToLower(params["charset"])
	if charset == "" || charset == "utf-8" || charset == "utf8" {
		return string(body), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", eris.Wrapf(err, "unsupported charset %q", charset)
	}
	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", eris.Wrapf(err, "decode %s", charset)
	}
	return string(out), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
