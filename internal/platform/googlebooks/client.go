// Package googlebooks is a small client for the public Google Books volumes API.
package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

var ErrNotFound = errors.New("googlebooks: volume not found")

// StatusError is returned for non-200 upstream responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("googlebooks: unexpected status code: %d", e.Code)
}

// Outcome labels passed to the observer after every attempt.
const (
	OutcomeOK       = "ok"
	OutcomeRetry    = "retry"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
	observe    func(outcome string)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithBackoff sets the first retry delay; later retries double it.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// WithObserver is called once per attempt with one of the Outcome labels.
func WithObserver(fn func(outcome string)) Option {
	return func(c *Client) { c.observe = fn }
}

func NewClient(baseURL string, rps int, maxRetries int, opts ...Option) *Client {
	if rps <= 0 {
		rps = 1
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		userAgent:  "freader/1.0",
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
		backoff:    time.Second,
		observe:    func(string) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs a full-text volume query.
func (c *Client) Search(ctx context.Context, query string, maxResults int) (*VolumeList, error) {
	params := url.Values{}
	params.Set("q", query)
	if maxResults > 0 {
		params.Set("maxResults", strconv.Itoa(maxResults))
	}

	var res VolumeList
	if err := c.get(ctx, "/books/v1/volumes", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetVolume fetches one volume by its Google Books id.
func (c *Client) GetVolume(ctx context.Context, id string) (*Volume, error) {
	var res Volume
	if err := c.get(ctx, "/books/v1/volumes/"+url.PathEscape(id), url.Values{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, target any) error {
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoff << uint(attempt-1)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, u, target)
		if err == nil {
			c.observe(OutcomeOK)
			return nil
		}
		if !retry {
			if errors.Is(err, ErrNotFound) {
				c.observe(OutcomeNotFound)
			} else {
				c.observe(OutcomeError)
			}
			return err
		}
		c.observe(OutcomeRetry)
		lastErr = err
	}
	return fmt.Errorf("googlebooks: after %d retries: %w", c.maxRetries, lastErr)
}

// do performs one attempt and reports whether a failure is worth retrying.
func (c *Client) do(ctx context.Context, u string, target any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, resp.Body)
		return true, &StatusError{Code: resp.StatusCode}
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return false, fmt.Errorf("googlebooks: decode response: %w", err)
	}
	return false, nil
}
