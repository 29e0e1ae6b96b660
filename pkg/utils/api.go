package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrUnsuccessful is returned when the envelope does not signal success.
	ErrUnsuccessful = errors.New("api: response not successful")
)

type Options struct {
	// ProxyURL, when set, is prefixed to the escaped upstream URL.
	ProxyURL  string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
}

// API issues GET requests against baseURL and unwraps the proxy envelope.
type API struct {
	client   *http.Client
	baseURL  string
	proxyURL string
	limiter  *rate.Limiter
}

func NewAPI(baseURL string, opts Options) *API {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 1
	}
	return &API{
		client:   &http.Client{Timeout: opts.Timeout},
		baseURL:  baseURL,
		proxyURL: opts.ProxyURL,
		limiter:  rate.NewLimiter(limit, opts.RateBurst),
	}
}

// URL returns the address actually requested for path and params.
func (a *API) URL(path string, params url.Values) string {
	target := a.baseURL + path
	if params != nil {
		target += "?" + params.Encode()
	}
	if a.proxyURL == "" {
		return target
	}
	return a.proxyURL + url.QueryEscape(target)
}

// Get fetches path and decodes the envelope payload into v.
func (a *API) Get(ctx context.Context, path string, params url.Values, v any) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL(path, params), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api error (status %d): %w", resp.StatusCode, ErrUnsuccessful)
	}

	payload, err := Unwrap(body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}

// Unwrap returns the payload of an envelope: result.content, else result,
// else the body itself.
func Unwrap(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	if !env.Success {
		return nil, ErrUnsuccessful
	}

	if isEmpty(env.Result) {
		return body, nil
	}

	var inner struct {
		Content json.RawMessage `json:"content"`
	}
	if env.Result[0] == '{' {
		if err := json.Unmarshal(env.Result, &inner); err == nil && !isEmpty(inner.Content) {
			return inner.Content, nil
		}
	}
	return env.Result, nil
}

func isEmpty(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
