// Package rest is the HTTP client for the SkillNet backend API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skillnet/skillnet/internal/core/domain"
)

const (
	defaultTimeout  = 15 * time.Second
	maxBodySize     = 4 << 20
	contentTypeJSON = "application/json"
	headerRequestID = "X-Request-ID"
)

// TokenSource yields the bearer token for outgoing requests. An empty token
// means the request goes out anonymously.
type TokenSource interface {
	Load(ctx context.Context) (string, error)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Tokens     TokenSource
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client talks to the backend over JSON/HTTP. It is safe for concurrent use.
type Client struct {
	base   *url.URL
	http   *http.Client
	tokens TokenSource
	log    zerolog.Logger

	mu             sync.RWMutex
	onUnauthorized func()
}

// New validates the base URL and returns a client.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		base:   base,
		http:   hc,
		tokens: opts.Tokens,
		log:    opts.Logger,
	}, nil
}

// OnUnauthorized registers fn to run whenever the backend answers 401.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one request. A 401 runs the unauthorized hook.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	return c.send(ctx, method, path, query, in, out, true)
}

// send performs one request. A 2xx body must be JSON; with out == nil only an
// empty body (204 included) is accepted in its place. The credential exchange
// passes expireOn401 false: a rejected password says nothing about the
// current token.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, in, out any, expireOn401 bool) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if in != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	reqID := uuid.NewString()
	req.Header.Set(headerRequestID, reqID)

	if c.tokens != nil {
		token, err := c.tokens.Load(ctx)
		if err != nil {
			return fmt.Errorf("load token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", reqID).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &domain.APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.StatusCode),
			Method:     method,
			Path:       path,
		}
		if resp.StatusCode == http.StatusUnauthorized && expireOn401 {
			c.unauthorized()
		}
		return apiErr
	}

	empty := len(bytes.TrimSpace(raw)) == 0
	if out == nil && (resp.StatusCode == http.StatusNoContent || empty) {
		return nil
	}
	if !isJSON(resp.Header.Get("Content-Type")) || empty {
		return fmt.Errorf("%s %s: %w (%q)", method, path, domain.ErrUnexpectedContentType, resp.Header.Get("Content-Type"))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) unauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == contentTypeJSON
}

// errorMessage pulls "error" or "message" out of a JSON error body.
func errorMessage(raw []byte, status int) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" && len(msg) < 200 && !strings.HasPrefix(msg, "<") {
		return msg
	}
	return strings.ToLower(http.StatusText(status))
}
