package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// StatusError is returned when the service answers with a non-2xx status.
// The response body is not interpreted.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// Client reads languages, lessons and quizzes from the content service.
// Every call is a single attempt; nothing is retried or cached.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets a per-request timeout. Zero means no timeout. It applies
// to a copy of the HTTP client, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a Client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// BaseURL returns the service root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Languages fetches GET /languages.
func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	var out []Language
	if err := c.getJSON(ctx, "/languages", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Language{}
	}
	return out, nil
}

// Lessons fetches GET /lessons/{languageID}.
func (c *Client) Lessons(ctx context.Context, languageID ID) ([]Lesson, error) {
	var out []Lesson
	if err := c.getJSON(ctx, "/lessons/"+url.PathEscape(languageID.String()), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Lesson{}
	}
	return out, nil
}

// Quiz fetches GET /quiz/{lessonID} and returns the raw payload, which may
// be an object, a list or null. Decoding is left to quiz.ParseItems.
func (c *Client) Quiz(ctx context.Context, lessonID ID) (json.RawMessage, error) {
	body, err := c.get(ctx, "/quiz/"+url.PathEscape(lessonID.String()))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("content request failed", zap.String("url", u), zap.Error(err))
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	c.log.Debug("content request",
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: u, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u, err)
	}
	return body, nil
}
