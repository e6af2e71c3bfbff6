package shipper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"service-shipping-go/internal/apperr"
	"service-shipping-go/internal/logx"
)

// Base URLs selected by the sandbox flag, unless overridden in config.
const (
	SandboxBaseURL    = "https://merchant-api-sandbox.shipper.id"
	ProductionBaseURL = "https://merchant-api.shipper.id"
)

type counter interface {
	Inc()
}

// doer abstracts *http.Client for tests.
type doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client maps one logical shipping operation to one upstream HTTP call
// and normalizes upstream error shapes into apperr values.
type Client struct {
	baseURL string
	apiKey  string
	http    doer
	logger  logx.Logger
	calls   counter
	errors  counter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(d doer) Option {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// WithCallCounter sets a counter incremented on every upstream round trip.
func WithCallCounter(cnt counter) Option {
	return func(c *Client) { c.calls = cnt }
}

// WithErrorCounter sets a counter incremented on every failed upstream call.
func WithErrorCounter(cnt counter) Option {
	return func(c *Client) { c.errors = cnt }
}

// New creates a provider gateway client. An empty baseURL selects the
// sandbox or production host by the sandbox flag.
func New(apiKey, baseURL string, sandbox bool, logger logx.Logger, opts ...Option) *Client {
	if baseURL == "" {
		if sandbox {
			baseURL = SandboxBaseURL
		} else {
			baseURL = ProductionBaseURL
		}
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    http.DefaultClient,
		logger:  logger,
	}
	if c.logger == nil {
		c.logger = logx.Nop()
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the resolved provider base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Result is a decoded provider envelope. Metadata passes through untouched
// so proxy handlers can forward it to their own callers. Raw holds the
// undecoded data block for the same reason: re-encoding Data would drop
// every provider field outside the typed model.
type Result[T any] struct {
	Metadata json.RawMessage `json:"metadata,omitempty"`
	Data     T               `json:"data"`
	Raw      json.RawMessage `json:"-"`
}

// envelope mirrors the provider's top-level response shape.
type envelope struct {
	Metadata json.RawMessage `json:"metadata,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// errorEnvelope is the slice of the error body the normalization contract
// extracts the message from: metadata.errors[0].message.
type errorEnvelope struct {
	Metadata struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"metadata"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes the request and returns the decoded envelope, or an apperr
// value per the normalization contract: a non-2xx response becomes
// apperr.Upstream with the extracted message and raw body; anything below
// the HTTP layer becomes apperr.Transport.
func (c *Client) do(req *http.Request) (*envelope, error) {
	if c.calls != nil {
		c.calls.Inc()
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(req, &apperr.Transport{Message: err.Error()})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(req, &apperr.Transport{Message: err.Error()})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(req, &apperr.Upstream{
			Status:  resp.StatusCode,
			Message: extractErrorMessage(raw),
			Data:    raw,
		})
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, c.fail(req, &apperr.Transport{Message: err.Error()})
	}
	return &env, nil
}

func (c *Client) fail(req *http.Request, err error) error {
	if c.errors != nil {
		c.errors.Inc()
	}
	c.logger.Warn("shipper call failed",
		logx.String("method", req.Method),
		logx.String("path", req.URL.Path),
		logx.Any("err", err),
	)
	return err
}

// extractErrorMessage pulls metadata.errors[0].message out of an error
// body, falling back to a generic message when the shape does not match.
func extractErrorMessage(raw []byte) string {
	var ee errorEnvelope
	if err := json.Unmarshal(raw, &ee); err == nil && len(ee.Metadata.Errors) > 0 && ee.Metadata.Errors[0].Message != "" {
		return ee.Metadata.Errors[0].Message
	}
	return "API Error"
}

// call runs one round trip and decodes the envelope's data into T.
func call[T any](c *Client, req *http.Request) (*Result[T], error) {
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	res := &Result[T]{Metadata: env.Metadata, Raw: env.Data}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &res.Data); err != nil {
			return nil, c.fail(req, &apperr.Transport{Message: fmt.Sprintf("decode response data: %v", err)})
		}
	}
	return res, nil
}
