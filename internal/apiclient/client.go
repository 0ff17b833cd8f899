// Package apiclient is the console's client for the ERP REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"erp-console/internal/contextkeys"
)

func init() {
	// the ERP API expects amounts as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

const maxErrorBody = 64 << 10

// Client talks to the ERP API. It is immutable; WithToken and OnUnauthorized
// return copies, so one base client can be shared by all requests.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          string
	onUnauthorized func()
	log            zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy that sends "Authorization: Bearer <token>".
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// OnUnauthorized returns a copy that calls fn whenever an authenticated call
// is answered with 401.
func (c *Client) OnUnauthorized(fn func()) *Client {
	cp := *c
	cp.onUnauthorized = fn
	return &cp
}

// Token returns the bearer token the client sends, if any.
func (c *Client) Token() string { return c.token }

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("apiclient: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("apiclient: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if id := contextkeys.GetRequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("erp api unreachable")
		return &Error{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("erp api call")

	if resp.StatusCode >= 400 {
		apiErr := &Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode}
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &eb) == nil {
			apiErr.Message = eb.Message
			if apiErr.Message == "" {
				apiErr.Message = eb.Error
			}
		}
		if apiErr.Kind == KindAuth && c.token != "" && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &Error{Kind: KindServer, Status: resp.StatusCode, Err: fmt.Errorf("decode %s %s: %w", method, path, err)}
	}
	return nil
}
