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
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"marketplace-client/internal/pkg/logger"
	"marketplace-client/pkg/tokenstore"
)

const (
	DefaultTimeout = 30 * time.Second

	refreshEndpoint = "/auth/jwt/refresh/"
)

// Client is the session-aware gateway to the marketplace backend. It
// attaches bearer tokens, refreshes an expired access token at most once
// per concurrent burst, and replays the failed request a single time.
// One instance is shared process-wide via the bootstrap container.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	tokens  tokenstore.Store
	log     logger.ILogger
	tracer  trace.Tracer

	// Short-TTL cache for idempotent GETs; nil when disabled.
	respCache *gocache.Cache

	// Refresh single-flight state. Guarded by mu; the refresh network
	// call itself runs outside the lock.
	mu         sync.Mutex
	refreshing bool
	waiters    []chan refreshResult
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithResponseCache enables caching of successful GET responses for ttl.
func WithResponseCache(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.respCache = gocache.New(ttl, 2*ttl)
		}
	}
}

func New(baseURL string, tokens tokenstore.Store, log logger.ILogger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		tokens:  tokens,
		log:     log,
		tracer:  otel.Tracer("apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

// RequestOptions mirror the per-call knobs; the zero value is a GET with
// default JSON headers.
type RequestOptions struct {
	Method  string
	Body    interface{}
	Headers map[string]string
	Query   url.Values
	NoCache bool
}

// Response is a parsed backend reply. A 204 has no body.
type Response struct {
	StatusCode int
	body       []byte
	isJSON     bool
}

// Decode unmarshals a JSON body into v. Decoding a 204 is a no-op.
func (r *Response) Decode(v interface{}) error {
	if len(r.body) == 0 || v == nil {
		return nil
	}
	return json.Unmarshal(r.body, v)
}

// Text returns the raw body for non-JSON replies.
func (r *Response) Text() string {
	return string(r.body)
}

// Request issues one logical call. Behavior on 401 with a token attached:
// refresh once, replay once, and surface ErrAuthentication if the replay
// is rejected again.
func (c *Client) Request(ctx context.Context, endpoint string, opts *RequestOptions) (*Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.resolveURL(endpoint, opts.Query)

	ctx, span := c.tracer.Start(ctx, method+" "+endpoint)
	defer span.End()

	cacheKey := method + " " + target
	cacheable := c.respCache != nil && method == http.MethodGet && !opts.NoCache
	if cacheable {
		if hit, found := c.respCache.Get(cacheKey); found {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return hit.(*Response), nil
		}
	}

	var payload []byte
	if opts.Body != nil {
		var err error
		payload, err = json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	accessToken, err := c.tokens.Get(tokenstore.AccessTokenKey)
	if err != nil {
		c.log.Warn("apiclient", "token store read failed", map[string]interface{}{"error": err.Error()})
		accessToken = ""
	}

	// Skip a call that is guaranteed to bounce: an access token whose exp
	// claim already passed gets refreshed up front.
	if accessToken != "" && tokenExpired(accessToken) {
		newToken, err := c.Refresh(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		accessToken = newToken
	}

	resp, status, err := c.do(ctx, method, target, payload, opts.Headers, accessToken)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if status == http.StatusUnauthorized && accessToken != "" {
		newToken, refreshErr := c.Refresh(ctx)
		if refreshErr != nil {
			c.clearSession()
			c.log.Warn("apiclient", "token refresh failed", map[string]interface{}{"error": refreshErr.Error()})
			return nil, fmt.Errorf("%w: %v", ErrAuthentication, refreshErr)
		}

		resp, status, err = c.do(ctx, method, target, payload, opts.Headers, newToken)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if status == http.StatusUnauthorized {
			// A second 401 after a fresh token is not retried again.
			c.clearSession()
			return nil, ErrAuthentication
		}
	}

	span.SetAttributes(attribute.Int("http.status_code", status))

	if resp != nil && cacheable {
		c.respCache.Set(cacheKey, resp, gocache.DefaultExpiration)
	}
	return resp, nil
}

// do performs a single HTTP exchange under the client timeout and shapes
// the outcome. A 401 is reported through the status return so the caller
// can run the refresh protocol; every other non-2xx becomes an error here.
func (c *Client) do(ctx context.Context, method, target string, payload []byte, headers map[string]string, accessToken string) (*Response, int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, target, body)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	res, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || reqCtx.Err() == context.DeadlineExceeded {
			return nil, 0, ErrTimeout
		}
		// Transport failures propagate as-is.
		return nil, 0, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || reqCtx.Err() == context.DeadlineExceeded {
			return nil, 0, ErrTimeout
		}
		return nil, 0, err
	}

	isJSON := strings.Contains(res.Header.Get("Content-Type"), "application/json")

	// A 401 with a token attached belongs to the refresh protocol and is
	// reported through the status only; a tokenless 401 is just an error.
	if res.StatusCode == http.StatusUnauthorized && accessToken != "" {
		return nil, res.StatusCode, nil
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, res.StatusCode, shapeError(res.StatusCode, isJSON, raw)
	}

	if res.StatusCode == http.StatusNoContent {
		return &Response{StatusCode: res.StatusCode}, res.StatusCode, nil
	}

	return &Response{StatusCode: res.StatusCode, body: raw, isJSON: isJSON}, res.StatusCode, nil
}

func (c *Client) resolveURL(endpoint string, query url.Values) string {
	target := endpoint
	if !strings.HasPrefix(endpoint, "http") {
		target = c.baseURL + endpoint
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}
	return target
}

// SetTokens persists a credential pair. An empty refresh keeps the stored
// one, matching backends that do not rotate refresh tokens.
func (c *Client) SetTokens(access, refresh string) error {
	if err := c.tokens.Set(tokenstore.AccessTokenKey, access); err != nil {
		return err
	}
	if refresh != "" {
		return c.tokens.Set(tokenstore.RefreshTokenKey, refresh)
	}
	return nil
}

// ClearSession removes both tokens and flushes any cached responses.
func (c *Client) ClearSession() {
	c.clearSession()
	if c.respCache != nil {
		c.respCache.Flush()
	}
}

func (c *Client) clearSession() {
	if err := c.tokens.Remove(tokenstore.AccessTokenKey); err != nil {
		c.log.Warn("apiclient", "failed to clear access token", map[string]interface{}{"error": err.Error()})
	}
	if err := c.tokens.Remove(tokenstore.RefreshTokenKey); err != nil {
		c.log.Warn("apiclient", "failed to clear refresh token", map[string]interface{}{"error": err.Error()})
	}
}

// Convenience verbs. A non-nil out receives the decoded JSON body.

func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	resp, err := c.Request(ctx, endpoint, &RequestOptions{Method: http.MethodGet, Query: query})
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// GetUncached bypasses the response cache. Session-scoped reads that
// change with user actions (wishlist, profile) must never be served from
// a stale entry.
func (c *Client) GetUncached(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	resp, err := c.Request(ctx, endpoint, &RequestOptions{Method: http.MethodGet, Query: query, NoCache: true})
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, out interface{}) error {
	resp, err := c.Request(ctx, endpoint, &RequestOptions{Method: http.MethodPost, Body: body})
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body, out interface{}) error {
	resp, err := c.Request(ctx, endpoint, &RequestOptions{Method: http.MethodPut, Body: body})
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body, out interface{}) error {
	resp, err := c.Request(ctx, endpoint, &RequestOptions{Method: http.MethodPatch, Body: body})
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (c *Client) Delete(ctx context.Context, endpoint string) error {
	_, err := c.Request(ctx, endpoint, &RequestOptions{Method: http.MethodDelete})
	return err
}
