// Package client issues authenticated requests against the CIAM API for
// a configured region/environment, routing every request and response
// through the audit logger.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/ciamctl/internal/audit"
	"github.com/wolfeidau/ciamctl/internal/auth"
	"github.com/wolfeidau/ciamctl/internal/endpoints"
)

// StoreHeader is the tenant-scoping header naming the active store.
const StoreHeader = "X-Store-Id"

// StatusError reports a non-2xx response on a business call. The
// response was audit-logged before this error was raised.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: %d %s", e.StatusCode, e.Body)
}

// TransportError reports a network-level failure, including timeouts.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TokenSource supplies bearer tokens for API calls. Satisfied by
// *auth.Manager.
type TokenSource interface {
	GetToken(ctx context.Context, kind auth.Kind, region endpoints.Region, env endpoints.Environment, force bool) (string, error)
}

// Config selects the endpoint topology and credentials for a Client.
type Config struct {
	Region endpoints.Region
	Env    endpoints.Environment

	// StoreID scopes requests to a tenant via the store header. Optional.
	StoreID string

	// Credentials selects the credential kind; the "client" alias is
	// accepted. Defaults to general.
	Credentials string

	// Verbose controls audit redaction verbosity.
	Verbose bool
}

// Client is an authenticated CIAM API client bound to one
// region/environment pair.
type Client struct {
	region  endpoints.Region
	env     endpoints.Environment
	storeID string
	kind    auth.Kind

	tokens     TokenSource
	audit      *audit.Logger
	httpClient *http.Client

	// resolveBaseURL is swappable in tests.
	resolveBaseURL func(endpoints.Region, endpoints.Environment) (string, error)
}

// New creates a Client. The credential kind is normalized up front so an
// unknown kind is rejected here rather than on first use.
func New(cfg Config, tokens TokenSource, auditLogger *audit.Logger) (*Client, error) {
	kindSelector := cfg.Credentials
	if kindSelector == "" {
		kindSelector = string(auth.KindGeneral)
	}

	kind, err := auth.ParseKind(kindSelector)
	if err != nil {
		return nil, err
	}

	return &Client{
		region:         cfg.Region,
		env:            cfg.Env,
		storeID:        cfg.StoreID,
		kind:           kind,
		tokens:         tokens,
		audit:          auditLogger,
		httpClient:     newHTTPClient(),
		resolveBaseURL: endpoints.BaseURL,
	}, nil
}

// RequestOptions carries the optional parts of a request. The zero value
// sends the store header when a store id is configured.
type RequestOptions struct {
	// Params are appended to the URL as query parameters.
	Params map[string]string

	// Body is JSON-encoded into the request body when non-nil.
	Body any

	// SkipStoreHeader omits the store header even when a store id is
	// configured. Store-level operations must set this.
	SkipStoreHeader bool
}

// Result is a normalized successful response.
type Result struct {
	Success    bool
	StatusCode int
	Data       any
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts *RequestOptions) (*Result, error) {
	return c.do(ctx, http.MethodGet, path, opts)
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, opts *RequestOptions) (*Result, error) {
	return c.do(ctx, http.MethodPost, path, opts)
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, opts *RequestOptions) (*Result, error) {
	return c.do(ctx, http.MethodPut, path, opts)
}

// Patch issues a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, opts *RequestOptions) (*Result, error) {
	return c.do(ctx, http.MethodPatch, path, opts)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts *RequestOptions) (*Result, error) {
	return c.do(ctx, http.MethodDelete, path, opts)
}

func (c *Client) do(ctx context.Context, method, path string, opts *RequestOptions) (*Result, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	// Re-resolved on every call so a misconfigured region/environment is
	// caught per request.
	baseURL, err := c.resolveBaseURL(c.region, c.env)
	if err != nil {
		return nil, err
	}

	headers, err := c.headers(ctx, !opts.SkipStoreHeader)
	if err != nil {
		return nil, err
	}

	fullURL := baseURL + path
	if len(opts.Params) > 0 {
		q := url.Values{}
		for k, v := range opts.Params {
			q.Set(k, v)
		}
		fullURL += "?" + q.Encode()
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	operation := method + " " + path
	reqMeta := &audit.RequestMeta{
		Method:  method,
		URL:     fullURL,
		Headers: headers,
		Params:  opts.Params,
		Body:    opts.Body,
	}

	log.Debug().Str("method", method).Str("url", fullURL).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.audit.Log(operation, reqMeta, nil, err.Error())
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.audit.Log(operation, reqMeta, nil, err.Error())
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}

	body := parseBody(raw)

	// Logged before evaluating success so failures leave a trace too.
	c.audit.Log(operation, reqMeta, &audit.ResponseMeta{
		StatusCode: resp.StatusCode,
		Headers:    audit.HeaderMap(resp.Header),
		Body:       body.Value(),
	}, "")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return &Result{
		Success:    true,
		StatusCode: resp.StatusCode,
		Data:       body.Value(),
	}, nil
}

// headers builds the request headers, fetching a bearer token for the
// configured credential kind.
func (c *Client) headers(ctx context.Context, wantStoreHeader bool) (map[string]string, error) {
	token, err := c.tokens.GetToken(ctx, c.kind, c.region, c.env, false)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  "application/json",
		"X-Request-Id":  uuid.NewString(),
	}

	if wantStoreHeader && c.storeID != "" {
		headers[StoreHeader] = c.storeID
	}

	return headers, nil
}

// IsNotFound reports whether err is a business-call failure with a 404
// status.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
