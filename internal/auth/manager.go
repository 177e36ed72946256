// Package auth acquires and caches OAuth2 client-credential tokens for
// the CIAM token endpoints. Tokens live in memory for one process
// invocation only.
package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/wolfeidau/ciamctl/internal/audit"
	"github.com/wolfeidau/ciamctl/internal/endpoints"
)

const (
	// freshnessMargin is the safety window before expiry within which a
	// cached token is no longer reused. This guards against a token
	// expiring mid-call.
	freshnessMargin = 5 * time.Minute

	// fetchTimeout bounds a single token endpoint round-trip.
	fetchTimeout = 10 * time.Second

	// defaultExpirySeconds applies when the token response carries no
	// usable expires_in.
	defaultExpirySeconds = 3600
)

// Sentinel errors
var (
	// ErrMissingCredentials is returned when the client id or secret
	// environment variable for a region/environment is unset.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrMalformedTokenResponse is returned when a successful token
	// response lacks an access_token field.
	ErrMalformedTokenResponse = errors.New("token response did not contain access_token")
)

// FetchError reports a failed token fetch: either a non-2xx response
// (StatusCode and Body set) or a transport failure (Err set).
type FetchError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch token: %v", e.Err)
	}
	return fmt.Sprintf("failed to fetch token: %d %s", e.StatusCode, e.Body)
}

func (e *FetchError) Unwrap() error { return e.Err }

// CachedToken is one cache slot: the fetched token plus the credentials
// used to obtain it, retained for the tokens-view display only.
type CachedToken struct {
	Token        oauth2.Token
	ClientID     string
	ClientSecret string
}

// Manager resolves credentials, fetches tokens from the per-region token
// endpoints and caches one token per credential kind. The cache
// check-fetch-store cycle is mutex-guarded so concurrent callers never
// trigger duplicate fetches for the same kind.
type Manager struct {
	mu     sync.Mutex
	tokens map[Kind]*CachedToken

	httpClient *http.Client
	audit      *audit.Logger
	now        func() time.Time

	// resolveTokenURL is swappable in tests.
	resolveTokenURL func(endpoints.Region, endpoints.Environment) (string, error)
}

// NewManager creates a token manager that logs every token request and
// response through auditLogger.
func NewManager(auditLogger *audit.Logger) *Manager {
	return &Manager{
		tokens:          make(map[Kind]*CachedToken),
		httpClient:      &http.Client{Timeout: fetchTimeout},
		audit:           auditLogger,
		now:             time.Now,
		resolveTokenURL: endpoints.TokenURL,
	}
}

// GetToken returns a bearer token for kind, reusing the cached one while
// it is more than five minutes from expiry. force bypasses the cache.
func (m *Manager) GetToken(ctx context.Context, kind Kind, region endpoints.Region, env endpoints.Environment, force bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !force {
		if cached, ok := m.tokens[kind]; ok && m.now().Add(freshnessMargin).Before(cached.Token.Expiry) {
			log.Debug().
				Str("kind", string(kind)).
				Time("expiry", cached.Token.Expiry).
				Msg("reusing cached token")
			return cached.Token.AccessToken, nil
		}
	}

	cached, err := m.fetch(ctx, kind, region, env)
	if err != nil {
		return "", err
	}

	m.tokens[kind] = cached

	return cached.Token.AccessToken, nil
}

// TokenInfo returns the cached token for kind, if any. Read-only cache
// inspection for the tokens-view command.
func (m *Manager) TokenInfo(kind Kind) (*CachedToken, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cached, ok := m.tokens[kind]
	if !ok {
		return nil, false
	}

	copied := *cached
	return &copied, true
}

// ClearCache resets every cache slot.
func (m *Manager) ClearCache() {
	m.mu.Lock()
	m.tokens = make(map[Kind]*CachedToken)
	m.mu.Unlock()
}

// tokenRequest holds the prepared wire-level request for a token fetch.
type tokenRequest struct {
	URL     string
	Headers map[string]string
	Form    url.Values
}

// prepareTokenRequest builds the request for kind. general sends Basic
// auth with a grant_type-only body; clientops puts the credentials in
// the form body instead.
func prepareTokenRequest(kind Kind, clientID, clientSecret, tokenURL string) tokenRequest {
	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}
	form := url.Values{"grant_type": {"client_credentials"}}

	if kind == KindGeneral {
		basic := base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))
		headers["Authorization"] = "Basic " + basic
	} else {
		form.Set("client_id", clientID)
		form.Set("client_secret", clientSecret)
	}

	return tokenRequest{URL: tokenURL, Headers: headers, Form: form}
}

// credentialsFromEnv resolves the client id/secret for kind from the
// conventionally named environment variables.
func credentialsFromEnv(kind Kind, region endpoints.Region, env endpoints.Environment) (string, string, error) {
	prefix := fmt.Sprintf("%s_%s_%s", strings.ToUpper(string(region)), strings.ToUpper(string(env)), kind.envSuffix())

	clientID := os.Getenv(prefix + "_CLIENT_ID")
	clientSecret := os.Getenv(prefix + "_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return "", "", fmt.Errorf("%w: set %s_CLIENT_ID and %s_CLIENT_SECRET", ErrMissingCredentials, prefix, prefix)
	}

	return clientID, clientSecret, nil
}

func (m *Manager) fetch(ctx context.Context, kind Kind, region endpoints.Region, env endpoints.Environment) (*CachedToken, error) {
	tokenURL, err := m.resolveTokenURL(region, env)
	if err != nil {
		return nil, err
	}

	clientID, clientSecret, err := credentialsFromEnv(kind, region, env)
	if err != nil {
		return nil, err
	}

	req := prepareTokenRequest(kind, clientID, clientSecret, tokenURL)

	m.audit.Log("token_request:"+string(kind), &audit.RequestMeta{
		Method:  http.MethodPost,
		URL:     req.URL,
		Headers: req.Headers,
		Body:    formMap(req.Form),
	}, nil, "")

	log.Debug().Str("kind", string(kind)).Str("url", req.URL).Msg("fetching token")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, strings.NewReader(req.Form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		m.audit.Log("token_response:"+string(kind), nil, nil, err.Error())
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		m.audit.Log("token_response:"+string(kind), nil, nil, err.Error())
		return nil, &FetchError{Err: err}
	}

	body := decodeBody(raw)

	m.audit.Log("token_response:"+string(kind), nil, &audit.ResponseMeta{
		StatusCode: resp.StatusCode,
		Headers:    audit.HeaderMap(resp.Header),
		Body:       body,
	}, "")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	obj, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMalformedTokenResponse, string(raw))
	}

	accessToken, _ := obj["access_token"].(string)
	if accessToken == "" {
		return nil, fmt.Errorf("%w: %s", ErrMalformedTokenResponse, string(raw))
	}

	expiresIn := defaultExpirySeconds
	if f, ok := obj["expires_in"].(float64); ok {
		expiresIn = int(f)
	}

	return &CachedToken{
		Token: oauth2.Token{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			Expiry:      m.now().Add(time.Duration(expiresIn) * time.Second),
		},
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}, nil
}

// decodeBody parses raw as JSON, falling back to the raw text when it is
// not a valid document.
func decodeBody(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

func formMap(form url.Values) map[string]string {
	out := make(map[string]string, len(form))
	for k := range form {
		out[k] = form.Get(k)
	}
	return out
}
