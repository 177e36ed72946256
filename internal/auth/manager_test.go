package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfeidau/ciamctl/internal/audit"
	"github.com/wolfeidau/ciamctl/internal/endpoints"
)

func TestPrepareTokenRequest(t *testing.T) {
	t.Run("general uses basic auth and grant_type only", func(t *testing.T) {
		req := prepareTokenRequest(KindGeneral, "cid", "csecret", "https://auth/token")

		expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("cid:csecret"))
		assert.Equal(t, expected, req.Headers["Authorization"])
		assert.Equal(t, "application/x-www-form-urlencoded", req.Headers["Content-Type"])
		assert.Equal(t, "client_credentials", req.Form.Get("grant_type"))
		assert.Empty(t, req.Form.Get("client_id"))
		assert.Empty(t, req.Form.Get("client_secret"))
	})

	t.Run("clientops sends credentials in form body", func(t *testing.T) {
		req := prepareTokenRequest(KindClientOps, "cid2", "csecret2", "https://auth/token")

		assert.NotContains(t, req.Headers, "Authorization")
		assert.Equal(t, "client_credentials", req.Form.Get("grant_type"))
		assert.Equal(t, "cid2", req.Form.Get("client_id"))
		assert.Equal(t, "csecret2", req.Form.Get("client_secret"))
	})
}

// newTestManager points a manager at a fake token endpoint and installs
// credentials for us/qa.
func newTestManager(t *testing.T, handler http.HandlerFunc) (*Manager, *audit.Logger, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	t.Setenv("US_QA_GENERAL_CLIENT_ID", "cid")
	t.Setenv("US_QA_GENERAL_CLIENT_SECRET", "csecret")
	t.Setenv("US_QA_CLIENTOPS_CLIENT_ID", "cid")
	t.Setenv("US_QA_CLIENTOPS_CLIENT_SECRET", "csecret")

	logger := audit.New(false, audit.WithDir(t.TempDir()))
	m := NewManager(logger)
	m.resolveTokenURL = func(endpoints.Region, endpoints.Environment) (string, error) {
		return server.URL, nil
	}

	return m, logger, &hits
}

func tokenHandler(accessToken string, expiresIn int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": accessToken,
			"expires_in":   expiresIn,
		})
	}
}

func TestManager_GetToken(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches once and reuses the cached token", func(t *testing.T) {
		m, _, hits := newTestManager(t, tokenHandler("tok123", 3600))

		tok, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)
		assert.Equal(t, "tok123", tok)

		tok, err = m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)
		assert.Equal(t, "tok123", tok)

		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("force refresh bypasses the cache", func(t *testing.T) {
		m, _, hits := newTestManager(t, tokenHandler("tok123", 3600))

		_, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)

		_, err = m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, true)
		require.NoError(t, err)

		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("refetches within five minutes of expiry", func(t *testing.T) {
		m, _, hits := newTestManager(t, tokenHandler("tok123", 3600))

		start := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
		m.now = func() time.Time { return start }

		_, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)
		require.Equal(t, int32(1), hits.Load())

		// Just inside the safe window: 3600 - 300 = 3300s boundary.
		m.now = func() time.Time { return start.Add(3299 * time.Second) }
		_, err = m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)
		assert.Equal(t, int32(1), hits.Load())

		// At the boundary the token is no longer reused.
		m.now = func() time.Time { return start.Add(3300 * time.Second) }
		_, err = m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("caches per kind independently", func(t *testing.T) {
		m, _, hits := newTestManager(t, tokenHandler("tok123", 3600))

		_, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)

		_, err = m.GetToken(ctx, KindClientOps, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)

		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("unresolvable pair fails without an HTTP call", func(t *testing.T) {
		m, _, hits := newTestManager(t, tokenHandler("tok123", 3600))
		m.resolveTokenURL = endpoints.TokenURL

		_, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUK, endpoints.EnvDev, false)
		assert.ErrorIs(t, err, endpoints.ErrTokenEndpointNotFound)
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("missing credentials fail without an HTTP call", func(t *testing.T) {
		m, _, hits := newTestManager(t, tokenHandler("tok123", 3600))
		t.Setenv("US_QA_GENERAL_CLIENT_SECRET", "")

		_, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		assert.ErrorIs(t, err, ErrMissingCredentials)
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("non-2xx response fails with status and body", func(t *testing.T) {
		m, logger, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusUnauthorized)
		})

		_, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusUnauthorized, fetchErr.StatusCode)
		assert.Contains(t, fetchErr.Body, "nope")

		// The failing response was still logged.
		entries := logger.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "token_response:general", entries[1].Operation)
		assert.Equal(t, http.StatusUnauthorized, entries[1].Response.StatusCode)
	})

	t.Run("transport error is logged then surfaced", func(t *testing.T) {
		m, logger, _ := newTestManager(t, tokenHandler("tok123", 3600))
		m.resolveTokenURL = func(endpoints.Region, endpoints.Environment) (string, error) {
			return "http://127.0.0.1:1", nil
		}

		_, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		require.Error(t, fetchErr.Err)

		entries := logger.Entries()
		require.Len(t, entries, 2)
		assert.NotEmpty(t, entries[1].Error)
	})

	t.Run("response without access_token is malformed", func(t *testing.T) {
		m, _, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"expires_in": 3600}`))
		})

		_, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		assert.ErrorIs(t, err, ErrMalformedTokenResponse)
	})

	t.Run("missing expires_in defaults to one hour", func(t *testing.T) {
		m, _, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token": "tok123"}`))
		})

		now := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
		m.now = func() time.Time { return now }

		_, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)

		cached, ok := m.TokenInfo(KindGeneral)
		require.True(t, ok)
		assert.Equal(t, now.Add(time.Hour), cached.Token.Expiry)
	})

	t.Run("general protocol sends basic auth on the wire", func(t *testing.T) {
		var gotAuth string
		var gotForm string
		m, _, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, r.ParseForm())
			gotForm = r.PostForm.Encode()
			tokenHandler("tok123", 3600)(w, r)
		})

		_, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)

		expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("cid:csecret"))
		assert.Equal(t, expected, gotAuth)
		assert.Equal(t, "grant_type=client_credentials", gotForm)
	})

	t.Run("clientops protocol sends credentials in the body", func(t *testing.T) {
		var gotAuth string
		var gotForm map[string][]string
		m, _, _ := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, r.ParseForm())
			gotForm = r.PostForm
			tokenHandler("tok123", 3600)(w, r)
		})

		_, err := m.GetToken(ctx, KindClientOps, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)

		assert.Empty(t, gotAuth)
		assert.Equal(t, []string{"client_credentials"}, gotForm["grant_type"])
		assert.Equal(t, []string{"cid"}, gotForm["client_id"])
		assert.Equal(t, []string{"csecret"}, gotForm["client_secret"])
	})

	t.Run("redacts the basic auth header in the audit trail", func(t *testing.T) {
		m, logger, _ := newTestManager(t, tokenHandler("tok123", 3600))

		_, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)

		entries := logger.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "token_request:general", entries[0].Operation)
		assert.Equal(t, audit.RedactedValue, entries[0].Request.Headers["Authorization"])
	})
}

func TestManager_TokenInfo(t *testing.T) {
	t.Run("absent before any fetch", func(t *testing.T) {
		m := NewManager(audit.New(false, audit.WithDir(t.TempDir())))

		_, ok := m.TokenInfo(KindGeneral)
		assert.False(t, ok)
	})

	t.Run("exposes token and credentials after a fetch", func(t *testing.T) {
		m, _, _ := newTestManager(t, tokenHandler("tok123", 3600))

		_, err := m.GetToken(context.Background(), KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
		require.NoError(t, err)

		cached, ok := m.TokenInfo(KindGeneral)
		require.True(t, ok)
		assert.Equal(t, "tok123", cached.Token.AccessToken)
		assert.Equal(t, "cid", cached.ClientID)
		assert.Equal(t, "csecret", cached.ClientSecret)
	})
}

func TestManager_ClearCache(t *testing.T) {
	m, _, hits := newTestManager(t, tokenHandler("tok123", 3600))
	ctx := context.Background()

	_, err := m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
	require.NoError(t, err)

	m.ClearCache()

	_, ok := m.TokenInfo(KindGeneral)
	assert.False(t, ok)

	_, err = m.GetToken(ctx, KindGeneral, endpoints.RegionUS, endpoints.EnvQA, false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}
