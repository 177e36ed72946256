package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	t.Run("always redacts secrets regardless of verbosity", func(t *testing.T) {
		in := map[string]any{
			"client_secret": "s3cret",
			"Password":      "hunter2",
			"Authorization": "Basic abc",
			"bearer_value":  "xyz",
			"name":          "alice",
		}

		for _, verbose := range []bool{false, true} {
			out := Redact(in, verbose).(map[string]any)
			assert.Equal(t, RedactedValue, out["client_secret"])
			assert.Equal(t, RedactedValue, out["Password"])
			assert.Equal(t, RedactedValue, out["Authorization"])
			assert.Equal(t, RedactedValue, out["bearer_value"])
			assert.Equal(t, "alice", out["name"])
		}
	})

	t.Run("redacts tokens and keys only when not verbose", func(t *testing.T) {
		in := map[string]any{
			"access_token": "tok123",
			"api_key":      "key123",
			"credential":   "cred123",
		}

		out := Redact(in, false).(map[string]any)
		assert.Equal(t, RedactedValue, out["access_token"])
		assert.Equal(t, RedactedValue, out["api_key"])
		assert.Equal(t, RedactedValue, out["credential"])

		out = Redact(in, true).(map[string]any)
		assert.Equal(t, "tok123", out["access_token"])
		assert.Equal(t, "key123", out["api_key"])
		assert.Equal(t, "cred123", out["credential"])
	})

	t.Run("descends into nested maps and slices", func(t *testing.T) {
		in := map[string]any{
			"users": []any{
				map[string]any{"email": "a@example.com", "password": "p1"},
				map[string]any{"email": "b@example.com", "password": "p2"},
			},
			"meta": map[string]any{
				"request": map[string]any{"Authorization": "Bearer tok"},
			},
		}

		out := Redact(in, true).(map[string]any)
		users := out["users"].([]any)
		assert.Len(t, users, 2)
		assert.Equal(t, RedactedValue, users[0].(map[string]any)["password"])
		assert.Equal(t, "a@example.com", users[0].(map[string]any)["email"])

		meta := out["meta"].(map[string]any)
		req := meta["request"].(map[string]any)
		assert.Equal(t, RedactedValue, req["Authorization"])
	})

	t.Run("handles string maps", func(t *testing.T) {
		in := map[string]string{
			"Authorization": "Bearer tok",
			"Content-Type":  "application/json",
		}

		out := Redact(in, false).(map[string]string)
		assert.Equal(t, RedactedValue, out["Authorization"])
		assert.Equal(t, "application/json", out["Content-Type"])
	})

	t.Run("passes scalars through unchanged", func(t *testing.T) {
		assert.Equal(t, "plain", Redact("plain", false))
		assert.Equal(t, 42, Redact(42, false))
		assert.Nil(t, Redact(nil, false))
	})

	t.Run("is idempotent and structure preserving", func(t *testing.T) {
		in := map[string]any{
			"access_token": "tok",
			"items":        []any{"a", "b", "c"},
			"nested":       map[string]any{"secret": "s", "plain": 1},
		}

		once := Redact(in, false)
		twice := Redact(once, false)
		assert.Equal(t, once, twice)

		out := once.(map[string]any)
		assert.Len(t, out, len(in))
		assert.Len(t, out["items"].([]any), 3)

		// Input is never mutated.
		assert.Equal(t, "tok", in["access_token"])
	})
}
