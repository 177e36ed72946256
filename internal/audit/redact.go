package audit

import "strings"

// RedactedValue replaces any value stored under a sensitive key.
const RedactedValue = "***REDACTED***"

// Key fragments whose values are always redacted, regardless of verbosity.
var alwaysRedact = []string{"password", "secret", "authorization", "bearer"}

// Key fragments additionally redacted when not in verbose mode.
var defaultRedact = []string{"token", "key", "credential", "access"}

// Redact walks an arbitrary structure of maps, slices and scalars and
// replaces values stored under sensitive keys with RedactedValue. The
// result is a copy; the input is never mutated. Redaction is total over
// any input shape and idempotent.
func Redact(data any, verbose bool) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			if sensitiveKey(k, verbose) {
				out[k] = RedactedValue
				continue
			}
			out[k] = Redact(val, verbose)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, val := range v {
			if sensitiveKey(k, verbose) {
				out[k] = RedactedValue
				continue
			}
			out[k] = val
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Redact(item, verbose)
		}
		return out
	default:
		return data
	}
}

func sensitiveKey(key string, verbose bool) bool {
	lower := strings.ToLower(key)
	for _, frag := range alwaysRedact {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	if verbose {
		return false
	}
	for _, frag := range defaultRedact {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
