// Package audit buffers redacted request/response records for one
// command invocation and flushes them to a timestamped JSON artifact.
package audit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// RequestMeta describes an outgoing HTTP request.
type RequestMeta struct {
	Method  string            `json:"method,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
	Body    any               `json:"body,omitempty"`
}

// ResponseMeta describes a received HTTP response.
type ResponseMeta struct {
	StatusCode int               `json:"status_code,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       any               `json:"body,omitempty"`
}

// Entry is one logged operation. Request and response payloads are
// redacted at insertion time and never mutated afterwards.
type Entry struct {
	Timestamp time.Time     `json:"timestamp"`
	Operation string        `json:"operation"`
	Request   *RequestMeta  `json:"request,omitempty"`
	Response  *ResponseMeta `json:"response,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// Logger accumulates audit entries for the lifetime of one command
// invocation. It is safe for concurrent use; entries preserve insertion
// order.
type Logger struct {
	mu      sync.Mutex
	verbose bool
	entries []Entry
	dir     string
	now     func() time.Time
}

// Option configures a Logger.
type Option func(*Logger)

// WithDir overrides the artifact directory (default: working directory).
func WithDir(dir string) Option {
	return func(l *Logger) { l.dir = dir }
}

// New creates a Logger. In verbose mode token-bearing fields stay
// visible in the artifact; passwords and secrets are redacted regardless.
func New(verbose bool, opts ...Option) *Logger {
	l := &Logger{
		verbose: verbose,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log appends one entry. req and resp are optional; their payloads are
// passed through the redaction policy before storage. errMsg is stored
// verbatim.
func (l *Logger) Log(operation string, req *RequestMeta, resp *ResponseMeta, errMsg string) {
	entry := Entry{
		Timestamp: l.now().UTC(),
		Operation: operation,
		Error:     errMsg,
	}

	if req != nil {
		r := *req
		r.Headers = redactStringMap(req.Headers, l.verbose)
		r.Params = redactStringMap(req.Params, l.verbose)
		r.Body = Redact(req.Body, l.verbose)
		entry.Request = &r
	}

	if resp != nil {
		r := *resp
		r.Headers = redactStringMap(resp.Headers, l.verbose)
		r.Body = Redact(resp.Body, l.verbose)
		entry.Response = &r
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Entries returns a snapshot of the logged entries in insertion order.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear empties the entry buffer without touching verbosity.
func (l *Logger) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}

// WriteToFile flushes the buffered entries as an indented JSON array to
// output-<UTC timestamp>.json and returns the path. When no entries were
// logged it returns an empty path and creates no file.
func (l *Logger) WriteToFile() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == 0 {
		return "", nil
	}

	dir := l.dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		dir = cwd
	}

	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal audit entries: %w", err)
	}

	name := fmt.Sprintf("output-%s.json", l.now().UTC().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	log.Debug().Str("path", path).Int("entries", len(l.entries)).Msg("audit file written")

	return path, nil
}

// HeaderMap flattens an http.Header into the map shape stored in
// request/response metadata.
func HeaderMap(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}

func redactStringMap(m map[string]string, verbose bool) map[string]string {
	if m == nil {
		return nil
	}
	return Redact(m, verbose).(map[string]string)
}
