// Package history records CLI invocations as JSON lines so they can be
// listed and replayed.
package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MaxEntries caps how many history entries a listing may request.
const MaxEntries = 100

// ErrIndexOutOfRange is returned when a replay index does not resolve to
// a recorded command.
var ErrIndexOutOfRange = errors.New("history index out of range")

// Entry is one recorded invocation.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Argv      []string  `json:"argv"`
	Region    string    `json:"region,omitempty"`
	Env       string    `json:"env,omitempty"`
	StoreID   string    `json:"store_id,omitempty"`
}

// Log appends to and reads from the history file.
type Log struct {
	path string
}

// NewLog creates a history log. If path is empty it uses
// ~/.ciamctl/history.jsonl.
func NewLog(path string) (*Log, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		dir := filepath.Join(home, ".ciamctl")
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}

		path = filepath.Join(dir, "history.jsonl")
	}

	return &Log{path: path}, nil
}

// Append records one invocation.
func (l *Log) Append(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	return nil
}

// Last returns up to limit most recent entries, oldest first. Malformed
// lines are skipped. limit is capped at MaxEntries.
func (l *Log) Last(limit int) ([]Entry, error) {
	if limit <= 0 || limit > MaxEntries {
		limit = MaxEntries
	}

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	return entries, nil
}

// CommandAt returns the argv for the display index used by the history
// listing: index 0 is the most recent of the last limit entries.
func (l *Log) CommandAt(index, limit int) ([]string, error) {
	entries, err := l.Last(limit)
	if err != nil {
		return nil, err
	}

	actual := len(entries) - index - 1
	if index < 0 || actual < 0 || actual >= len(entries) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	return entries[actual].Argv, nil
}
