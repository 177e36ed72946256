package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()

	l, err := NewLog(filepath.Join(t.TempDir(), "history.jsonl"))
	require.NoError(t, err)
	return l
}

func TestLog_Append(t *testing.T) {
	t.Run("records entries oldest first", func(t *testing.T) {
		l := newTestLog(t)

		require.NoError(t, l.Append(Entry{Argv: []string{"users", "get", "u1"}, Region: "us", Env: "qa"}))
		require.NoError(t, l.Append(Entry{Argv: []string{"groups", "list"}, Region: "us", Env: "qa"}))

		entries, err := l.Last(10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, []string{"users", "get", "u1"}, entries[0].Argv)
		assert.Equal(t, []string{"groups", "list"}, entries[1].Argv)
		assert.False(t, entries[0].Timestamp.IsZero())
	})
}

func TestLog_Last(t *testing.T) {
	t.Run("missing file yields no entries", func(t *testing.T) {
		l := newTestLog(t)

		entries, err := l.Last(10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("returns only the most recent entries", func(t *testing.T) {
		l := newTestLog(t)
		for i := 0; i < 5; i++ {
			require.NoError(t, l.Append(Entry{Argv: []string{"cmd", string(rune('a' + i))}}))
		}

		entries, err := l.Last(2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, []string{"cmd", "d"}, entries[0].Argv)
		assert.Equal(t, []string{"cmd", "e"}, entries[1].Argv)
	})

	t.Run("skips malformed lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.jsonl")
		content := `{"argv":["users","list"]}` + "\n" + "not json\n" + `{"argv":["groups","list"]}` + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		l, err := NewLog(path)
		require.NoError(t, err)

		entries, err := l.Last(10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
	})
}

func TestLog_CommandAt(t *testing.T) {
	l := newTestLog(t)
	require.NoError(t, l.Append(Entry{Argv: []string{"oldest"}}))
	require.NoError(t, l.Append(Entry{Argv: []string{"middle"}}))
	require.NoError(t, l.Append(Entry{Argv: []string{"newest"}}))

	t.Run("index zero is the most recent", func(t *testing.T) {
		argv, err := l.CommandAt(0, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"newest"}, argv)
	})

	t.Run("highest index is the oldest listed", func(t *testing.T) {
		argv, err := l.CommandAt(2, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"oldest"}, argv)
	})

	t.Run("out of range fails", func(t *testing.T) {
		_, err := l.CommandAt(3, 10)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		_, err = l.CommandAt(-1, 10)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})
}
