package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/wolfeidau/ciamctl/internal/history"
)

// HistoryCmd lists recent invocations or replays one of them.
type HistoryCmd struct {
	Number int `help:"Number of entries to show" short:"n" default:"10"`
	Replay int `help:"Replay the command at this index (0 = most recent)" short:"r" default:"-1"`
}

func (c *HistoryCmd) Run(ctx context.Context, globals *Globals) error {
	histLog, err := history.NewLog("")
	if err != nil {
		return err
	}

	if c.Replay >= 0 {
		argv, err := histLog.CommandAt(c.Replay, c.Number)
		if err != nil {
			return err
		}
		fmt.Printf("Replaying: %s\n", strings.Join(argv, " "))
		return globals.Replay(ctx, argv)
	}

	entries, err := histLog.Last(c.Number)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No command history found")
		return nil
	}

	fmt.Println("Command History:")
	// Most recent last, indexed so that [0] is the most recent.
	for i, entry := range entries {
		idx := len(entries) - 1 - i
		fmt.Printf("  [%d] %s | %s\n", idx, entry.Timestamp.Format("2006-01-02 15:04:05"), strings.Join(entry.Argv, " "))
	}

	return nil
}
