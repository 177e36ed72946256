// Package commands implements the ciamctl command tree.
package commands

import "context"

// Globals carries flags and services shared by every command.
type Globals struct {
	Verbose bool
	Version string

	// Replay re-invokes the CLI with a recorded argv. Wired by main to
	// avoid an import cycle between commands and the entrypoint.
	Replay func(ctx context.Context, argv []string) error
}
