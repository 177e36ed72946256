package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/ciamctl/cmd/ciamctl/internal/commands"
	"github.com/wolfeidau/ciamctl/internal/config"
	"github.com/wolfeidau/ciamctl/internal/history"
	"github.com/wolfeidau/ciamctl/internal/logger"
)

var version = "dev"

type rootCmd struct {
	Config   commands.ConfigCmd   `cmd:"" help:"Manage region, environment and default store"`
	Tokens   commands.TokensCmd   `cmd:"" help:"Inspect OAuth2 tokens"`
	Users    commands.UsersCmd    `cmd:"" help:"Manage users"`
	Groups   commands.GroupsCmd   `cmd:"" help:"Manage groups"`
	Orgs     commands.OrgsCmd     `cmd:"" help:"Manage organizations"`
	Stores   commands.StoresCmd   `cmd:"" help:"Manage stores"`
	Products commands.ProductsCmd `cmd:"" help:"Manage products"`
	History  commands.HistoryCmd  `cmd:"" help:"List or replay recent commands"`
	Verbose  bool                 `help:"Enable verbose output." short:"v"`
	Version  kong.VersionFlag
}

func run(ctx context.Context, argv []string) error {
	// Replayed invocations parse into their own instance so flag values
	// never leak between runs.
	cli := &rootCmd{}

	parser, err := kong.New(cli,
		kong.Name("ciamctl"),
		kong.Description("CLI client for the CIAM API"),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(argv)
	if err != nil {
		return err
	}

	logger.Setup(cli.Verbose)

	recordHistory(argv, kctx.Command())

	globals := &commands.Globals{
		Verbose: cli.Verbose,
		Version: version,
		Replay:  run,
	}

	return kctx.Run(globals)
}

// recordHistory appends the invocation to the history file. History
// commands themselves are not recorded, otherwise replay indexes would
// shift on every listing.
func recordHistory(argv []string, command string) {
	if len(argv) == 0 || strings.HasPrefix(command, "history") {
		return
	}

	histLog, err := history.NewLog("")
	if err != nil {
		log.Debug().Err(err).Msg("history unavailable")
		return
	}

	entry := history.Entry{Argv: argv}
	if cfgStore, err := config.NewStore(""); err == nil {
		settings := cfgStore.Load()
		entry.Region = settings.Region
		entry.Env = settings.Env
		entry.StoreID = settings.StoreID
	}

	if err := histLog.Append(entry); err != nil {
		log.Debug().Err(err).Msg("failed to record history")
	}
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ciamctl: error: %v\n", err)
		os.Exit(1)
	}
}
