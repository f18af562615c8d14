package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/dohr-michael/memopad/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "memopad",
		Usage: "A small pad of persistent memos",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Storage backend override (file, sqlite, memory)",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "Keep memos in memory only; nothing is written to disk",
			},
		},
		Before: setupLogging,
		Action: runDefault,
		Commands: []*cli.Command{
			NewTUICommand(),
			NewAddCommand(),
			NewListCommand(),
			NewEditCommand(),
			NewRemoveCommand(),
			NewCopyCommand(),
			NewThemeCommand(),
			NewExportCommand(),
			NewImportCommand(),
			NewHistoryCommand(),
		},
	}
}

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := slog.LevelWarn
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return ctx, nil
}

// runDefault opens the TUI on an interactive terminal and prints the list
// otherwise, so `memopad | grep` does what one expects.
func runDefault(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		return fmt.Errorf("unknown command %q", cmd.Args().First())
	}
	if term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd())) {
		return runTUI(ctx, cmd)
	}
	return runList(ctx, cmd)
}
