package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/memopad/clients/tui"
	"github.com/dohr-michael/memopad/internal/clipboard"
	"github.com/dohr-michael/memopad/internal/config"
)

// NewTUICommand returns the tui subcommand.
func NewTUICommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive TUI",
		Action: runTUI,
	}
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	clip, err := clipboard.New(s.cfg.Clipboard.Backend, os.Stderr)
	if err != nil {
		return err
	}

	// The TUI owns the terminal; send logs to a file until it exits.
	restore, err := redirectLog(config.LogPath(), cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer restore()

	return tui.Run(ctx, tui.Options{
		Store:     s.store,
		Prefs:     s.kv,
		Clipboard: clip,
		Events:    s.bus,
		Collapse:  s.collapse(),
		CopiedFor: s.cfg.Clipboard.CopiedFor.Duration(),
	})
}

// redirectLog points the default logger at the file at path. restore puts
// the previous logger back and closes the file.
func redirectLog(path string, debug bool) (restore func(), err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))

	return func() {
		slog.SetDefault(prev)
		f.Close()
	}, nil
}
