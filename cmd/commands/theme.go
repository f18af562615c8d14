package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/memopad/internal/events"
	"github.com/dohr-michael/memopad/internal/memo"
)

// NewThemeCommand returns the theme subcommand.
func NewThemeCommand() *cli.Command {
	return &cli.Command{
		Name:      "theme",
		Usage:     "Show or change the TUI colour theme",
		ArgsUsage: "[light|dark|toggle]",
		Action:    runTheme,
	}
}

func runTheme(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	dark := memo.LoadDarkMode(s.kv)
	switch arg := cmd.Args().First(); arg {
	case "":
		fmt.Fprintln(cmd.Root().Writer, themeName(dark))
		return nil
	case "light":
		dark = false
	case "dark":
		dark = true
	case "toggle":
		dark = !dark
	default:
		return fmt.Errorf("unknown theme %q (want light, dark or toggle)", arg)
	}

	if err := memo.SaveDarkMode(s.kv, dark); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	s.publish(events.EventThemeChanged, map[string]any{"dark": dark})

	fmt.Fprintln(cmd.Root().Writer, themeName(dark))
	return nil
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
