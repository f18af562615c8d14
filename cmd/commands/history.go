package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/memopad/internal/events"
	"github.com/dohr-michael/memopad/internal/storage"
)

var eventColors = map[events.EventType]*color.Color{
	events.EventMemoAdded:    color.New(color.FgGreen),
	events.EventMemoUpdated:  color.New(color.FgYellow),
	events.EventMemoDeleted:  color.New(color.FgRed),
	events.EventMemoCopied:   color.New(color.FgBlue),
	events.EventThemeChanged: color.New(color.FgMagenta),
}

// NewHistoryCommand returns the history subcommand.
func NewHistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent memo changes from the journal",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Number of entries to show (0 for all)",
				Value:   20,
			},
		},
		Action: runHistory,
	}
}

func runHistory(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	entries, err := storage.ReadJournal(cfg.Journal.Path, cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.Root().Writer, "No history yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSOURCE\tEVENT\tDETAIL")
	for _, e := range entries {
		typ := string(e.Type)
		if c, ok := eventColors[e.Type]; ok {
			typ = c.Sprint(typ)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Source, typ, describe(e))
	}
	return w.Flush()
}

// describe summarises an event payload on one line.
func describe(e events.Event) string {
	var parts []string
	if idx, ok := e.Payload["index"].(float64); ok {
		parts = append(parts, fmt.Sprintf("#%d", int(idx)+1))
	}
	if text, ok := e.Payload["text"].(string); ok {
		parts = append(parts, oneLine(text))
	}
	if dark, ok := e.Payload["dark"].(bool); ok {
		parts = append(parts, themeName(dark))
	}
	return strings.Join(parts, " ")
}

func oneLine(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if r := []rune(text); len(r) > 50 {
		return string(r[:50]) + "…"
	}
	return text
}
