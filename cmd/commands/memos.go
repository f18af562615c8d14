package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/memopad/internal/clipboard"
	"github.com/dohr-michael/memopad/internal/events"
	"github.com/dohr-michael/memopad/internal/memo"
)

var (
	ordinalColor = color.New(color.FgCyan, color.Bold)
	mutedColor   = color.New(color.Faint)
)

// NewAddCommand returns the add subcommand.
func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a memo (reads stdin when no text is given)",
		ArgsUsage: "[text...]",
		Action:    runAdd,
	}
}

// NewListCommand returns the list subcommand.
func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List memos",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "full",
				Aliases: []string{"f"},
				Usage:   "Print long memos in full instead of collapsed",
			},
		},
		Action: runList,
	}
}

// NewEditCommand returns the edit subcommand.
func NewEditCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Replace the text of a memo",
		ArgsUsage: "<index> [text...]",
		Action:    runEdit,
	}
}

// NewRemoveCommand returns the rm subcommand.
func NewRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Aliases:   []string{"delete"},
		Usage:     "Delete a memo",
		ArgsUsage: "<index>",
		Action:    runRemove,
	}
}

// NewCopyCommand returns the copy subcommand.
func NewCopyCommand() *cli.Command {
	return &cli.Command{
		Name:      "copy",
		Aliases:   []string{"cp"},
		Usage:     "Copy a memo to the clipboard",
		ArgsUsage: "<index>",
		Action:    runCopy,
	}
}

func runAdd(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	text, err := textArgs(cmd, cmd.Args().Slice())
	if err != nil {
		return err
	}
	if !s.store.Add(text) {
		return fmt.Errorf("memo is blank or not valid UTF-8")
	}

	fmt.Fprintf(cmd.Root().Writer, "Added memo #%d.\n", s.store.Len())
	return nil
}

func runList(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	w := cmd.Root().Writer
	memos := s.store.List()
	if len(memos) == 0 {
		fmt.Fprintln(w, "No memos yet.")
		return nil
	}

	printMemos(w, memos, s.collapse(), cmd.Bool("full"))
	return nil
}

func printMemos(w io.Writer, memos []string, c memo.Collapse, full bool) {
	for i, text := range memos {
		body := text
		collapsed := !full && c.Collapsible(text)
		if collapsed {
			body = c.Preview(text)
		}

		ordinal := fmt.Sprintf("%3d.", i+1)
		pad := strings.Repeat(" ", len(ordinal)+1)
		fmt.Fprintf(w, "%s %s", ordinalColor.Sprint(ordinal), strings.ReplaceAll(body, "\n", "\n"+pad))
		if collapsed {
			fmt.Fprint(w, " ", mutedColor.Sprint("(more)"))
		}
		fmt.Fprintln(w)
	}
}

func runEdit(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("usage: memopad edit <index> [text...]")
	}
	index, err := parseIndex(args[0], s.store.Len())
	if err != nil {
		return err
	}
	text, err := textArgs(cmd, args[1:])
	if err != nil {
		return err
	}

	edit := memo.NewEditSession(s.store)
	edit.Begin(index)
	edit.SetDraft(text)
	committed, err := edit.Save()
	if err != nil {
		return err
	}
	if !committed {
		return fmt.Errorf("memo is blank or not valid UTF-8; use rm to delete it")
	}

	fmt.Fprintf(cmd.Root().Writer, "Updated memo #%d.\n", index+1)
	return nil
}

func runRemove(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	index, err := parseIndex(cmd.Args().First(), s.store.Len())
	if err != nil {
		return err
	}
	s.store.Delete(index)

	fmt.Fprintf(cmd.Root().Writer, "Deleted memo #%d.\n", index+1)
	return nil
}

func runCopy(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	index, err := parseIndex(cmd.Args().First(), s.store.Len())
	if err != nil {
		return err
	}
	text, _ := s.store.Get(index)

	clip, err := clipboard.New(s.cfg.Clipboard.Backend, cmd.Root().Writer)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := clip.Write(ctx, text); err != nil {
		return fmt.Errorf("copy memo #%d: %w", index+1, err)
	}
	s.publish(events.EventMemoCopied, map[string]any{"index": index})

	fmt.Fprintf(cmd.Root().ErrWriter, "Copied memo #%d.\n", index+1)
	return nil
}
