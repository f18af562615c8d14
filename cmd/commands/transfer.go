package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// NewExportCommand returns the export subcommand.
func NewExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write all memos to stdout",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: json or yaml",
				Value: "json",
			},
		},
		Action: runExport,
	}
}

// NewImportCommand returns the import subcommand.
func NewImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Append memos from a JSON or YAML list (- for stdin)",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Input format: json or yaml (default: from the file extension)",
			},
		},
		Action: runImport,
	}
}

func runExport(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := encodeMemos(s.store.List(), cmd.String("format"))
	if err != nil {
		return err
	}
	_, err = cmd.Root().Writer.Write(data)
	return err
}

func runImport(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: memopad import <file>")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.Root().Reader)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	format := cmd.String("format")
	if format == "" {
		format = formatFromPath(path)
	}
	memos, err := decodeMemos(data, format)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	added := 0
	for _, text := range memos {
		if s.store.Add(text) {
			added++
		}
	}
	fmt.Fprintf(cmd.Root().Writer, "Imported %d of %d memos.\n", added, len(memos))
	return nil
}

func encodeMemos(memos []string, format string) ([]byte, error) {
	if memos == nil {
		memos = []string{}
	}
	switch format {
	case "json":
		data, err := json.MarshalIndent(memos, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(memos)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func decodeMemos(data []byte, format string) ([]string, error) {
	var memos []string
	switch format {
	case "json":
		if err := json.Unmarshal(data, &memos); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &memos); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	return memos, nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
