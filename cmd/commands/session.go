package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/memopad/internal/config"
	"github.com/dohr-michael/memopad/internal/events"
	"github.com/dohr-michael/memopad/internal/kv"
	"github.com/dohr-michael/memopad/internal/memo"
	"github.com/dohr-michael/memopad/internal/storage"
)

// session is everything a command needs to work on the memo list.
type session struct {
	cfg     *config.Config
	kv      kv.Store
	store   *memo.Store
	bus     *events.Bus
	journal *storage.Journal
	closer  io.Closer
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	configPath := cmd.String("config")
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	// CLI flags override config
	if cmd.Bool("ephemeral") {
		cfg.UseBackend(config.BackendMemory)
		cfg.Journal.Disabled = true
	} else if cmd.IsSet("backend") {
		cfg.UseBackend(cmd.String("backend"))
	}
	return cfg, nil
}

func openSession(cmd *cli.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	backend, closer, err := kv.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	s := &session{cfg: cfg, kv: backend, closer: closer, bus: events.NewBus(64)}
	if !cfg.Journal.Disabled {
		s.journal = storage.NewJournal(cfg.Journal.Path, s.bus,
			events.EventMemoAdded,
			events.EventMemoUpdated,
			events.EventMemoDeleted,
			events.EventMemoCopied,
			events.EventThemeChanged,
		)
	}
	s.store = memo.NewStore(backend, memo.WithPublisher(s.bus))
	return s, nil
}

// Close flushes pending events to the journal, then releases storage.
func (s *session) Close() {
	s.bus.Close()
	if s.journal != nil {
		s.journal.Close()
	}
	if err := s.closer.Close(); err != nil {
		slog.Warn("close storage", "error", err)
	}
}

func (s *session) collapse() memo.Collapse {
	return memo.Collapse{
		Chars: s.cfg.Display.CollapseChars,
		Lines: s.cfg.Display.CollapseLines,
		Clamp: s.cfg.Display.ClampLines,
	}
}

func (s *session) publish(typ events.EventType, payload map[string]any) {
	if err := s.bus.PublishAsync(context.Background(), events.NewEvent(typ, events.SourceCLI, payload)); err != nil {
		slog.Warn("event not published", "type", typ, "error", err)
	}
}

// parseIndex turns a 1-based CLI index into a list index.
func parseIndex(arg string, n int) (int, error) {
	if arg == "" {
		return 0, fmt.Errorf("missing memo index")
	}
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("invalid memo index %s", arg)
	}
	return i - 1, nil
}

// textArgs joins the remaining arguments, or reads the text from stdin when
// there are none so multi-line memos can be piped in.
func textArgs(cmd *cli.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.Root().Reader)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
