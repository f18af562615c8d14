package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/dohr-michael/memopad/internal/events"
	"github.com/dohr-michael/memopad/internal/storage"
)

// setupHome points MEMOPAD_PATH at a fresh directory.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("MEMOPAD_PATH", home)
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm")
	color.NoColor = true
	return home
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.Writer = &out
	cmd.ErrWriter = io.Discard
	cmd.Reader = strings.NewReader(stdin)
	err := cmd.Run(context.Background(), append([]string{"memopad"}, args...))
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("memopad %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestAddListRemove(t *testing.T) {
	setupHome(t)

	mustRun(t, "add", "buy", "milk")
	mustRun(t, "add", "call mom")

	out := mustRun(t, "list")
	if !strings.Contains(out, "1. buy milk") || !strings.Contains(out, "2. call mom") {
		t.Fatalf("list output:\n%s", out)
	}

	mustRun(t, "rm", "1")
	out = mustRun(t, "list")
	if strings.Contains(out, "buy milk") || !strings.Contains(out, "1. call mom") {
		t.Errorf("after rm:\n%s", out)
	}
}

func TestDefaultActionListsWhenNotATerminal(t *testing.T) {
	setupHome(t)

	if out := mustRun(t); !strings.Contains(out, "No memos yet.") {
		t.Errorf("empty output = %q", out)
	}
	mustRun(t, "add", "hello")
	if out := mustRun(t); !strings.Contains(out, "hello") {
		t.Errorf("output = %q", out)
	}
}

func TestAddFromStdin(t *testing.T) {
	setupHome(t)

	if _, err := run(t, "line one\nline two\n", "add"); err != nil {
		t.Fatal(err)
	}
	out := mustRun(t, "export")
	if !strings.Contains(out, `"line one\nline two"`) {
		t.Errorf("export = %s", out)
	}
}

func TestAddBlankFails(t *testing.T) {
	setupHome(t)

	if _, err := run(t, "", "add", "   "); err == nil {
		t.Error("expected error for blank memo")
	}
	if out := mustRun(t, "list"); !strings.Contains(out, "No memos yet.") {
		t.Errorf("blank memo stored:\n%s", out)
	}
}

func TestListCollapsesLongMemos(t *testing.T) {
	setupHome(t)
	long := strings.Repeat("abcde ", 10)
	mustRun(t, "add", long)

	out := mustRun(t, "list")
	if strings.Contains(out, long) || !strings.Contains(out, "(more)") {
		t.Errorf("collapsed list:\n%s", out)
	}

	out = mustRun(t, "list", "--full")
	if !strings.Contains(out, strings.TrimSpace(long)) || strings.Contains(out, "(more)") {
		t.Errorf("full list:\n%s", out)
	}
}

func TestEdit(t *testing.T) {
	setupHome(t)
	mustRun(t, "add", "call mom")

	mustRun(t, "edit", "1", "call mom tonight")
	if out := mustRun(t, "list"); !strings.Contains(out, "call mom tonight") {
		t.Errorf("list:\n%s", out)
	}

	if _, err := run(t, "", "edit", "1", " "); err == nil {
		t.Error("blank edit should fail")
	}
	if out := mustRun(t, "list"); !strings.Contains(out, "call mom tonight") {
		t.Errorf("blank edit changed memo:\n%s", out)
	}
}

func TestInvalidIndex(t *testing.T) {
	setupHome(t)
	mustRun(t, "add", "only")

	tests := [][]string{
		{"rm", "0"},
		{"rm", "2"},
		{"rm", "x"},
		{"rm"},
		{"edit", "5", "text"},
		{"copy", "3"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			if _, err := run(t, "", args...); err == nil {
				t.Errorf("memopad %v: expected error", args)
			}
		})
	}
	if out := mustRun(t, "list"); !strings.Contains(out, "only") {
		t.Error("invalid commands changed the list")
	}
}

func TestCopyOSC52(t *testing.T) {
	home := setupHome(t)
	writeConfig(t, home, `{ "clipboard": { "backend": "osc52" } }`)
	mustRun(t, "add", "copy me")

	out := mustRun(t, "copy", "1")
	want := base64.StdEncoding.EncodeToString([]byte("copy me"))
	if !strings.Contains(out, "\x1b]52;c;"+want) {
		t.Errorf("output = %q, want OSC 52 sequence for %q", out, want)
	}
}

func TestTheme(t *testing.T) {
	setupHome(t)

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"theme"}, "light"},
		{[]string{"theme", "dark"}, "dark"},
		{[]string{"theme"}, "dark"},
		{[]string{"theme", "toggle"}, "light"},
		{[]string{"theme", "toggle"}, "dark"},
		{[]string{"theme", "light"}, "light"},
	}
	for _, s := range steps {
		if out := strings.TrimSpace(mustRun(t, s.args...)); out != s.want {
			t.Errorf("memopad %v = %q, want %q", s.args, out, s.want)
		}
	}

	if _, err := run(t, "", "theme", "purple"); err == nil {
		t.Error("unknown theme should fail")
	}
}

func TestExportImport(t *testing.T) {
	home := setupHome(t)
	mustRun(t, "add", "one")
	mustRun(t, "add", "two")

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			data := mustRun(t, "export", "--format", format)
			path := filepath.Join(home, "memos."+format)
			if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
				t.Fatal(err)
			}

			out, err := run(t, "", "--ephemeral", "import", path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, "Imported 2 of 2") {
				t.Errorf("import output = %q", out)
			}
		})
	}

	if _, err := run(t, "", "export", "--format", "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestImportSkipsBlank(t *testing.T) {
	setupHome(t)

	out, err := run(t, `["a", "  ", "b"]`, "import", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Imported 2 of 3") {
		t.Errorf("output = %q", out)
	}
}

func TestEphemeralWritesNothing(t *testing.T) {
	home := setupHome(t)

	mustRun(t, "--ephemeral", "add", "gone")

	if out := mustRun(t, "list"); !strings.Contains(out, "No memos yet.") {
		t.Errorf("ephemeral memo persisted:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(home, "journal.jsonl")); !os.IsNotExist(err) {
		t.Error("ephemeral run wrote a journal")
	}
}

func TestSQLiteBackend(t *testing.T) {
	home := setupHome(t)

	mustRun(t, "--backend", "sqlite", "add", "in sqlite")

	if _, err := os.Stat(filepath.Join(home, "memopad.db")); err != nil {
		t.Fatalf("database not created: %v", err)
	}
	if out := mustRun(t, "--backend", "sqlite", "list"); !strings.Contains(out, "in sqlite") {
		t.Errorf("sqlite list:\n%s", out)
	}
	if out := mustRun(t, "list"); strings.Contains(out, "in sqlite") {
		t.Error("file backend should not see sqlite memos")
	}
}

func TestEncryptedStorage(t *testing.T) {
	home := setupHome(t)
	writeConfig(t, home, `{ "storage": { "encrypt": true } }`)

	mustRun(t, "add", "secret plan")

	raw, err := os.ReadFile(filepath.Join(home, "store", "memos"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "secret plan") {
		t.Error("memo stored in clear text")
	}
	if out := mustRun(t, "list"); !strings.Contains(out, "secret plan") {
		t.Errorf("list:\n%s", out)
	}
}

func TestHistory(t *testing.T) {
	setupHome(t)

	if out := mustRun(t, "history"); !strings.Contains(out, "No history yet.") {
		t.Errorf("empty history = %q", out)
	}

	mustRun(t, "add", "first")
	mustRun(t, "add", "second")
	mustRun(t, "rm", "1")
	mustRun(t, "theme", "dark")

	out := mustRun(t, "history")
	for _, want := range []string{"memo.added", "memo.deleted", "#1 first", "theme.changed", "dark"} {
		if !strings.Contains(out, want) {
			t.Errorf("history missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, "history", "--limit", "1")
	if strings.Contains(out, "memo.added") || !strings.Contains(out, "theme.changed") {
		t.Errorf("limited history:\n%s", out)
	}
}

func TestImportJournalsEveryMemo(t *testing.T) {
	home := setupHome(t)

	const n = 500
	memos := make([]string, n)
	for i := range memos {
		memos[i] = fmt.Sprintf("memo %d", i)
	}
	data, err := json.Marshal(memos)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(home, "bulk.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	mustRun(t, "import", path)

	entries, err := storage.ReadJournal(filepath.Join(home, "journal.jsonl"), 0)
	if err != nil {
		t.Fatal(err)
	}
	added := 0
	for _, e := range entries {
		if e.Type == events.EventMemoAdded {
			if want := fmt.Sprintf("memo %d", added); e.Payload["text"] != want {
				t.Fatalf("entry %d text = %v, want %q", added, e.Payload["text"], want)
			}
			added++
		}
	}
	if added != n {
		t.Errorf("journal holds %d added events, want %d", added, n)
	}
}

func TestTUIStartupErrors(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		want   string
	}{
		{"unknown backend", "", []string{"--backend", "redis", "tui"}, `unknown storage backend "redis"`},
		{"unknown clipboard", `{ "clipboard": { "backend": "carrier-pigeon" } }`, []string{"tui"}, `unknown clipboard backend "carrier-pigeon"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := setupHome(t)
			if tt.config != "" {
				writeConfig(t, home, tt.config)
			}

			_, err := run(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
			// Startup failed before the terminal was taken over, so logs
			// still go to stderr and no log file is opened.
			if _, err := os.Stat(filepath.Join(home, "memopad.log")); !os.IsNotExist(err) {
				t.Errorf("log file created on failed startup: %v", err)
			}
		})
	}
}

func TestRedirectLogRestores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "memopad.log")
	prev := slog.Default()

	restore, err := redirectLog(path, false)
	if err != nil {
		t.Fatal(err)
	}
	slog.Info("inside tui")
	restore()
	slog.Info("after tui")

	if slog.Default() != prev {
		t.Error("default logger not restored")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "inside tui") {
		t.Errorf("log file = %q", data)
	}
	if strings.Contains(string(data), "after tui") {
		t.Error("logging after restore still went to the file")
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		arg     string
		n       int
		want    int
		wantErr bool
	}{
		{"1", 3, 0, false},
		{"3", 3, 2, false},
		{"0", 3, 0, true},
		{"4", 3, 0, true},
		{"-1", 3, 0, true},
		{"abc", 3, 0, true},
		{"", 3, 0, true},
		{"1", 0, 0, true},
	}
	for _, tt := range tests {
		got, err := parseIndex(tt.arg, tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIndex(%q, %d) err = %v, wantErr %v", tt.arg, tt.n, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseIndex(%q, %d) = %d, want %d", tt.arg, tt.n, got, tt.want)
		}
	}
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(home, "config.jsonc"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
