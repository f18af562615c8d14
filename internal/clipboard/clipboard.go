// Package clipboard sends memo text to the user's clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	sysclip "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/dohr-michael/memopad/internal/config"
)

var ErrUnsupported = errors.New("system clipboard unavailable")

// Writer puts text on a clipboard.
type Writer interface {
	Write(ctx context.Context, text string) error
}

// New returns the Writer for backend. out receives OSC 52 sequences.
func New(backend string, out io.Writer) (Writer, error) {
	switch backend {
	case config.ClipboardSystem:
		return System{}, nil
	case config.ClipboardOSC52:
		return &OSC52{Out: out}, nil
	case config.ClipboardAuto, "":
		return Fallback{Primary: System{}, Secondary: &OSC52{Out: out}}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q", backend)
	}
}

// System writes through the OS clipboard (pbcopy, xclip, wl-copy, ...).
type System struct{}

func (System) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sysclip.Unsupported {
		return ErrUnsupported
	}
	if err := sysclip.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}

// OSC52 asks the terminal emulator to set the clipboard with an OSC 52
// escape sequence. It works over SSH but cannot confirm delivery.
type OSC52 struct {
	Out io.Writer

	mu sync.Mutex
}

func (o *OSC52) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out := o.Out
	if out == nil {
		out = os.Stderr
	}

	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(os.Getenv("TERM"), "screen"):
		seq = seq.Screen()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if _, err := seq.WriteTo(out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

// Fallback tries Primary and uses Secondary when Primary fails.
type Fallback struct {
	Primary   Writer
	Secondary Writer
}

func (f Fallback) Write(ctx context.Context, text string) error {
	err := f.Primary.Write(ctx, text)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return err
	}
	if err2 := f.Secondary.Write(ctx, text); err2 != nil {
		return errors.Join(err, err2)
	}
	return nil
}

// Memory records writes in memory. Set Err to simulate a failing clipboard.
type Memory struct {
	mu     sync.Mutex
	Err    error
	writes []string
}

func (m *Memory) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.writes = append(m.writes, text)
	return nil
}

// Last returns the most recent successful write.
func (m *Memory) Last() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return "", false
	}
	return m.writes[len(m.writes)-1], true
}
