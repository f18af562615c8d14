// Package storage persists the memo change history.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dohr-michael/memopad/internal/events"
)

// Journal appends bus events to a JSONL file, one event per line.
type Journal struct {
	path        string
	mu          sync.Mutex
	unsubscribe func()
}

// NewJournal creates a Journal that subscribes to the given event types
// (all when none are given) and appends them to path.
func NewJournal(path string, bus *events.Bus, eventTypes ...events.EventType) *Journal {
	j := &Journal{path: path}
	j.unsubscribe = bus.Subscribe(j.handleEvent, eventTypes...)
	return j
}

// Close unsubscribes the journal from the event bus.
func (j *Journal) Close() {
	if j.unsubscribe != nil {
		j.unsubscribe()
	}
}

func (j *Journal) handleEvent(e events.Event) {
	if err := j.append(e); err != nil {
		slog.Warn("journal write failed", "path", j.path, "error", err)
	}
}

func (j *Journal) append(e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// ReadJournal returns the last limit events recorded at path, oldest first.
// A limit <= 0 returns everything. A missing file yields no events.
func ReadJournal(path string, limit int) ([]events.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var items []events.Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e events.Event
		if err := json.Unmarshal(line, &e); err != nil {
			continue // skip corrupted lines
		}
		items = append(items, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}

	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	return items, nil
}
