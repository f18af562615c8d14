// Package events provides an in-memory event bus using Go channels.
package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event represents an event in the system.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Source    EventSource    `json:"source"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// NewEvent creates a new event with the current timestamp.
func NewEvent(eventType EventType, source EventSource, payload map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    source,
		Payload:   payload,
	}
}

// Subscriber is a function that receives events.
type Subscriber func(Event)

type subscription struct {
	eventTypes []EventType
	handler    Subscriber
}

// ErrBusClosed is returned by PublishAsync once the bus is closed.
var ErrBusClosed = errors.New("event bus closed")

// Publisher is the sending side of a Bus.
type Publisher interface {
	Publish(Event)
	PublishAsync(ctx context.Context, event Event) error
}

// Bus is an in-memory event bus. Events are delivered in publish order on a
// single dispatch goroutine, so subscribers must not block for long.
type Bus struct {
	mu          sync.RWMutex // guards subscribers
	subscribers map[int]*subscription
	nextID      int

	sendMu    sync.RWMutex // guards closed; held by senders so Close never races a send
	eventChan chan Event
	closed    bool
	done      chan struct{}
}

// NewBus creates a new event bus.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	b := &Bus{
		subscribers: make(map[int]*subscription),
		eventChan:   make(chan Event, bufferSize),
		done:        make(chan struct{}),
	}
	go b.dispatch()
	return b
}

func (b *Bus) dispatch() {
	defer close(b.done)
	for event := range b.eventChan {
		b.notifySubscribers(event)
	}
}

func (b *Bus) notifySubscribers(event Event) {
	b.mu.RLock()
	subs := make([]*subscription, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		if sub.matches(event) {
			subs = append(subs, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(event)
	}
}

func (s *subscription) matches(event Event) bool {
	if len(s.eventTypes) == 0 {
		return true
	}
	for _, t := range s.eventTypes {
		if t == event.Type {
			return true
		}
	}
	return false
}

// Publish sends an event to the bus. It never blocks: when the buffer is
// full the event is dropped.
func (b *Bus) Publish(event Event) {
	b.sendMu.RLock()
	defer b.sendMu.RUnlock()

	if b.closed {
		return
	}

	select {
	case b.eventChan <- event:
	default:
		slog.Debug("event bus full, dropping event", "type", event.Type)
	}
}

// PublishAsync sends an event, waiting for buffer space until ctx is done.
func (b *Bus) PublishAsync(ctx context.Context, event Event) error {
	b.sendMu.RLock()
	defer b.sendMu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.eventChan <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers a handler for specific event types.
// Returns an unsubscribe function.
func (b *Bus) Subscribe(handler Subscriber, eventTypes ...EventType) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	b.subscribers[id] = &subscription{
		eventTypes: eventTypes,
		handler:    handler,
	}

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers, id)
	}
}

// Close stops accepting events, delivers the ones already queued, and
// returns once dispatch has finished.
func (b *Bus) Close() {
	b.sendMu.Lock()
	if !b.closed {
		b.closed = true
		close(b.eventChan)
	}
	b.sendMu.Unlock()

	<-b.done
}
