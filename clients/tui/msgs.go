package tui

import "time"

// copyResultMsg reports the outcome of an asynchronous clipboard write.
type copyResultMsg struct {
	index int
	rev   uint64
	err   error
}

// copyExpiredMsg ends the "Copied!" marker started with token.
type copyExpiredMsg struct {
	token uint64
}

// statusExpiredMsg clears the status line if it still shows message seq.
type statusExpiredMsg struct {
	seq int
}

const (
	statusDuration = 3 * time.Second
	copyTimeout    = 5 * time.Second
)
