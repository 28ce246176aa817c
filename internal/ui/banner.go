package ui

import (
	"log"
	"sync"
	"time"
)

// Banner holds a transient error message that clears itself after a fixed
// delay. A superseding Show does not cancel the earlier timer; the timer
// only clears the message, so the worst case is an early dismissal.
type Banner struct {
	mu           sync.Mutex
	message      string
	dismissAfter time.Duration
}

func NewBanner(dismissAfter time.Duration) *Banner {
	if dismissAfter <= 0 {
		dismissAfter = 5 * time.Second
	}
	return &Banner{dismissAfter: dismissAfter}
}

// Show logs and displays msg, scheduling an unconditional dismissal.
func (b *Banner) Show(msg string) {
	log.Printf("error: %s", msg)

	b.mu.Lock()
	b.message = msg
	b.mu.Unlock()

	time.AfterFunc(b.dismissAfter, func() {
		b.mu.Lock()
		b.message = ""
		b.mu.Unlock()
	})
}

// Message returns the currently displayed error, or "" when dismissed.
func (b *Banner) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message
}
