// Package notify holds the transient success message shown after an
// operation completes.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 2 * time.Second

// Notifier keeps at most one message. Each Show schedules its own dismissal;
// a dismissal only clears the message it was scheduled for.
type Notifier struct {
	ttl       time.Duration
	afterFunc func(d time.Duration, f func())

	mu  sync.Mutex
	msg string
	seq uint64
}

func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{
		ttl: ttl,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

func (n *Notifier) Show(msg string) {
	n.mu.Lock()
	n.seq++
	seq := n.seq
	n.msg = msg
	n.mu.Unlock()

	n.afterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.seq == seq {
			n.msg = ""
		}
	})
}

// Current returns the visible message, or "" when there is none.
func (n *Notifier) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg
}

// Dismiss clears the message right away.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	n.msg = ""
}
