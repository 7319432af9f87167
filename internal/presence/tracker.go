package presence

import (
	"sync"
	"time"
)

// DefaultTimeout is how long a typing signal stays live without a
// refreshing keystroke before a stop is emitted on the sender's behalf.
const DefaultTimeout = 2 * time.Second

// Tracker enforces typing-signal expiry server-side: if a sender goes
// quiet without ever sending isTyping=false, the peer still observes a
// stop once the timeout elapses.
type Tracker struct {
	timeout time.Duration
	expire  func(senderID, peerID string)

	mu     sync.Mutex
	timers map[timerKey]*time.Timer
	closed bool
}

type timerKey struct {
	senderID string
	peerID   string
}

// NewTracker creates a tracker that calls expire for every typing
// signal that times out.
func NewTracker(timeout time.Duration, expire func(senderID, peerID string)) *Tracker {
	return &Tracker{
		timeout: timeout,
		expire:  expire,
		timers:  make(map[timerKey]*time.Timer),
	}
}

// Touch records a typing signal. isTyping=true (re)arms the expiry
// timer for the (sender, peer) edge; isTyping=false cancels it.
func (t *Tracker) Touch(senderID, peerID string, isTyping bool) {
	key := timerKey{senderID: senderID, peerID: peerID}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	if timer, ok := t.timers[key]; ok {
		timer.Stop()
		delete(t.timers, key)
	}
	if !isTyping {
		return
	}

	t.timers[key] = time.AfterFunc(t.timeout, func() {
		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			return
		}
		delete(t.timers, key)
		t.mu.Unlock()
		t.expire(senderID, peerID)
	})
}

// Close stops all pending timers. No expiries fire after Close.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for key, timer := range t.timers {
		timer.Stop()
		delete(t.timers, key)
	}
}
