package presence

import (
	"context"
	"time"
)

// Typing ties the broker and the expiry tracker together: every signal
// goes out on the pair channel, and every isTyping=true arms the
// server-side stop.
type Typing struct {
	broker  *Broker
	tracker *Tracker
}

// NewTyping creates the typing front door used by the websocket layer
// and the message send path.
func NewTyping(broker *Broker, timeout time.Duration) *Typing {
	t := &Typing{broker: broker}
	t.tracker = NewTracker(timeout, func(senderID, peerID string) {
		// Expiry happens outside any request; best effort.
		_ = broker.Publish(context.Background(), senderID, peerID, false)
	})
	return t
}

// Signal publishes a typing signal and updates the expiry tracker.
func (t *Typing) Signal(ctx context.Context, senderID, peerID string, isTyping bool) error {
	t.tracker.Touch(senderID, peerID, isTyping)
	return t.broker.Publish(ctx, senderID, peerID, isTyping)
}

// Stop force-publishes a typing stop, e.g. when a message is sent.
func (t *Typing) Stop(ctx context.Context, senderID, peerID string) error {
	return t.Signal(ctx, senderID, peerID, false)
}

// Close stops the expiry tracker.
func (t *Typing) Close() {
	t.tracker.Close()
}
