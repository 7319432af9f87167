package presence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EventTyping is the change-feed event name typing signals are relayed
// under.
const EventTyping = "typing"

// Broker publishes and relays typing signals over Redis pub/sub. The
// channel is fire-and-forget: no ack, no retry, no replay.
type Broker struct {
	rdb *redis.Client
	log *zap.Logger
}

// NewBroker creates a typing broker on top of a Redis client.
func NewBroker(rdb *redis.Client, log *zap.Logger) *Broker {
	return &Broker{rdb: rdb, log: log}
}

// Publish broadcasts a typing signal on the pair channel.
func (b *Broker) Publish(ctx context.Context, senderID, peerID string, isTyping bool) error {
	payload, err := json.Marshal(Signal{SenderID: senderID, IsTyping: isTyping})
	if err != nil {
		return fmt.Errorf("marshal typing signal: %w", err)
	}
	if err := b.rdb.Publish(ctx, ChannelName(senderID, peerID), payload).Err(); err != nil {
		return fmt.Errorf("publish typing signal: %w", err)
	}
	return nil
}

// Deliverer routes a relayed signal to a locally connected user.
type Deliverer interface {
	NotifyUser(userID, event string, payload any)
}

// Relay subscribes to every pair channel and forwards each signal to
// the non-sending participant's local connection. Runs until the
// context is cancelled. Signals for users connected elsewhere are
// dropped by the deliverer, which is fine: every instance relays.
func (b *Broker) Relay(ctx context.Context, d Deliverer) error {
	pubsub := b.rdb.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			userA, userB, valid := ParseChannel(m.Channel)
			if !valid {
				continue
			}
			var sig Signal
			if err := json.Unmarshal([]byte(m.Payload), &sig); err != nil {
				b.log.Warn("bad typing payload", zap.String("channel", m.Channel), zap.Error(err))
				continue
			}
			peer := userA
			if sig.SenderID == userA {
				peer = userB
			}
			d.NotifyUser(peer, EventTyping, sig)
		}
	}
}
