package websocket

import (
	"encoding/json"
	"time"
)

// Message is the envelope for every event pushed down the feed.
type Message struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Incoming represents messages received from clients.
type Incoming struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// IncomingTyping is the only client-to-server event: a typing signal
// for the conversation with PeerID.
const IncomingTyping = "typing"

// TypingRequest is the payload of an incoming typing event.
type TypingRequest struct {
	PeerID   string `json:"peerId"`
	IsTyping bool   `json:"isTyping"`
}
