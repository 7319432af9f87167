package websocket

import (
	"encoding/json"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
	sendBuffer = 256
)

// TypingFunc handles a typing signal read off the wire.
type TypingFunc func(peerID string, isTyping bool)

// Client is one user's websocket connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	onTyping TypingFunc
	log      *zap.Logger
}

// NewClient wraps a connection for a user. onTyping is invoked for
// every typing event the client sends.
func NewClient(userID string, conn *websocket.Conn, onTyping TypingFunc, log *zap.Logger) *Client {
	return &Client{
		UserID:   userID,
		Conn:     conn,
		Send:     make(chan []byte, sendBuffer),
		onTyping: onTyping,
		log:      log,
	}
}

// ReadPump consumes incoming frames until the connection closes. Runs
// on the connection's goroutine and blocks.
func (c *Client) ReadPump() {
	defer c.Conn.Close()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket read error", zap.String("user_id", c.UserID), zap.Error(err))
			}
			return
		}

		var incoming Incoming
		if err := json.Unmarshal(data, &incoming); err != nil {
			c.log.Warn("unparseable client frame", zap.String("user_id", c.UserID), zap.Error(err))
			continue
		}
		c.handleIncoming(incoming)
	}
}

func (c *Client) handleIncoming(incoming Incoming) {
	switch incoming.Type {
	case IncomingTyping:
		var req TypingRequest
		if err := json.Unmarshal(incoming.Payload, &req); err != nil || req.PeerID == "" {
			c.log.Warn("bad typing request", zap.String("user_id", c.UserID))
			return
		}
		c.onTyping(req.PeerID, req.IsTyping)
	default:
		c.log.Warn("unknown client event", zap.String("type", incoming.Type))
	}
}

// WritePump drains the send queue onto the wire and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Warn("websocket write error", zap.String("user_id", c.UserID), zap.Error(err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
