package handlers

import (
	"context"

	"campustalk/server/internal/presence"
	ws "campustalk/server/internal/websocket"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WSHandler owns the change-feed endpoint: one subscription per
// connected user, released when the connection drops.
type WSHandler struct {
	hub    *ws.Hub
	typing *presence.Typing
	log    *zap.Logger
}

// NewWSHandler wires the websocket handler.
func NewWSHandler(hub *ws.Hub, typing *presence.Typing, log *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, typing: typing, log: log}
}

// Upgrade checks if the request should be upgraded to WebSocket
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fail(c, fiber.StatusUpgradeRequired, "WebSocket upgrade required")
}

// Serve handles one websocket connection; blocks until it closes.
func (h *WSHandler) Serve(c *websocket.Conn) {
	userID := c.Locals("userID").(string)

	client := ws.NewClient(userID, c, func(peerID string, isTyping bool) {
		if err := h.typing.Signal(context.Background(), userID, peerID, isTyping); err != nil {
			h.log.Warn("typing publish failed", zap.String("user_id", userID), zap.Error(err))
		}
	}, h.log)

	sub := h.hub.Subscribe(client)
	defer sub.Close()

	go client.WritePump()
	client.ReadPump()
}

// Stats returns feed connection statistics
func (h *WSHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"onlineUsers": h.hub.OnlineCount(),
		},
	})
}
