package handlers

import (
	"campustalk/server/internal/chat"
	"campustalk/server/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SendMessageRequest represents send message request body
type SendMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

// MessageHandler serves conversation history, sending and read marks.
type MessageHandler struct {
	svc *chat.MessageService
	log *zap.Logger
}

// NewMessageHandler wires a message handler.
func NewMessageHandler(svc *chat.MessageService, log *zap.Logger) *MessageHandler {
	return &MessageHandler{svc: svc, log: log}
}

// History returns the full conversation with a friend, oldest first
func (h *MessageHandler) History(c *fiber.Ctx) error {
	messages, err := h.svc.History(c.Context(), middleware.UserID(c), c.Params("friendId"))
	if err != nil {
		h.log.Error("history load failed", zap.Error(err))
		return failDomain(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    messages,
	})
}

// Send sends a direct message
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.ReceiverID == "" {
		return fail(c, fiber.StatusBadRequest, "Receiver ID is required")
	}

	msg, err := h.svc.Send(c.Context(), middleware.UserID(c), req.ReceiverID, req.Content)
	if err != nil {
		return failDomain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    msg,
	})
}

// MarkRead marks every unread message from a friend as read
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	n, err := h.svc.MarkRead(c.Context(), middleware.UserID(c), c.Params("friendId"))
	if err != nil {
		h.log.Error("mark read failed", zap.Error(err))
		return failDomain(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"updatedCount": n,
		},
	})
}
