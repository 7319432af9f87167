package handlers

import (
	"campustalk/server/internal/chat"
	"campustalk/server/internal/middleware"
	"campustalk/server/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SendRequestBody represents friend request body
type SendRequestBody struct {
	Name string `json:"name"`
}

// FriendHandler serves the roster: friends, unread counts and pending
// requests.
type FriendHandler struct {
	svc *chat.FriendService
	log *zap.Logger
}

// NewFriendHandler wires a friend handler.
func NewFriendHandler(svc *chat.FriendService, log *zap.Logger) *FriendHandler {
	return &FriendHandler{svc: svc, log: log}
}

// List returns accepted friends with per-friend unread counts
func (h *FriendHandler) List(c *fiber.Ctx) error {
	friends, err := h.svc.Friends(c.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("friends list failed", zap.Error(err))
		return failDomain(c, err)
	}
	if friends == nil {
		friends = []models.FriendEntry{}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    friends,
	})
}

// Requests returns pending incoming friend requests
func (h *FriendHandler) Requests(c *fiber.Ctx) error {
	pending, err := h.svc.PendingRequests(c.Context(), middleware.UserID(c))
	if err != nil {
		h.log.Error("pending requests failed", zap.Error(err))
		return failDomain(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    pending,
	})
}

// SendRequest creates a friend request addressed by display name
func (h *FriendHandler) SendRequest(c *fiber.Ctx) error {
	var body SendRequestBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	req, err := h.svc.SendRequest(c.Context(), middleware.UserID(c), body.Name)
	if err != nil {
		return failDomain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    req,
	})
}

// Accept accepts a pending request and creates the friendship
func (h *FriendHandler) Accept(c *fiber.Ctx) error {
	req, err := h.svc.Accept(c.Context(), middleware.UserID(c), c.Params("requestId"))
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    req,
	})
}

// Reject rejects a pending request
func (h *FriendHandler) Reject(c *fiber.Ctx) error {
	if err := h.svc.Reject(c.Context(), middleware.UserID(c), c.Params("requestId")); err != nil {
		return failDomain(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Friend request rejected",
	})
}
