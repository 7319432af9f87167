package routes

import (
	"campustalk/server/internal/handlers"
	"campustalk/server/internal/middleware"
	"campustalk/server/internal/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Friends  *handlers.FriendHandler
	Messages *handlers.MessageHandler
	WS       *handlers.WSHandler
	Tokens   *utils.TokenManager
}

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	// Health check (public)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "CampusTalk API is running",
		})
	})

	auth := api.Group("/auth")
	auth.Post("/register", middleware.StrictRateLimiter(), h.Auth.Register)
	auth.Post("/login", middleware.StrictRateLimiter(), h.Auth.Login)
	auth.Post("/logout", middleware.Auth(h.Tokens), h.Auth.Logout)
	auth.Get("/me", middleware.Auth(h.Tokens), h.Auth.Me)

	friends := api.Group("/friends", middleware.Auth(h.Tokens))
	friends.Get("/", h.Friends.List)
	friends.Get("/requests", h.Friends.Requests)
	friends.Post("/requests", middleware.ModerateRateLimiter(), h.Friends.SendRequest)
	friends.Post("/requests/:requestId/accept", h.Friends.Accept)
	friends.Post("/requests/:requestId/reject", h.Friends.Reject)

	messages := api.Group("/messages", middleware.Auth(h.Tokens))
	messages.Post("/", h.Messages.Send)
	messages.Get("/:friendId", h.Messages.History)
	messages.Put("/:friendId/read", h.Messages.MarkRead)

	// Change feed (protected)
	api.Get("/ws", middleware.Auth(h.Tokens), h.WS.Upgrade, websocket.New(h.WS.Serve))
	api.Get("/ws/stats", middleware.Auth(h.Tokens), h.WS.Stats)
}
