package middleware

import (
	"strings"

	"campustalk/server/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Auth validates the JWT from the cookie or the Authorization header
// and stores the authenticated identity in the request context.
func Auth(tokens *utils.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies("token")
		if tokenString == "" {
			if h := c.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenString = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Unauthorized - No token provided",
			})
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Unauthorized - Invalid token",
			})
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("tag", claims.Tag)

		return c.Next()
	}
}

// UserID gets the authenticated user id from the request context.
func UserID(c *fiber.Ctx) string {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return ""
	}
	return userID
}
