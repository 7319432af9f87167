package handlers

import (
	"errors"
	"time"

	"campustalk/server/internal/middleware"
	"campustalk/server/internal/models"
	"campustalk/server/internal/store"
	"campustalk/server/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler serves registration, login and identity lookup.
type AuthHandler struct {
	users  store.UserStore
	tokens *utils.TokenManager
	ttl    time.Duration
	log    *zap.Logger
}

// NewAuthHandler wires an auth handler.
func NewAuthHandler(users store.UserStore, tokens *utils.TokenManager, ttl time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, ttl: ttl, log: log}
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fail(c, fiber.StatusBadRequest, "Email, password, and name are required")
	}

	exists, err := h.users.EmailExists(c.Context(), req.Email)
	if err != nil {
		h.log.Error("email lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Database error")
	}
	if exists {
		return fail(c, fiber.StatusConflict, "Email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	// Regenerate until the tag is free.
	tag := utils.GenerateTag(req.Name)
	for {
		taken, err := h.users.TagExists(c.Context(), tag)
		if err != nil {
			h.log.Error("tag lookup failed", zap.Error(err))
			return fail(c, fiber.StatusInternalServerError, "Database error")
		}
		if !taken {
			break
		}
		tag = utils.GenerateTag(req.Name)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Tag:       tag,
		Email:     req.Email,
		Name:      req.Name,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}
	if err := h.users.Create(c.Context(), user); err != nil {
		h.log.Error("user insert failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return h.issueToken(c, user, fiber.StatusCreated)
}

// Login handles email/password login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Email and password are required")
	}

	user, err := h.users.GetByEmail(c.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		h.log.Error("user lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Database error")
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	return h.issueToken(c, user, fiber.StatusOK)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.Context(), middleware.UserID(c))
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		h.log.Error("user lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Database error")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user.ToResponse(),
	})
}

// Logout clears the auth cookie
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

func (h *AuthHandler) issueToken(c *fiber.Ctx, user *models.User, status int) error {
	token, err := h.tokens.Generate(user.ID, user.Email, user.Tag)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.ttl),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user":  user.ToResponse(),
			"token": token,
		},
	})
}
