package handlers

import (
	"errors"

	"campustalk/server/internal/chat"

	"github.com/gofiber/fiber/v2"
)

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// failDomain maps a chat domain error onto an HTTP status. Anything
// unrecognized is a backend failure and stays generic.
func failDomain(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, chat.ErrEmptyName),
		errors.Is(err, chat.ErrSelfRequest),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrSelfMessage):
		return fail(c, fiber.StatusBadRequest, err.Error())

	case errors.Is(err, chat.ErrUserNotFound),
		errors.Is(err, chat.ErrRequestNotFound),
		errors.Is(err, chat.ErrReceiverNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())

	case errors.Is(err, chat.ErrNotRequestTarget),
		errors.Is(err, chat.ErrNotFriends):
		return fail(c, fiber.StatusForbidden, err.Error())

	case errors.Is(err, chat.ErrAmbiguousName),
		errors.Is(err, chat.ErrAlreadyFriends),
		errors.Is(err, chat.ErrPendingSent),
		errors.Is(err, chat.ErrPendingReceived),
		errors.Is(err, chat.ErrRequestResolved):
		return fail(c, fiber.StatusConflict, err.Error())

	default:
		return fail(c, fiber.StatusInternalServerError, "Something went wrong")
	}
}
