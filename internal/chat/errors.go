package chat

import "errors"

// Domain errors surfaced to the HTTP layer. Handlers map these onto
// status codes; anything else is a backend failure.
var (
	ErrEmptyName        = errors.New("name is required")
	ErrUserNotFound     = errors.New("no user with that name")
	ErrAmbiguousName    = errors.New("name matches more than one user")
	ErrSelfRequest      = errors.New("you cannot send a friend request to yourself")
	ErrAlreadyFriends   = errors.New("you are already friends")
	ErrPendingSent      = errors.New("you already sent this user a friend request")
	ErrPendingReceived  = errors.New("this user already sent you a friend request")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrNotRequestTarget = errors.New("only the receiver can act on this request")
	ErrRequestResolved  = errors.New("friend request is no longer pending")

	ErrEmptyMessage     = errors.New("message is empty")
	ErrSelfMessage      = errors.New("you cannot message yourself")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrNotFriends       = errors.New("you can only message friends")
)
