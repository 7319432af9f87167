package store

import (
	"context"
	"errors"

	"campustalk/server/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// UserStore provides access to user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SearchByName(ctx context.Context, name string) ([]models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	TagExists(ctx context.Context, tag string) (bool, error)
}

// FriendStore provides access to friend requests and friendships.
type FriendStore interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	GetRequestByID(ctx context.Context, id string) (*models.FriendRequest, error)
	// GetRequestBetween returns the request between two users in either
	// direction, or ErrNotFound.
	GetRequestBetween(ctx context.Context, userA, userB string) (*models.FriendRequest, error)
	DeleteRequest(ctx context.Context, id string) error
	UpdateRequestStatus(ctx context.Context, id, status string) error
	// AcceptRequest marks the request accepted and inserts both directed
	// friendship rows in a single transaction.
	AcceptRequest(ctx context.Context, req *models.FriendRequest) error
	ListPending(ctx context.Context, receiverID string) ([]models.PendingRequest, error)
	ListFriends(ctx context.Context, userID string) ([]models.User, error)
	AreFriends(ctx context.Context, userA, userB string) (bool, error)
}

// MessageStore provides access to the message table.
type MessageStore interface {
	Insert(ctx context.Context, msg *models.Message) error
	// History returns all messages between two users in created_at order.
	History(ctx context.Context, userID, friendID string) ([]models.Message, error)
	// MarkRead flips the read flag on every unread message from friendID
	// to userID and reports how many rows changed.
	MarkRead(ctx context.Context, userID, friendID string) (int64, error)
	// UnreadCounts returns, per sender, how many unread messages userID has.
	UnreadCounts(ctx context.Context, userID string) (map[string]int, error)
}
