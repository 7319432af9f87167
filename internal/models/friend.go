package models

import "time"

// Friend request statuses. pending is the only non-terminal state.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// FriendRequest represents an invitation from one user to another.
type FriendRequest struct {
	ID         string    `json:"id" db:"id"`
	SenderID   string    `json:"senderId" db:"sender_id"`
	ReceiverID string    `json:"receiverId" db:"receiver_id"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Friendship is one direction of a symmetric connection. The reciprocal
// row is always created in the same transaction.
type Friendship struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	FriendID  string    `json:"friendId" db:"friend_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// FriendEntry is a roster line: a friend's profile plus the number of
// their messages the user has not read yet.
type FriendEntry struct {
	User   UserResponse `json:"user"`
	Unread int          `json:"unread"`
}

// PendingRequest is an incoming request joined with the sender's profile.
type PendingRequest struct {
	Request FriendRequest `json:"request"`
	Sender  UserResponse  `json:"sender"`
}
