package models

import "time"

// Message represents one directed text message between two users.
// Content, sender and receiver are immutable after insert; only the read
// flag changes, and only from false to true.
type Message struct {
	ID         string    `json:"id" db:"id"`
	SenderID   string    `json:"senderId" db:"sender_id"`
	ReceiverID string    `json:"receiverId" db:"receiver_id"`
	Content    string    `json:"content" db:"content"`
	Read       bool      `json:"read" db:"read"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
