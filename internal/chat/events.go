package chat

// Change-feed event names pushed to connected clients.
const (
	EventMessageCreated        = "message_created"
	EventMessagesRead          = "messages_read"
	EventFriendRequest         = "friend_request"
	EventFriendRequestAccepted = "friend_request_accepted"
)

// Notifier delivers a change-feed event to one user's open connection.
// Delivery is best effort; an offline user simply misses the push and
// catches up on the next read.
type Notifier interface {
	NotifyUser(userID, event string, payload any)
}

// ReadReceipt is the messages_read payload: ReaderID's view of the
// conversation with FriendID marked Count messages read.
type ReadReceipt struct {
	ReaderID string `json:"readerId"`
	FriendID string `json:"friendId"`
	Count    int64  `json:"count"`
}
