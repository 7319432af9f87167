package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campustalk/server/internal/models"
	"campustalk/server/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TypingSignaller lets the message path force a trailing typing-stop on
// the pair's presence channel when a message is committed.
type TypingSignaller interface {
	Stop(ctx context.Context, senderID, peerID string) error
}

// MessageView is a message plus its presentation segments.
type MessageView struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	Segments   []Segment `json:"segments"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MessageService owns sending, history and read tracking for pairwise
// conversations.
type MessageService struct {
	users    store.UserStore
	friends  store.FriendStore
	messages store.MessageStore
	notify   Notifier
	typing   TypingSignaller
	log      *zap.Logger
}

// NewMessageService wires a message service.
func NewMessageService(users store.UserStore, friends store.FriendStore, messages store.MessageStore, notify Notifier, typing TypingSignaller, log *zap.Logger) *MessageService {
	return &MessageService{
		users:    users,
		friends:  friends,
		messages: messages,
		notify:   notify,
		typing:   typing,
		log:      log,
	}
}

// Send validates and persists a message, then pushes it to both
// participants' feeds. Both ends append via the feed, so the sender's
// own open views stay consistent across tabs.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content string) (*MessageView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}

	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("check receiver: %w", err)
	}
	friends, err := s.friends.AreFriends(ctx, senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("check friendship: %w", err)
	}
	if !friends {
		return nil, ErrNotFriends
	}

	msg := &models.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	// The composer went quiet the moment the message was committed.
	if err := s.typing.Stop(ctx, senderID, receiverID); err != nil {
		s.log.Warn("typing stop publish failed", zap.String("sender", senderID), zap.Error(err))
	}

	view := toView(msg)
	s.notify.NotifyUser(receiverID, EventMessageCreated, view)
	s.notify.NotifyUser(senderID, EventMessageCreated, view)
	return &view, nil
}

// History returns the full conversation between two users in creation
// order. No pagination: a conversation is loaded whole.
func (s *MessageService) History(ctx context.Context, userID, friendID string) ([]MessageView, error) {
	messages, err := s.messages.History(ctx, userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	views := make([]MessageView, 0, len(messages))
	for i := range messages {
		views = append(views, toView(&messages[i]))
	}
	return views, nil
}

// MarkRead marks everything unread from friendID to userID as read and
// tells the friend their messages were seen. Safe to call repeatedly.
func (s *MessageService) MarkRead(ctx context.Context, userID, friendID string) (int64, error) {
	n, err := s.messages.MarkRead(ctx, userID, friendID)
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}
	if n > 0 {
		s.notify.NotifyUser(friendID, EventMessagesRead, ReadReceipt{
			ReaderID: userID,
			FriendID: friendID,
			Count:    n,
		})
	}
	return n, nil
}

func toView(msg *models.Message) MessageView {
	return MessageView{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
		Segments:   Linkify(msg.Content),
		Read:       msg.Read,
		CreatedAt:  msg.CreatedAt,
	}
}
