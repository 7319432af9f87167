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

// FriendService owns the friend-request state machine and the roster.
type FriendService struct {
	users    store.UserStore
	friends  store.FriendStore
	messages store.MessageStore
	notify   Notifier
	log      *zap.Logger
}

// NewFriendService wires a friend service.
func NewFriendService(users store.UserStore, friends store.FriendStore, messages store.MessageStore, notify Notifier, log *zap.Logger) *FriendService {
	return &FriendService{
		users:    users,
		friends:  friends,
		messages: messages,
		notify:   notify,
		log:      log,
	}
}

// SendRequest resolves a display name to a user and creates a pending
// friend request. A pending request in either direction blocks a new
// one; a resolved request for the pair is replaced.
func (s *FriendService) SendRequest(ctx context.Context, senderID, targetName string) (*models.FriendRequest, error) {
	targetName = strings.TrimSpace(targetName)
	if targetName == "" {
		return nil, ErrEmptyName
	}

	matches, err := s.users.SearchByName(ctx, targetName)
	if err != nil {
		return nil, fmt.Errorf("resolve name: %w", err)
	}
	if len(matches) == 0 {
		return nil, ErrUserNotFound
	}
	if len(matches) > 1 {
		return nil, ErrAmbiguousName
	}
	target := matches[0]

	if target.ID == senderID {
		return nil, ErrSelfRequest
	}

	friends, err := s.friends.AreFriends(ctx, senderID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("check friendship: %w", err)
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	existing, err := s.friends.GetRequestBetween(ctx, senderID, target.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing request: %w", err)
	}
	if existing != nil {
		if existing.Status == models.RequestPending {
			if existing.SenderID == senderID {
				return nil, ErrPendingSent
			}
			return nil, ErrPendingReceived
		}
		// Stale accepted/rejected row: clear it and start over.
		if err := s.friends.DeleteRequest(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("delete stale request: %w", err)
		}
	}

	req := &models.FriendRequest{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: target.ID,
		Status:     models.RequestPending,
		CreatedAt:  time.Now(),
	}
	req.UpdatedAt = req.CreatedAt
	if err := s.friends.CreateRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		s.log.Warn("friend request sent but sender profile lookup failed",
			zap.String("request_id", req.ID), zap.Error(err))
	} else {
		s.notify.NotifyUser(target.ID, EventFriendRequest, models.PendingRequest{
			Request: *req,
			Sender:  sender.ToResponse(),
		})
	}

	return req, nil
}

// Accept transitions a pending request to accepted and creates both
// directed friendship rows atomically.
func (s *FriendService) Accept(ctx context.Context, userID, requestID string) (*models.FriendRequest, error) {
	req, err := s.loadPending(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.friends.AcceptRequest(ctx, req); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost a race with another accept/reject of the same request.
			return nil, ErrRequestResolved
		}
		return nil, fmt.Errorf("accept request: %w", err)
	}
	req.Status = models.RequestAccepted

	if receiver, err := s.users.GetByID(ctx, userID); err == nil {
		s.notify.NotifyUser(req.SenderID, EventFriendRequestAccepted, models.FriendEntry{
			User: receiver.ToResponse(),
		})
	}

	return req, nil
}

// Reject transitions a pending request to rejected. No cascade.
func (s *FriendService) Reject(ctx context.Context, userID, requestID string) error {
	req, err := s.loadPending(ctx, userID, requestID)
	if err != nil {
		return err
	}
	if err := s.friends.UpdateRequestStatus(ctx, req.ID, models.RequestRejected); err != nil {
		return fmt.Errorf("reject request: %w", err)
	}
	return nil
}

func (s *FriendService) loadPending(ctx context.Context, userID, requestID string) (*models.FriendRequest, error) {
	req, err := s.friends.GetRequestByID(ctx, requestID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load request: %w", err)
	}
	if req.ReceiverID != userID {
		return nil, ErrNotRequestTarget
	}
	if req.Status != models.RequestPending {
		return nil, ErrRequestResolved
	}
	return req, nil
}

// Friends returns the roster: accepted friends with unread counts.
func (s *FriendService) Friends(ctx context.Context, userID string) ([]models.FriendEntry, error) {
	friends, err := s.friends.ListFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	unread, err := s.messages.UnreadCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("unread counts: %w", err)
	}

	entries := make([]models.FriendEntry, 0, len(friends))
	for _, f := range friends {
		entries = append(entries, models.FriendEntry{
			User:   f.ToResponse(),
			Unread: unread[f.ID],
		})
	}
	return entries, nil
}

// PendingRequests returns incoming requests awaiting a decision.
func (s *FriendService) PendingRequests(ctx context.Context, userID string) ([]models.PendingRequest, error) {
	pending, err := s.friends.ListPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	if pending == nil {
		pending = []models.PendingRequest{}
	}
	return pending, nil
}
