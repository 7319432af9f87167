package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campustalk/server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestColumns = "id, sender_id, receiver_id, status, created_at, updated_at"

// PostgresFriendStore implements FriendStore over pgx.
type PostgresFriendStore struct {
	pool *pgxpool.Pool
}

// NewFriendStore creates a Postgres-backed friend store.
func NewFriendStore(pool *pgxpool.Pool) *PostgresFriendStore {
	return &PostgresFriendStore{pool: pool}
}

func (s *PostgresFriendStore) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO friend_requests (id, sender_id, receiver_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, req.ID, req.SenderID, req.ReceiverID, req.Status, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert friend request: %w", err)
	}
	return nil
}

func (s *PostgresFriendStore) GetRequestByID(ctx context.Context, id string) (*models.FriendRequest, error) {
	return s.getOne(ctx, "SELECT "+requestColumns+" FROM friend_requests WHERE id = $1", id)
}

func (s *PostgresFriendStore) GetRequestBetween(ctx context.Context, userA, userB string) (*models.FriendRequest, error) {
	return s.getOne(ctx, `
		SELECT `+requestColumns+` FROM friend_requests
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at DESC
		LIMIT 1
	`, userA, userB)
}

func (s *PostgresFriendStore) getOne(ctx context.Context, query string, args ...any) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := s.pool.QueryRow(ctx, query, args...).
		Scan(&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query friend request: %w", err)
	}
	return &req, nil
}

func (s *PostgresFriendStore) DeleteRequest(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM friend_requests WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete friend request: %w", err)
	}
	return nil
}

func (s *PostgresFriendStore) UpdateRequestStatus(ctx context.Context, id, status string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE friend_requests SET status = $1, updated_at = $2 WHERE id = $3
	`, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update friend request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AcceptRequest flips the request to accepted and inserts both directed
// friendship rows. Everything runs in one transaction so an accepted
// request can never exist without its friendship pair.
func (s *PostgresFriendStore) AcceptRequest(ctx context.Context, req *models.FriendRequest) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin accept: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	tag, err := tx.Exec(ctx, `
		UPDATE friend_requests SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`, models.RequestAccepted, now, req.ID, models.RequestPending)
	if err != nil {
		return fmt.Errorf("accept friend request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	for _, pair := range [][2]string{{req.SenderID, req.ReceiverID}, {req.ReceiverID, req.SenderID}} {
		_, err = tx.Exec(ctx, `
			INSERT INTO friendships (id, user_id, friend_id, created_at)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), pair[0], pair[1], now)
		if err != nil {
			return fmt.Errorf("insert friendship: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit accept: %w", err)
	}
	return nil
}

func (s *PostgresFriendStore) ListPending(ctx context.Context, receiverID string) ([]models.PendingRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			r.id, r.sender_id, r.receiver_id, r.status, r.created_at, r.updated_at,
			u.id, u.tag, u.email, u.name, u.created_at
		FROM friend_requests r
		INNER JOIN users u ON r.sender_id = u.id
		WHERE r.receiver_id = $1 AND r.status = $2
		ORDER BY r.created_at DESC
	`, receiverID, models.RequestPending)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	defer rows.Close()

	var pending []models.PendingRequest
	for rows.Next() {
		var req models.FriendRequest
		var sender models.UserResponse
		err := rows.Scan(
			&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt, &req.UpdatedAt,
			&sender.ID, &sender.Tag, &sender.Email, &sender.Name, &sender.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan pending request: %w", err)
		}
		pending = append(pending, models.PendingRequest{Request: req, Sender: sender})
	}
	return pending, rows.Err()
}

func (s *PostgresFriendStore) ListFriends(ctx context.Context, userID string) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.tag, u.email, u.name, u.password_hash, u.created_at
		FROM friendships f
		INNER JOIN users u ON f.friend_id = u.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	var friends []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Tag, &user.Email, &user.Name, &user.Password, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		friends = append(friends, user)
	}
	return friends, rows.Err()
}

func (s *PostgresFriendStore) AreFriends(ctx context.Context, userA, userB string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM friendships WHERE user_id = $1 AND friend_id = $2)
	`, userA, userB).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query friendship: %w", err)
	}
	return exists, nil
}
