package store

import (
	"context"
	"fmt"

	"campustalk/server/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMessageStore implements MessageStore over pgx.
type PostgresMessageStore struct {
	pool *pgxpool.Pool
}

// NewMessageStore creates a Postgres-backed message store.
func NewMessageStore(pool *pgxpool.Pool) *PostgresMessageStore {
	return &PostgresMessageStore{pool: pool}
}

func (s *PostgresMessageStore) Insert(ctx context.Context, msg *models.Message) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO messages (id, sender_id, receiver_id, content, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, msg.ID, msg.SenderID, msg.ReceiverID, msg.Content, msg.Read, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (s *PostgresMessageStore) History(ctx context.Context, userID, friendID string) ([]models.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, sender_id, receiver_id, content, read, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC
	`, userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.Read, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// MarkRead only touches rows that are still unread, so repeated calls are
// no-ops and a read flag never goes back to false.
func (s *PostgresMessageStore) MarkRead(ctx context.Context, userID, friendID string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE messages SET read = TRUE
		WHERE receiver_id = $1 AND sender_id = $2 AND read = FALSE
	`, userID, friendID)
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresMessageStore) UnreadCounts(ctx context.Context, userID string) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sender_id, COUNT(*)
		FROM messages
		WHERE receiver_id = $1 AND read = FALSE
		GROUP BY sender_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query unread counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var senderID string
		var n int
		if err := rows.Scan(&senderID, &n); err != nil {
			return nil, fmt.Errorf("scan unread count: %w", err)
		}
		counts[senderID] = n
	}
	return counts, rows.Err()
}
