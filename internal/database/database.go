package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect creates a pgx connection pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the tables the service needs if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			tag TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS friend_requests (
			id UUID PRIMARY KEY,
			sender_id UUID NOT NULL REFERENCES users(id),
			receiver_id UUID NOT NULL REFERENCES users(id),
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CHECK (sender_id <> receiver_id)
		)`,
		`CREATE TABLE IF NOT EXISTS friendships (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			friend_id UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, friend_id),
			CHECK (user_id <> friend_id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id UUID PRIMARY KEY,
			sender_id UUID NOT NULL REFERENCES users(id),
			receiver_id UUID NOT NULL REFERENCES users(id),
			content TEXT NOT NULL,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CHECK (sender_id <> receiver_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_pair
			ON messages (sender_id, receiver_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_unread
			ON messages (receiver_id, sender_id) WHERE NOT read`,
		`CREATE INDEX IF NOT EXISTS idx_friend_requests_receiver
			ON friend_requests (receiver_id, status)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}
