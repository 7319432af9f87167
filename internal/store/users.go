package store

import (
	"context"
	"errors"
	"fmt"

	"campustalk/server/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = "id, tag, email, name, password_hash, created_at"

// PostgresUserStore implements UserStore over pgx.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a Postgres-backed user store.
func NewUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (s *PostgresUserStore) Create(ctx context.Context, user *models.User) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, tag, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, user.ID, user.Tag, user.Email, user.Name, user.Password, user.CreatedAt).
		Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.pool.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.Tag, &user.Email, &user.Name, &user.Password, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

// SearchByName matches users by case-insensitive substring on full name.
func (s *PostgresUserStore) SearchByName(ctx context.Context, name string) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE name ILIKE $1
		ORDER BY name
	`, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Tag, &user.Email, &user.Name, &user.Password, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *PostgresUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email)
}

func (s *PostgresUserStore) TagExists(ctx context.Context, tag string) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE tag = $1)", tag)
}

func (s *PostgresUserStore) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("query exists: %w", err)
	}
	return exists, nil
}
