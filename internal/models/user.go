package models

import "time"

// User represents a registered account.
type User struct {
	ID        string    `json:"id" db:"id"`
	Tag       string    `json:"tag" db:"tag"` // Format: #WORD-123
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Password  string    `json:"-" db:"password_hash"` // Never expose in JSON
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// UserResponse is what we send to clients (without sensitive data)
type UserResponse struct {
	ID        string    `json:"id"`
	Tag       string    `json:"tag"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Tag:       u.Tag,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
