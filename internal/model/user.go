package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a stored user. PasswordHash and EncryptedSSN never leave
// the auth layer; callers receive the sanitized Identity view instead.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Region       string
	DateOfBirth  time.Time
	EncryptedSSN string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the sanitized view of an authenticated user, safe to hand to
// transport layers. It carries no credential or PII material.
type Identity struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Region    string
	CreatedAt time.Time
}

// Identity strips credential and PII fields from the user.
func (u User) Identity() Identity {
	return Identity{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Region:    u.Region,
		CreatedAt: u.CreatedAt,
	}
}
