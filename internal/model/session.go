package model

import (
	"context"
	"time"
)

// SessionStore persists issued sessions keyed by their raw token string.
type SessionStore interface {
	// Create inserts the session and, in the same transaction, deletes all
	// prior sessions of the same user. A user therefore never accumulates
	// more than one row past the moment of issuance.
	Create(ctx context.Context, session Session) error
	// FindByToken returns the session with the stored expiry untouched.
	// Whether the session is still alive is the resolver's decision.
	FindByToken(ctx context.Context, token string) (Session, error)
	DeleteByToken(ctx context.Context, token string) (int64, error)
	DeleteAllForUser(ctx context.Context, userID int64) (int64, error)
	ListForUser(ctx context.Context, userID int64) ([]Session, error)
}

// Session represents one authenticated client instance.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}
