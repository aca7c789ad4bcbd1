package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerhouse/minibank-server/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts the session after deleting every prior session of the same
// user, both inside one transaction. Two racing issuances for one user
// serialize here, so at most one live row survives.
func (r *SessionRepository) Create(ctx context.Context, session model.Session) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin session transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, session.UserID); err != nil {
		return fmt.Errorf("failed to revoke prior sessions: %w", err)
	}

	const insert = `
        INSERT INTO sessions (token, user_id, expires_at)
        VALUES ($1, $2, $3)
    `
	if _, err := tx.Exec(ctx, insert, session.Token, session.UserID, session.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit session transaction: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (model.Session, error) {
	const query = `
        SELECT token, user_id, expires_at, created_at
        FROM sessions WHERE token = $1
    `
	var s model.Session
	err := r.db.QueryRow(ctx, query, token).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session by token: %w", err)
	}
	return s, nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return 0, fmt.Errorf("failed to delete session by token: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions for user: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SessionRepository) ListForUser(ctx context.Context, userID int64) ([]model.Session, error) {
	const query = `
        SELECT token, user_id, expires_at, created_at
        FROM sessions WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for user: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
