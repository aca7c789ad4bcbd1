package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ledgerhouse/minibank-server/internal/logger"
	"github.com/ledgerhouse/minibank-server/internal/model"
)

const sessionCookieName = "session"

// SessionCookieName is the cookie carrying the session token.
func SessionCookieName() string { return sessionCookieName }

// Resolver turns an inbound request transport into an authenticated
// identity, or nil for anonymous callers. Absent, unparseable and expired
// tokens all resolve to anonymous; only storage failures surface as errors.
type Resolver struct {
	sessions model.SessionStore
	users    model.UserStore
	codec    model.TokenCodec
	logger   *logger.Logger
}

func NewResolver(sessions model.SessionStore, users model.UserStore, codec model.TokenCodec, logger *logger.Logger) *Resolver {
	return &Resolver{
		sessions: sessions,
		users:    users,
		codec:    codec,
		logger:   logger,
	}
}

// ExtractSessionToken pulls the candidate token out of the transport, trying
// the shapes in fixed precedence: the parsed cookie jar (only a non-empty
// value counts), then the raw Cookie header, then the header accessor.
// Returns "" when no shape yields a token.
func ExtractSessionToken(t model.RequestTransport) string {
	if v, ok := t.Cookies[sessionCookieName]; ok && v != "" {
		return v
	}
	if v := tokenFromCookieHeader(t.RawCookieHeader); v != "" {
		return v
	}
	if t.HeaderGet != nil {
		if v := tokenFromCookieHeader(t.HeaderGet("cookie")); v != "" {
			return v
		}
	}
	return ""
}

func tokenFromCookieHeader(header string) string {
	if header == "" {
		return ""
	}
	for _, part := range strings.Split(header, "; ") {
		if v, ok := strings.CutPrefix(part, sessionCookieName+"="); ok && v != "" {
			return v
		}
	}
	return ""
}

// Resolve extracts a token from the transport and resolves it to the owning
// user. The returned identity is sanitized; a nil identity with nil error
// means anonymous.
func (r *Resolver) Resolve(ctx context.Context, transport model.RequestTransport) (*model.Identity, error) {
	tokenString := ExtractSessionToken(transport)
	if tokenString == "" {
		return nil, nil
	}

	if _, err := r.codec.Verify(tokenString); err != nil {
		r.logger.Debug("Session resolver: token failed verification", "error", err.Error())
		return nil, nil
	}

	// The raw token string is the authoritative session key, not the
	// decoded payload.
	session, err := r.sessions.FindByToken(ctx, tokenString)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	// One timestamp per resolution; the expiry boundary is exclusive, so a
	// session expiring exactly now is already dead.
	now := time.Now()
	if !session.ExpiresAt.After(now) {
		if _, err := r.sessions.DeleteByToken(ctx, session.Token); err != nil {
			r.logger.Debug("Session resolver: failed to delete expired session", "error", err.Error())
		}
		return nil, nil
	}

	user, err := r.users.GetByID(ctx, session.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	identity := user.Identity()
	return &identity, nil
}
