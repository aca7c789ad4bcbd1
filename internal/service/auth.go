package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerhouse/minibank-server/internal/apierrors"
	"github.com/ledgerhouse/minibank-server/internal/logger"
	"github.com/ledgerhouse/minibank-server/internal/model"
)

// Auth orchestrates signup, login and logout. Each call is terminal: it
// either completes fully or reports an error, never a partial result.
type Auth struct {
	users      model.UserStore
	sessions   model.SessionStore
	codec      model.TokenCodec
	hasher     model.PasswordHasher
	encryptor  model.PIIEncryptor
	sessionTTL time.Duration
	logger     *logger.Logger
}

func NewAuth(
	users model.UserStore,
	sessions model.SessionStore,
	codec model.TokenCodec,
	hasher model.PasswordHasher,
	encryptor model.PIIEncryptor,
	sessionTTL time.Duration,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:      users,
		sessions:   sessions,
		codec:      codec,
		hasher:     hasher,
		encryptor:  encryptor,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// AuthResult is the outcome of a successful signup or login.
type AuthResult struct {
	User          model.Identity
	Token         string
	ExpiresAt     time.Time
	Notifications []string
}

// Signup registers a new user and issues their first session.
func (a *Auth) Signup(ctx context.Context, input SignupInput, current *model.Identity) (AuthResult, error) {
	a.logger.Debug("Auth service: starting signup", "email", input.Email)

	if current != nil {
		return AuthResult{}, apierrors.NewAlreadyAuthenticated()
	}

	normalized, notifications, fieldErrs := validateSignup(input, time.Now())
	if fieldErrs != nil {
		a.logger.Info("Auth service: signup validation failed", "fields", len(fieldErrs))
		return AuthResult{}, apierrors.NewValidation(fieldErrs)
	}

	existing, err := a.users.GetByEmail(ctx, normalized.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to check existing email",
			"email", normalized.Email,
			"error", err.Error())
		return AuthResult{}, apierrors.NewInternal(err)
	}
	if existing.ID != 0 {
		a.logger.Info("Auth service: email already registered", "email", normalized.Email)
		return AuthResult{}, apierrors.NewEmailIsTaken(normalized.Email)
	}

	digest, err := a.hasher.Hash(normalized.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password", "error", err.Error())
		return AuthResult{}, apierrors.NewInternal(err)
	}

	envelope, err := a.encryptor.Encrypt(normalized.SSN)
	if err != nil {
		a.logger.Error("Auth service: failed to encrypt PII", "error", err.Error())
		return AuthResult{}, apierrors.NewInternal(err)
	}

	user, err := a.users.Create(ctx, model.User{
		Email:        normalized.Email,
		PasswordHash: digest,
		FirstName:    normalized.FirstName,
		LastName:     normalized.LastName,
		Phone:        normalized.Phone,
		Region:       normalized.Region,
		DateOfBirth:  normalized.DateOfBirth,
		EncryptedSSN: envelope,
	})
	if errors.Is(err, model.ErrDuplicate) {
		// Lost the race against a concurrent signup for the same email.
		return AuthResult{}, apierrors.NewEmailIsTaken(normalized.Email)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", normalized.Email,
			"error", err.Error())
		return AuthResult{}, apierrors.NewInternal(err)
	}

	session, err := a.issueSession(ctx, user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue session after signup",
			"user_id", user.ID,
			"error", err.Error())
		return AuthResult{}, apierrors.NewInternal(err)
	}

	a.logger.Info("Auth service: signup completed",
		"user_id", user.ID,
		"email", user.Email)

	return AuthResult{
		User:          user.Identity(),
		Token:         session.Token,
		ExpiresAt:     session.ExpiresAt,
		Notifications: notifications,
	}, nil
}

// Login verifies credentials and issues exactly one new session. Unknown
// email and wrong password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, email, password string, current *model.Identity) (AuthResult, error) {
	a.logger.Debug("Auth service: starting login", "email", email)

	if current != nil {
		return AuthResult{}, apierrors.NewAlreadyAuthenticated()
	}

	user, err := a.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, model.ErrNotFound) {
		return AuthResult{}, apierrors.NewInvalidCredentials()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email", "error", err.Error())
		return AuthResult{}, apierrors.NewInternal(err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return AuthResult{}, apierrors.NewInvalidCredentials()
	}

	session, err := a.issueSession(ctx, user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue session after login",
			"user_id", user.ID,
			"error", err.Error())
		return AuthResult{}, apierrors.NewInternal(err)
	}

	a.logger.Info("Auth service: login completed", "user_id", user.ID)

	return AuthResult{
		User:      user.Identity(),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout deletes the session the request arrived with. It is idempotent:
// an anonymous caller gets a success with a "no active session" message.
func (a *Auth) Logout(ctx context.Context, current *model.Identity, transport model.RequestTransport) (string, error) {
	if current == nil {
		return "no active session", nil
	}

	tokenString := ExtractSessionToken(transport)
	if tokenString == "" {
		// Resolved identity without a findable token should not happen, but
		// logout still succeeds for the end user.
		return "no active session", nil
	}

	count, err := a.sessions.DeleteByToken(ctx, tokenString)
	if err != nil {
		a.logger.Error("Auth service: failed to delete session",
			"user_id", current.ID,
			"error", err.Error())
		return "", apierrors.NewInternal(err)
	}

	a.logger.Info("Auth service: logout completed",
		"user_id", current.ID,
		"deleted", count)

	if count == 0 {
		return "no active session", nil
	}
	return "logged out", nil
}

// issueSession creates a signed token and persists it. The store revokes
// all prior sessions of the user in the same transaction as the insert, so
// the call never leaves more than one live session behind.
func (a *Auth) issueSession(ctx context.Context, userID int64) (model.Session, error) {
	tokenString, err := a.codec.Issue(userID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	session := model.Session{
		Token:     tokenString,
		UserID:    userID,
		ExpiresAt: time.Now().Add(a.sessionTTL),
	}
	if err := a.sessions.Create(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	return session, nil
}

func normalizeEmail(email string) string {
	return trimLower(email)
}
