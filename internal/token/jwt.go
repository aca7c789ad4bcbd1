package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ledgerhouse/minibank-server/internal/model"
)

// Claims represents session token claims with the owning user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// JWT implements TokenCodec backed by symmetric HMAC. Every issued token
// carries a random JTI, so rapid repeated issuance for one user still yields
// distinct tokens.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// NewJWT creates a new JWT session codec with the provided secret key and
// session lifetime.
func NewJWT(secretKey string, ttl time.Duration) model.TokenCodec {
	return &JWT{secretKey: secretKey, ttl: ttl}
}

// Issue creates a signed session token bound to the user ID.
func (j *JWT) Issue(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Verify validates the token and extracts the user ID. Any structural or
// signature error fails closed.
func (j *JWT) Verify(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("session token is invalid")
	}
	if claims.UserID <= 0 {
		return 0, fmt.Errorf("session token has no user")
	}
	return claims.UserID, nil
}
