package model

// TokenCodec issues and verifies opaque signed session tokens. Issue binds
// the user ID together with a random per-issuance nonce, so two tokens for
// the same user are never equal. Verify fails closed on any structural or
// signature error.
type TokenCodec interface {
	Issue(userID int64) (string, error)
	Verify(token string) (int64, error)
}
