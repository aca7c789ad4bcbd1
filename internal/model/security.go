package model

// PasswordHasher is the credential hashing collaborator.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// PIIEncryptor is the PII encryption collaborator. Encrypt returns an opaque
// envelope string; construction fails if the configured key is absent or
// malformed.
type PIIEncryptor interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(envelope string) (string, error)
}
