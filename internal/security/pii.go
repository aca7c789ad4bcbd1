package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/ledgerhouse/minibank-server/internal/model"
)

var _ model.PIIEncryptor = (*AESEncryptor)(nil)

// AESEncryptor implements the PII encryption collaborator with AES-GCM.
// Envelopes are base64(nonce || ciphertext); a fresh random nonce is drawn
// per encryption.
type AESEncryptor struct {
	aead cipher.AEAD
}

// NewAESEncryptor builds an encryptor from a hex-encoded AES key. It fails
// if the key is absent or not a valid AES key length.
func NewAESEncryptor(hexKey string) (*AESEncryptor, error) {
	if hexKey == "" {
		return nil, fmt.Errorf("encryption key is not configured")
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key is not valid hex: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESEncryptor{aead: aead}, nil
}

func (e *AESEncryptor) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := e.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (e *AESEncryptor) Decrypt(envelope string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", fmt.Errorf("envelope is not valid base64: %w", err)
	}
	if len(raw) < e.aead.NonceSize() {
		return "", fmt.Errorf("envelope is too short")
	}

	nonce, ciphertext := raw[:e.aead.NonceSize()], raw[e.aead.NonceSize():]
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt envelope: %w", err)
	}
	return string(plaintext), nil
}
