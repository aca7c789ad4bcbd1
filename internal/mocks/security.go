package mocks

import (
	"github.com/stretchr/testify/mock"
)

// PasswordHasher is a mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(plaintext, digest string) bool {
	args := m.Called(plaintext, digest)
	return args.Bool(0)
}

// PIIEncryptor is a mock of model.PIIEncryptor.
type PIIEncryptor struct {
	mock.Mock
}

func (m *PIIEncryptor) Encrypt(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *PIIEncryptor) Decrypt(envelope string) (string, error) {
	args := m.Called(envelope)
	return args.String(0), args.Error(1)
}
