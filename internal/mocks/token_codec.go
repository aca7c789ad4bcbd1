package mocks

import (
	"github.com/stretchr/testify/mock"
)

// TokenCodec is a mock of model.TokenCodec.
type TokenCodec struct {
	mock.Mock
}

func (m *TokenCodec) Issue(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *TokenCodec) Verify(token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}
