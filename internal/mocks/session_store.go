package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ledgerhouse/minibank-server/internal/model"
)

// SessionStore is a mock of model.SessionStore.
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Create(ctx context.Context, session model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionStore) FindByToken(ctx context.Context, token string) (model.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *SessionStore) DeleteByToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SessionStore) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SessionStore) ListForUser(ctx context.Context, userID int64) ([]model.Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Session), args.Error(1)
}
