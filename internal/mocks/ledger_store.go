package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ledgerhouse/minibank-server/internal/model"
)

// LedgerStore is a mock of model.LedgerStore.
type LedgerStore struct {
	mock.Mock
}

func (m *LedgerStore) CreateAccount(ctx context.Context, account model.Account) (model.Account, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *LedgerStore) GetAccount(ctx context.Context, id int64) (model.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *LedgerStore) GetAccountsForUser(ctx context.Context, userID int64) ([]model.Account, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *LedgerStore) HasAccountOfType(ctx context.Context, userID int64, accountType model.AccountType) (bool, error) {
	args := m.Called(ctx, userID, accountType)
	return args.Bool(0), args.Error(1)
}

func (m *LedgerStore) Fund(ctx context.Context, accountID int64, txn model.Transaction) (model.Transaction, int64, error) {
	args := m.Called(ctx, accountID, txn)
	return args.Get(0).(model.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *LedgerStore) ListTransactions(ctx context.Context, accountID int64) ([]model.Transaction, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]model.Transaction), args.Error(1)
}
