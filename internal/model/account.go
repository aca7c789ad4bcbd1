package model

import (
	"context"
	"fmt"
	"time"
)

// LedgerStore persists accounts and their transactions. All monetary fields
// are integer cents. Fund is the only mutation of a balance and performs the
// transaction insert and the balance update as one atomic unit of work.
type LedgerStore interface {
	CreateAccount(ctx context.Context, account Account) (Account, error)
	GetAccount(ctx context.Context, id int64) (Account, error)
	GetAccountsForUser(ctx context.Context, userID int64) ([]Account, error)
	HasAccountOfType(ctx context.Context, userID int64, accountType AccountType) (bool, error)
	// Fund appends the transaction and adds its amount to the stored balance
	// inside a single database transaction. It returns the saved transaction
	// and the post-update balance read back from storage.
	Fund(ctx context.Context, accountID int64, txn Transaction) (Transaction, int64, error)
	// ListTransactions returns transactions newest first by creation time,
	// with the insertion sequence as tie-break.
	ListTransactions(ctx context.Context, accountID int64) ([]Transaction, error)
}

// AccountType enumerates the closed set of account kinds.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// ParseAccountType validates a raw account type string.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountTypeChecking, AccountTypeSavings:
		return AccountType(s), nil
	default:
		return "", fmt.Errorf("unknown account type %q", s)
	}
}

// AccountStatus enumerates account states.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

// Account represents a stored ledger account.
type Account struct {
	ID            int64
	UserID        int64
	AccountNumber string
	Type          AccountType
	BalanceCents  int64
	Status        AccountStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
