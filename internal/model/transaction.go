package model

import "time"

// TransactionType enumerates transaction kinds.
type TransactionType string

const (
	TransactionTypeDeposit TransactionType = "deposit"
)

// TransactionStatus enumerates transaction states.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
)

// Transaction is one immutable ledger line. For every account the stored
// balance equals the sum of its transactions' AmountCents.
type Transaction struct {
	ID          int64
	AccountID   int64
	Type        TransactionType
	AmountCents int64
	Description string
	Status      TransactionStatus
	CreatedAt   time.Time
	ProcessedAt time.Time
}

// FundingKind discriminates the funding source union.
type FundingKind string

const (
	FundingKindCard FundingKind = "card"
	FundingKindBank FundingKind = "bank"
)

// FundingSource is a tagged union: a card source requires CardNumber, a bank
// source requires RoutingNumber. Validation happens before persistence.
type FundingSource struct {
	Kind          FundingKind
	CardNumber    string
	RoutingNumber string
}
