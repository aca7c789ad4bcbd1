package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/ledgerhouse/minibank-server/internal/apierrors"
	"github.com/ledgerhouse/minibank-server/internal/logger"
	"github.com/ledgerhouse/minibank-server/internal/model"
	"github.com/ledgerhouse/minibank-server/internal/money"
)

const accountNumberDigits = 12

// Account provides account creation, funding and transaction retrieval.
type Account struct {
	ledger model.LedgerStore
	logger *logger.Logger
}

func NewAccount(ledger model.LedgerStore, logger *logger.Logger) *Account {
	return &Account{ledger: ledger, logger: logger}
}

// TransactionView is a transaction enriched with its account's type. The
// type comes from the single account fetch done for the ownership check,
// never from a per-row lookup.
type TransactionView struct {
	model.Transaction
	AccountType model.AccountType
}

// FundResult is the outcome of a successful funding call.
type FundResult struct {
	Transaction     model.Transaction
	NewBalanceCents int64
}

// CreateAccount opens a new account of the given type for the user. A user
// holds at most one account per type.
func (s *Account) CreateAccount(ctx context.Context, userID int64, accountType string) (model.Account, error) {
	s.logger.Debug("Account service: creating account",
		"user_id", userID,
		"account_type", accountType)

	parsedType, err := model.ParseAccountType(accountType)
	if err != nil {
		return model.Account{}, apierrors.NewValidation(map[string]string{
			"accountType": "must be one of: checking, savings",
		})
	}

	exists, err := s.ledger.HasAccountOfType(ctx, userID, parsedType)
	if err != nil {
		s.logger.Error("Account service: failed to check account type",
			"user_id", userID,
			"error", err.Error())
		return model.Account{}, apierrors.NewInternal(err)
	}
	if exists {
		return model.Account{}, apierrors.NewConflict(
			fmt.Sprintf("user already has a %s account", parsedType))
	}

	// The number space is large enough that a collision is near-impossible;
	// retry on the unique constraint all the same.
	for {
		number, err := generateAccountNumber()
		if err != nil {
			return model.Account{}, apierrors.NewInternal(err)
		}

		saved, err := s.ledger.CreateAccount(ctx, model.Account{
			UserID:        userID,
			AccountNumber: number,
			Type:          parsedType,
			BalanceCents:  0,
			Status:        model.AccountStatusActive,
		})
		if errors.Is(err, model.ErrDuplicateAccountNumber) {
			s.logger.Info("Account service: account number collision, retrying",
				"user_id", userID)
			continue
		}
		if errors.Is(err, model.ErrDuplicate) {
			// Lost a race against a concurrent create of the same type.
			return model.Account{}, apierrors.NewConflict(
				fmt.Sprintf("user already has a %s account", parsedType))
		}
		if err != nil {
			s.logger.Error("Account service: failed to create account",
				"user_id", userID,
				"error", err.Error())
			return model.Account{}, apierrors.NewInternal(err)
		}

		s.logger.Info("Account service: account created",
			"user_id", userID,
			"account_id", saved.ID,
			"account_type", saved.Type)
		return saved, nil
	}
}

// GetAccounts lists the caller's accounts.
func (s *Account) GetAccounts(ctx context.Context, userID int64) ([]model.Account, error) {
	accounts, err := s.ledger.GetAccountsForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Account service: failed to list accounts",
			"user_id", userID,
			"error", err.Error())
		return nil, apierrors.NewInternal(err)
	}
	return accounts, nil
}

// Fund deposits the decimal-dollar amount into the account. The transaction
// append and the balance update are one atomic unit of work in the store.
func (s *Account) Fund(ctx context.Context, accountID, callerUserID int64, amountDollars string, source model.FundingSource) (FundResult, error) {
	s.logger.Debug("Account service: funding account",
		"account_id", accountID,
		"user_id", callerUserID)

	account, err := s.ownedAccount(ctx, accountID, callerUserID)
	if err != nil {
		return FundResult{}, err
	}
	if account.Status != model.AccountStatusActive {
		return FundResult{}, apierrors.NewConflict("account is not active")
	}

	cents, err := money.ParseDollars(amountDollars)
	if err != nil {
		return FundResult{}, apierrors.NewValidation(map[string]string{
			"amount": "must be a decimal dollar amount",
		})
	}
	if cents <= 0 {
		return FundResult{}, apierrors.NewValidation(map[string]string{
			"amount": "must be greater than zero",
		})
	}

	if fieldErrs := validateFundingSource(source); fieldErrs != nil {
		return FundResult{}, apierrors.NewValidation(fieldErrs)
	}

	txn, newBalance, err := s.ledger.Fund(ctx, account.ID, model.Transaction{
		AccountID:   account.ID,
		Type:        model.TransactionTypeDeposit,
		AmountCents: cents,
		Description: fmt.Sprintf("deposit via %s", source.Kind),
		Status:      model.TransactionStatusCompleted,
	})
	if err != nil {
		s.logger.Error("Account service: failed to fund account",
			"account_id", account.ID,
			"error", err.Error())
		return FundResult{}, apierrors.NewInternal(err)
	}

	s.logger.Info("Account service: account funded",
		"account_id", account.ID,
		"amount_cents", cents,
		"balance_cents", newBalance)

	return FundResult{Transaction: txn, NewBalanceCents: newBalance}, nil
}

// GetTransactions returns the account's transactions newest first.
func (s *Account) GetTransactions(ctx context.Context, accountID, callerUserID int64) ([]TransactionView, error) {
	account, err := s.ownedAccount(ctx, accountID, callerUserID)
	if err != nil {
		return nil, err
	}

	txns, err := s.ledger.ListTransactions(ctx, account.ID)
	if err != nil {
		s.logger.Error("Account service: failed to list transactions",
			"account_id", account.ID,
			"error", err.Error())
		return nil, apierrors.NewInternal(err)
	}

	views := make([]TransactionView, 0, len(txns))
	for _, txn := range txns {
		views = append(views, TransactionView{Transaction: txn, AccountType: account.Type})
	}
	return views, nil
}

// ownedAccount fetches the account and checks ownership. An account owned
// by someone else is reported as not found, not as forbidden.
func (s *Account) ownedAccount(ctx context.Context, accountID, callerUserID int64) (model.Account, error) {
	account, err := s.ledger.GetAccount(ctx, accountID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, apierrors.NewNotFound("account not found")
	}
	if err != nil {
		s.logger.Error("Account service: failed to get account",
			"account_id", accountID,
			"error", err.Error())
		return model.Account{}, apierrors.NewInternal(err)
	}
	if account.UserID != callerUserID {
		return model.Account{}, apierrors.NewNotFound("account not found")
	}
	return account, nil
}

// generateAccountNumber draws a fixed-width number from a cryptographically
// secure source.
func generateAccountNumber() (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberDigits), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate account number: %w", err)
	}
	return fmt.Sprintf("%0*d", accountNumberDigits, n), nil
}
