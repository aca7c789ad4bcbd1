package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ledgerhouse/minibank-server/internal/model"
)

var _ model.LedgerStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, user_id, account_number, account_type, balance_cents, status, created_at, updated_at`

func scanAccount(row pgx.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.UserID, &a.AccountNumber, &a.Type, &a.BalanceCents,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *AccountRepository) CreateAccount(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (user_id, account_number, account_type, balance_cents, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + accountColumns

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		account.UserID, account.AccountNumber, account.Type, account.BalanceCents, account.Status,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "accounts_account_number_key" {
				return model.Account{}, model.ErrDuplicateAccountNumber
			}
			return model.Account{}, model.ErrDuplicate
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) GetAccount(ctx context.Context, id int64) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) GetAccountsForUser(ctx context.Context, userID int64) ([]model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) HasAccountOfType(ctx context.Context, userID int64, accountType model.AccountType) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE user_id = $1 AND account_type = $2)`,
		userID, accountType,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account type: %w", err)
	}
	return exists, nil
}

// Fund adds the transaction amount to the account balance and appends the
// transaction row in one database transaction. The balance update runs
// first: its row lock serializes concurrent deposits on the same account,
// and the RETURNING value is the authoritative post-write balance.
func (r *AccountRepository) Fund(ctx context.Context, accountID int64, txn model.Transaction) (model.Transaction, int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Transaction{}, 0, fmt.Errorf("failed to begin funding transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var newBalance int64
	err = tx.QueryRow(ctx,
		`UPDATE accounts SET balance_cents = balance_cents + $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING balance_cents`,
		txn.AmountCents, accountID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Transaction{}, 0, model.ErrNotFound
		}
		return model.Transaction{}, 0, fmt.Errorf("failed to update balance: %w", err)
	}

	const insert = `
        INSERT INTO transactions (account_id, type, amount_cents, description, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, account_id, type, amount_cents, description, status, created_at, processed_at
    `
	var saved model.Transaction
	err = tx.QueryRow(ctx, insert,
		accountID, txn.Type, txn.AmountCents, txn.Description, txn.Status,
	).Scan(&saved.ID, &saved.AccountID, &saved.Type, &saved.AmountCents,
		&saved.Description, &saved.Status, &saved.CreatedAt, &saved.ProcessedAt)
	if err != nil {
		return model.Transaction{}, 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Transaction{}, 0, fmt.Errorf("failed to commit funding transaction: %w", err)
	}

	return saved, newBalance, nil
}

func (r *AccountRepository) ListTransactions(ctx context.Context, accountID int64) ([]model.Transaction, error) {
	const query = `
        SELECT id, account_id, type, amount_cents, description, status, created_at, processed_at
        FROM transactions WHERE account_id = $1
        ORDER BY created_at DESC, id DESC
    `
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Type, &t.AmountCents,
			&t.Description, &t.Status, &t.CreatedAt, &t.ProcessedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}
