//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ledgerhouse/minibank-server/internal/model"
	repo "github.com/ledgerhouse/minibank-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "minibank_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/minibank_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(t *testing.T, ur *repo.UserRepository) model.User {
	t.Helper()
	saved, err := ur.Create(context.Background(), model.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefake",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Phone:        "+12025550100",
		Region:       "US",
		DateOfBirth:  time.Date(1990, 12, 10, 0, 0, 0, 0, time.UTC),
		EncryptedSSN: "ciphertext",
	})
	require.NoError(t, err)
	return saved
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := newUser(t, ur)
	require.NotZero(t, u.ID)

	byEmail, err := ur.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)

	_, err = ur.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = ur.Create(ctx, model.User{
		Email:        u.Email,
		PasswordHash: "x",
		FirstName:    "Dup",
		LastName:     "Licate",
		Phone:        "+12025550101",
		Region:       "US",
		DateOfBirth:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		EncryptedSSN: "ciphertext",
	})
	require.ErrorIs(t, err, model.ErrDuplicate)
}

func TestSessionRepository_SingleLiveSession(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	sr := repo.NewSessionRepository(conn)
	u := newUser(t, ur)

	for i := 0; i < 3; i++ {
		err := sr.Create(ctx, model.Session{
			Token:     uuid.NewString(),
			UserID:    u.ID,
			ExpiresAt: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		sessions, err := sr.ListForUser(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, sessions, 1, "each issuance must revoke the prior session")
	}

	sessions, err := sr.ListForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	live := sessions[0]

	found, err := sr.FindByToken(ctx, live.Token)
	require.NoError(t, err)
	require.Equal(t, u.ID, found.UserID)

	deleted, err := sr.DeleteByToken(ctx, live.Token)
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	deleted, err = sr.DeleteByToken(ctx, live.Token)
	require.NoError(t, err)
	require.Zero(t, deleted)

	_, err = sr.FindByToken(ctx, live.Token)
	require.ErrorIs(t, err, model.ErrNotFound)

	err = sr.Create(ctx, model.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	deleted, err = sr.DeleteAllForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	sessions, err = sr.ListForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, sessions)
}

func TestAccountRepository_Constraints(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	ar := repo.NewAccountRepository(conn)
	u := newUser(t, ur)

	first, err := ar.CreateAccount(ctx, model.Account{
		UserID:        u.ID,
		AccountNumber: uuid.NewString()[:12],
		Type:          model.AccountTypeChecking,
		Status:        model.AccountStatusActive,
	})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	_, err = ar.CreateAccount(ctx, model.Account{
		UserID:        u.ID,
		AccountNumber: first.AccountNumber,
		Type:          model.AccountTypeSavings,
		Status:        model.AccountStatusActive,
	})
	require.ErrorIs(t, err, model.ErrDuplicateAccountNumber)

	_, err = ar.CreateAccount(ctx, model.Account{
		UserID:        u.ID,
		AccountNumber: uuid.NewString()[:12],
		Type:          model.AccountTypeChecking,
		Status:        model.AccountStatusActive,
	})
	require.ErrorIs(t, err, model.ErrDuplicate)

	exists, err := ar.HasAccountOfType(ctx, u.ID, model.AccountTypeChecking)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = ar.HasAccountOfType(ctx, u.ID, model.AccountTypeSavings)
	require.NoError(t, err)
	require.False(t, exists)

	_, err = ar.GetAccount(ctx, first.ID+100000)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestAccountRepository_FundIsAtomicAndCumulative(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	ar := repo.NewAccountRepository(conn)
	u := newUser(t, ur)

	account, err := ar.CreateAccount(ctx, model.Account{
		UserID:        u.ID,
		AccountNumber: uuid.NewString()[:12],
		Type:          model.AccountTypeChecking,
		Status:        model.AccountStatusActive,
	})
	require.NoError(t, err)

	const deposits = 5
	const amount = int64(1050)
	for i := 0; i < deposits; i++ {
		txn, balance, err := ar.Fund(ctx, account.ID, model.Transaction{
			AccountID:   account.ID,
			Type:        model.TransactionTypeDeposit,
			AmountCents: amount,
			Description: "deposit via card",
			Status:      model.TransactionStatusCompleted,
		})
		require.NoError(t, err)
		require.Equal(t, amount, txn.AmountCents)
		require.Equal(t, amount*int64(i+1), balance)
	}

	reloaded, err := ar.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, amount*deposits, reloaded.BalanceCents)

	txns, err := ar.ListTransactions(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, txns, deposits)
	for i := 1; i < len(txns); i++ {
		prev, cur := txns[i-1], txns[i]
		newerFirst := prev.CreatedAt.After(cur.CreatedAt) ||
			(prev.CreatedAt.Equal(cur.CreatedAt) && prev.ID > cur.ID)
		require.True(t, newerFirst, "transactions must come back newest first")
	}

	_, _, err = ar.Fund(ctx, account.ID+100000, model.Transaction{
		Type:        model.TransactionTypeDeposit,
		AmountCents: 100,
		Status:      model.TransactionStatusCompleted,
	})
	require.ErrorIs(t, err, model.ErrNotFound)
}
