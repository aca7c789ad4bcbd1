package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerhouse/minibank-server/internal/api/http/middleware"
	"github.com/ledgerhouse/minibank-server/internal/apierrors"
	"github.com/ledgerhouse/minibank-server/internal/model"
	"github.com/ledgerhouse/minibank-server/internal/service"
	"github.com/ledgerhouse/minibank-server/internal/testutil"
)

type accountServiceMock struct {
	mock.Mock
}

func (m *accountServiceMock) CreateAccount(ctx context.Context, userID int64, accountType string) (model.Account, error) {
	args := m.Called(ctx, userID, accountType)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *accountServiceMock) GetAccounts(ctx context.Context, userID int64) ([]model.Account, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *accountServiceMock) Fund(ctx context.Context, accountID, callerUserID int64, amountDollars string, source model.FundingSource) (service.FundResult, error) {
	args := m.Called(ctx, accountID, callerUserID, amountDollars, source)
	return args.Get(0).(service.FundResult), args.Error(1)
}

func (m *accountServiceMock) GetTransactions(ctx context.Context, accountID, callerUserID int64) ([]service.TransactionView, error) {
	args := m.Called(ctx, accountID, callerUserID)
	return args.Get(0).([]service.TransactionView), args.Error(1)
}

func authenticatedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	identity := testIdentity()
	return req.WithContext(middleware.WithIdentity(req.Context(), &identity))
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("CreateAccount", mock.Anything, int64(1), "checking").Return(model.Account{
		ID:            10,
		AccountNumber: "123456789012",
		Type:          model.AccountTypeChecking,
		BalanceCents:  0,
		Status:        model.AccountStatusActive,
		CreatedAt:     time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}, nil)

	h := NewAccount(svc, testutil.MakeNoopLogger())

	req := authenticatedRequest(http.MethodPost, "/rpc/account.createAccount",
		`{"accountType":"checking"}`)
	rr := httptest.NewRecorder()
	h.CreateAccount(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp accountPayload
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "checking", resp.AccountType)
	assert.Equal(t, "0.00", resp.Balance)
	assert.Equal(t, "active", resp.Status)
}

func TestAccountHandler_CreateAccount_DuplicateType(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("CreateAccount", mock.Anything, int64(1), "savings").
		Return(model.Account{}, apierrors.NewConflict("user already has a savings account"))

	h := NewAccount(svc, testutil.MakeNoopLogger())

	req := authenticatedRequest(http.MethodPost, "/rpc/account.createAccount",
		`{"accountType":"savings"}`)
	rr := httptest.NewRecorder()
	h.CreateAccount(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "conflict", resp.Error.Code)
}

func TestAccountHandler_GetAccounts(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("GetAccounts", mock.Anything, int64(1)).Return([]model.Account{
		{ID: 10, Type: model.AccountTypeChecking, BalanceCents: 150050, Status: model.AccountStatusActive},
		{ID: 11, Type: model.AccountTypeSavings, BalanceCents: 5, Status: model.AccountStatusActive},
	}, nil)

	h := NewAccount(svc, testutil.MakeNoopLogger())

	req := authenticatedRequest(http.MethodGet, "/rpc/account.getAccounts", "")
	rr := httptest.NewRecorder()
	h.GetAccounts(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp accountsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Accounts, 2)
	assert.Equal(t, "1500.50", resp.Accounts[0].Balance)
	assert.Equal(t, "0.05", resp.Accounts[1].Balance)
}

func TestAccountHandler_FundAccount_StringAmount(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("Fund", mock.Anything, int64(10), int64(1), "10.50", model.FundingSource{
		Kind:       model.FundingKindCard,
		CardNumber: "4242424242424242",
	}).Return(service.FundResult{
		Transaction: model.Transaction{
			ID: 5, AccountID: 10, Type: model.TransactionTypeDeposit,
			AmountCents: 1050, Status: model.TransactionStatusCompleted,
		},
		NewBalanceCents: 1050,
	}, nil)

	h := NewAccount(svc, testutil.MakeNoopLogger())

	body := `{"accountId":10,"amount":"10.50","fundingSource":{"type":"card","cardNumber":"4242424242424242"}}`
	req := authenticatedRequest(http.MethodPost, "/rpc/account.fundAccount", body)
	rr := httptest.NewRecorder()
	h.FundAccount(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp fundResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "10.50", resp.Transaction.Amount)
	assert.Equal(t, "10.50", resp.NewBalance)
}

func TestAccountHandler_FundAccount_NumericAmount(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("Fund", mock.Anything, int64(10), int64(1), "10.5", mock.Anything).
		Return(service.FundResult{
			Transaction:     model.Transaction{ID: 5, AccountID: 10, AmountCents: 1050},
			NewBalanceCents: 1050,
		}, nil)

	h := NewAccount(svc, testutil.MakeNoopLogger())

	// bare JSON number instead of a string
	body := `{"accountId":10,"amount":10.5,"fundingSource":{"type":"card","cardNumber":"4242424242424242"}}`
	req := authenticatedRequest(http.MethodPost, "/rpc/account.fundAccount", body)
	rr := httptest.NewRecorder()
	h.FundAccount(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestAccountHandler_FundAccount_NotOwned(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("Fund", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(service.FundResult{}, apierrors.NewNotFound("account not found"))

	h := NewAccount(svc, testutil.MakeNoopLogger())

	body := `{"accountId":99,"amount":"10.50","fundingSource":{"type":"card","cardNumber":"4242424242424242"}}`
	req := authenticatedRequest(http.MethodPost, "/rpc/account.fundAccount", body)
	rr := httptest.NewRecorder()
	h.FundAccount(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Error.Code)
}

func TestAccountHandler_GetTransactions(t *testing.T) {
	svc := &accountServiceMock{}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.On("GetTransactions", mock.Anything, int64(10), int64(1)).
		Return([]service.TransactionView{
			{
				Transaction: model.Transaction{
					ID: 2, AccountID: 10, Type: model.TransactionTypeDeposit,
					AmountCents: 2000, CreatedAt: now, ProcessedAt: now,
				},
				AccountType: model.AccountTypeChecking,
			},
			{
				Transaction: model.Transaction{
					ID: 1, AccountID: 10, Type: model.TransactionTypeDeposit,
					AmountCents: 1000, CreatedAt: now.Add(-time.Hour), ProcessedAt: now.Add(-time.Hour),
				},
				AccountType: model.AccountTypeChecking,
			},
		}, nil)

	h := NewAccount(svc, testutil.MakeNoopLogger())

	req := authenticatedRequest(http.MethodPost, "/rpc/account.getTransactions",
		`{"accountId":10}`)
	rr := httptest.NewRecorder()
	h.GetTransactions(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp transactionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Transactions, 2)
	assert.Equal(t, int64(2), resp.Transactions[0].ID)
	assert.Equal(t, "20.00", resp.Transactions[0].Amount)
	assert.Equal(t, "checking", resp.Transactions[0].AccountType)
	assert.Equal(t, int64(1), resp.Transactions[1].ID)
}
