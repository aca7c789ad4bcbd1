package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ledgerhouse/minibank-server/internal/api/http/middleware"
	"github.com/ledgerhouse/minibank-server/internal/logger"
	"github.com/ledgerhouse/minibank-server/internal/model"
	"github.com/ledgerhouse/minibank-server/internal/money"
	"github.com/ledgerhouse/minibank-server/internal/service"
)

// AccountService defines the account and ledger operations.
type AccountService interface {
	CreateAccount(ctx context.Context, userID int64, accountType string) (model.Account, error)
	GetAccounts(ctx context.Context, userID int64) ([]model.Account, error)
	Fund(ctx context.Context, accountID, callerUserID int64, amountDollars string, source model.FundingSource) (service.FundResult, error)
	GetTransactions(ctx context.Context, accountID, callerUserID int64) ([]service.TransactionView, error)
}

// Account handles the account.* RPC endpoints. All routes require an
// authenticated caller; the router enforces that.
type Account struct {
	accountService AccountService
	logger         *logger.Logger
}

func NewAccount(accountService AccountService, logger *logger.Logger) *Account {
	return &Account{accountService: accountService, logger: logger}
}

type createAccountRequest struct {
	AccountType string `json:"accountType"`
}

type fundingSourcePayload struct {
	Type          string `json:"type"`
	CardNumber    string `json:"cardNumber,omitempty"`
	RoutingNumber string `json:"routingNumber,omitempty"`
}

type fundAccountRequest struct {
	AccountID     int64                `json:"accountId"`
	Amount        decimalAmount        `json:"amount"`
	FundingSource fundingSourcePayload `json:"fundingSource"`
}

type transactionsRequest struct {
	AccountID int64 `json:"accountId"`
}

type accountPayload struct {
	ID            int64  `json:"id"`
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	Balance       string `json:"balance"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

type transactionPayload struct {
	ID          int64  `json:"id"`
	AccountID   int64  `json:"accountId"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Status      string `json:"status"`
	AccountType string `json:"accountType,omitempty"`
	CreatedAt   string `json:"createdAt"`
	ProcessedAt string `json:"processedAt"`
}

type accountsResponse struct {
	Accounts []accountPayload `json:"accounts"`
}

type fundResponse struct {
	Transaction transactionPayload `json:"transaction"`
	NewBalance  string             `json:"newBalance"`
}

type transactionsResponse struct {
	Transactions []transactionPayload `json:"transactions"`
}

func toAccountPayload(a model.Account) accountPayload {
	return accountPayload{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		AccountType:   string(a.Type),
		Balance:       money.FormatCents(a.BalanceCents),
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionPayload(t model.Transaction, accountType model.AccountType) transactionPayload {
	return transactionPayload{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Type:        string(t.Type),
		Amount:      money.FormatCents(t.AmountCents),
		Description: t.Description,
		Status:      string(t.Status),
		AccountType: string(accountType),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		ProcessedAt: t.ProcessedAt.Format(time.RFC3339),
	}
}

// CreateAccount handles account.createAccount.
func (h *Account) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: responseError{
			Code: "validation_error", Message: "invalid JSON payload",
		}})
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	account, err := h.accountService.CreateAccount(r.Context(), identity.ID, req.AccountType)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountPayload(account))
}

// GetAccounts handles account.getAccounts.
func (h *Account) GetAccounts(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	accounts, err := h.accountService.GetAccounts(r.Context(), identity.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	payloads := make([]accountPayload, 0, len(accounts))
	for _, a := range accounts {
		payloads = append(payloads, toAccountPayload(a))
	}
	writeJSON(w, http.StatusOK, accountsResponse{Accounts: payloads})
}

// FundAccount handles account.fundAccount.
func (h *Account) FundAccount(w http.ResponseWriter, r *http.Request) {
	var req fundAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: responseError{
			Code: "validation_error", Message: "invalid JSON payload",
		}})
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	result, err := h.accountService.Fund(r.Context(), req.AccountID, identity.ID,
		string(req.Amount), model.FundingSource{
			Kind:          model.FundingKind(req.FundingSource.Type),
			CardNumber:    req.FundingSource.CardNumber,
			RoutingNumber: req.FundingSource.RoutingNumber,
		})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, fundResponse{
		Transaction: toTransactionPayload(result.Transaction, ""),
		NewBalance:  money.FormatCents(result.NewBalanceCents),
	})
}

// GetTransactions handles account.getTransactions.
func (h *Account) GetTransactions(w http.ResponseWriter, r *http.Request) {
	var req transactionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: responseError{
			Code: "validation_error", Message: "invalid JSON payload",
		}})
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	views, err := h.accountService.GetTransactions(r.Context(), req.AccountID, identity.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	payloads := make([]transactionPayload, 0, len(views))
	for _, v := range views {
		payloads = append(payloads, toTransactionPayload(v.Transaction, v.AccountType))
	}
	writeJSON(w, http.StatusOK, transactionsResponse{Transactions: payloads})
}
