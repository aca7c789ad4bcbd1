package router

import (
	"net/http"

	"github.com/ledgerhouse/minibank-server/internal/api/http/handler"
	"github.com/ledgerhouse/minibank-server/internal/api/http/middleware"
	"github.com/ledgerhouse/minibank-server/internal/logger"
)

// Router wires the RPC routes and middleware chain.
type Router struct {
	authService    handler.AuthService
	accountService handler.AccountService
	resolver       middleware.IdentityResolver
	logger         *logger.Logger
}

func New(
	authService handler.AuthService,
	accountService handler.AccountService,
	resolver middleware.IdentityResolver,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		accountService: accountService,
		resolver:       resolver,
		logger:         logger,
	}
}

// Register builds the HTTP handler: logging and identity resolution around
// every route, plus an auth guard on the account routes.
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.authService, r.logger)
	accountHandler := handler.NewAccount(r.accountService, r.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /rpc/auth.signup", authHandler.Signup)
	mux.HandleFunc("POST /rpc/auth.login", authHandler.Login)
	mux.HandleFunc("POST /rpc/auth.logout", authHandler.Logout)
	mux.HandleFunc("GET /rpc/auth.me", authHandler.Me)

	mux.Handle("POST /rpc/account.createAccount", middleware.RequireAuth(http.HandlerFunc(accountHandler.CreateAccount)))
	mux.Handle("GET /rpc/account.getAccounts", middleware.RequireAuth(http.HandlerFunc(accountHandler.GetAccounts)))
	mux.Handle("POST /rpc/account.fundAccount", middleware.RequireAuth(http.HandlerFunc(accountHandler.FundAccount)))
	mux.Handle("POST /rpc/account.getTransactions", middleware.RequireAuth(http.HandlerFunc(accountHandler.GetTransactions)))

	logging := middleware.NewLogging(r.logger)
	identity := middleware.NewIdentity(r.resolver, r.logger)

	return logging.Wrap(identity.Wrap(mux))
}
