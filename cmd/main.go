package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpServer "github.com/ledgerhouse/minibank-server/internal/api/http/server"

	"github.com/ledgerhouse/minibank-server/internal/api/http/router"
	"github.com/ledgerhouse/minibank-server/internal/config"
	"github.com/ledgerhouse/minibank-server/internal/logger"
	"github.com/ledgerhouse/minibank-server/internal/model"
	"github.com/ledgerhouse/minibank-server/internal/repository/postgres"
	"github.com/ledgerhouse/minibank-server/internal/security"
	"github.com/ledgerhouse/minibank-server/internal/server"
	"github.com/ledgerhouse/minibank-server/internal/service"
	"github.com/ledgerhouse/minibank-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	accountRepo := postgres.NewAccountRepository(db)

	codec := token.NewJWT(cfg.Session.Secret, cfg.Session.TTL)
	hasher := security.NewBcryptHasher(0)
	encryptor, err := security.NewAESEncryptor(cfg.PII.Key)
	if err != nil {
		logger.Fatal("failed to initialize PII encryptor", "error", err)
	}

	authService := service.NewAuth(userRepo, sessionRepo, codec, hasher, encryptor, cfg.Session.TTL, logger)
	accountService := service.NewAccount(accountRepo, logger)
	resolver := service.NewResolver(sessionRepo, userRepo, codec, logger)

	r := router.New(authService, accountService, resolver, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
