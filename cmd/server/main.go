package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/tripmoa/tripledger/internal/auth"
	"github.com/tripmoa/tripledger/internal/config"
	"github.com/tripmoa/tripledger/internal/ledger"
	"github.com/tripmoa/tripledger/internal/server"
	"github.com/tripmoa/tripledger/internal/service"
	"github.com/tripmoa/tripledger/internal/storage/sqlite"
	"github.com/tripmoa/tripledger/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	roster := cfg.Roster()
	slog.Info("Configuration loaded", "roster", roster, "budget", cfg.TripBudget)

	store, err := sqlite.New(cfg.DBPath, roster)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	ledgerStore := ledger.NewStore(roster, store)
	if err := ledgerStore.LoadInitial(context.Background()); err != nil {
		slog.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}
	slog.Info("Ledger loaded", "entries", len(ledgerStore.List()))

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	srv := server.New(
		service.NewLedgerService(ledgerStore, cfg.TripBudget),
		service.NewAuthService(authenticator, jwtManager),
		jwtManager,
	)

	// h2c serves HTTP/2 without TLS for clients that want it.
	handler := h2c.NewHandler(srv.Router(), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
