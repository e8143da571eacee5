package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/networth/internal/account"
	accountStore "github.com/MrJamesThe3rd/networth/internal/account/store"
	"github.com/MrJamesThe3rd/networth/internal/category"
	categoryStore "github.com/MrJamesThe3rd/networth/internal/category/store"
	"github.com/MrJamesThe3rd/networth/internal/config"
	"github.com/MrJamesThe3rd/networth/internal/dashboard"
	dashboardStore "github.com/MrJamesThe3rd/networth/internal/dashboard/store"
	"github.com/MrJamesThe3rd/networth/internal/database"
	networthHttp "github.com/MrJamesThe3rd/networth/internal/http"
	accountHandler "github.com/MrJamesThe3rd/networth/internal/http/account"
	categoryHandler "github.com/MrJamesThe3rd/networth/internal/http/category"
	dashboardHandler "github.com/MrJamesThe3rd/networth/internal/http/dashboard"
	importHandler "github.com/MrJamesThe3rd/networth/internal/http/importcsv"
	ruleHandler "github.com/MrJamesThe3rd/networth/internal/http/rule"
	settingHandler "github.com/MrJamesThe3rd/networth/internal/http/setting"
	txHandler "github.com/MrJamesThe3rd/networth/internal/http/transaction"
	"github.com/MrJamesThe3rd/networth/internal/importer"
	"github.com/MrJamesThe3rd/networth/internal/rule"
	ruleStore "github.com/MrJamesThe3rd/networth/internal/rule/store"
	"github.com/MrJamesThe3rd/networth/internal/setting"
	settingStore "github.com/MrJamesThe3rd/networth/internal/setting/store"
	"github.com/MrJamesThe3rd/networth/internal/transaction"
	txStore "github.com/MrJamesThe3rd/networth/internal/transaction/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if strings.EqualFold(cfg.App.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler).With("app", cfg.App.Name)
}

func run(cfg *config.Config) error {
	if cfg.DB.Migrate {
		if err := database.Migrate(cfg.ConnectionString()); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	db, err := database.New(cfg.ConnectionString(), database.Options{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	var (
		accountService     = account.NewService(accountStore.New(db))
		categoryService    = category.NewService(categoryStore.New(db))
		transactionService = transaction.NewService(txStore.New(db))
		settingService     = setting.NewService(settingStore.New(db), cfg.App.DefaultCurrency)
		dashboardService   = dashboard.NewService(dashboardStore.New(db), settingService)
		ruleService        = rule.NewService(ruleStore.New(db))
		importService      = importer.NewService(ruleService)
	)

	router := networthHttp.New(
		networthHttp.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Timeout:        cfg.Server.Timeout,
		},
		networthHttp.Handlers{
			Accounts:     accountHandler.NewHandler(accountService, transactionService),
			Categories:   categoryHandler.NewHandler(categoryService),
			Transactions: txHandler.NewHandler(transactionService),
			Settings:     settingHandler.NewHandler(settingService),
			Dashboard:    dashboardHandler.NewHandler(dashboardService),
			Import:       importHandler.NewHandler(importService, transactionService),
			Rules:        ruleHandler.NewHandler(ruleService),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}
