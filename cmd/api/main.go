package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetledger/internal/config"
	"assetledger/internal/database"
	"assetledger/internal/logger"
	"assetledger/internal/router"
	"assetledger/internal/session"
	"assetledger/internal/storage"
	"assetledger/internal/validator"
)

// @title           AssetLedger API
// @version         1.0
// @description     AssetLedger tracks personal financial assets, their documents and an append-only activity history.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token. The assetledger_session cookie is accepted as well.

const shutdownTimeout = 15 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.InitSentry(cfg.SentryDSN, cfg.Env); err != nil {
		log.Warnf("Sentry disabled: %v", err)
	}

	// Database
	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Document storage
	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}

	// Session revocation
	var revoker session.Revoker = session.NoopRevoker{}
	if cfg.RedisURL != "" {
		redisRevoker, err := session.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisRevoker.Close()
		revoker = redisRevoker
	} else {
		log.Warn("REDIS_URL not set; logout will not revoke issued tokens")
	}

	validator.Register()

	engine, err := router.New(router.Deps{
		DB:              dbManager.DB(),
		Store:           store,
		Revoker:         revoker,
		JWTSecret:       cfg.JWTSecret,
		SessionTTL:      cfg.JWTExpirationDur,
		SecureCookie:    cfg.SessionCookieSecure,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		DisplayCurrency: cfg.DisplayCurrency,
		TrustedProxies:  cfg.TrustedProxies,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting AssetLedger server on port %s", cfg.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
