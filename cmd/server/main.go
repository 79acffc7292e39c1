package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/victorsuarez3/hangovershield-sub001/internal"
	"github.com/victorsuarez3/hangovershield-sub001/internal/api"
	"github.com/victorsuarez3/hangovershield-sub001/internal/auth"
	"github.com/victorsuarez3/hangovershield-sub001/internal/billing"
	"github.com/victorsuarez3/hangovershield-sub001/internal/checkin"
	"github.com/victorsuarez3/hangovershield-sub001/internal/config"
	"github.com/victorsuarez3/hangovershield-sub001/internal/notify"
	"github.com/victorsuarez3/hangovershield-sub001/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := internal.NewLogger(cfg.Env, cfg.LogLevel)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	remoteCheckins, subs, err := storage.NewRemoteRepositories(cfg, logger)
	if err != nil {
		logger.Errorf("failed to init storage backend %q: %v", cfg.RemoteBackend, err)
		os.Exit(1)
	}

	local, err := checkin.NewLocalCache(cfg.CheckinsFile, logger)
	if err != nil {
		logger.Errorf("failed to init local cache at %s: %v", cfg.CheckinsFile, err)
		os.Exit(1)
	}

	store := checkin.NewStore(local, remoteCheckins, notify.NewLogScheduler(logger), logger)

	var stripeClient *billing.StripeClient
	if cfg.StripeSecretKey != "" {
		stripeClient = billing.NewStripeClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.StripePriceID)
	} else {
		logger.Warnf("stripe is not configured; checkout and webhooks disabled")
	}
	billingSvc := billing.NewService(stripeClient, subs, logger)

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewJWTAuthProvider(cfg.JWTSecret, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	app := api.NewApplication(cfg, logger, store, billingSvc)
	router := api.NewRouter(app, cfg, provider)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Infof("server listening on %s (env=%s, remote=%s)", cfg.HTTPAddr, cfg.Env, cfg.RemoteBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}

	// Flush the debounced local cache before exit; in-memory progress is
	// otherwise lost.
	if err := store.Close(); err != nil {
		logger.Errorf("failed to flush local cache: %v", err)
	}
	logger.Infof("bye")
}
