package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ricirt/dingtalk-alert/internal/api"
	"github.com/ricirt/dingtalk-alert/internal/config"
	"github.com/ricirt/dingtalk-alert/internal/dingtalk"
	"github.com/ricirt/dingtalk-alert/internal/metrics"
	"github.com/ricirt/dingtalk-alert/internal/provider"
	"github.com/ricirt/dingtalk-alert/internal/service"
)

func main() {
	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		bootLogger, _ := zap.NewProduction()
		bootLogger.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for the DingTalk webhook")
	}

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	prov := provider.NewWebhookProvider(provider.Options{
		ConnectTimeout:     cfg.ConnectTimeout,
		RequestTimeout:     cfg.RequestTimeout,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	})
	client := dingtalk.NewClient(dingtalk.Config{
		BaseURL:    cfg.BaseURL,
		Token:      cfg.Token,
		TraceDepth: cfg.TraceDepth,
	}, prov, logger.Named("dingtalk"), m.Hooks())
	svc := service.NewAlertService(client, logger)

	// ---- HTTP server ----
	router := api.NewRouter(svc, reg, logger, cfg.AlertOnPanic)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start server in a goroutine so it does not block the shutdown listener.
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")

	// In-flight relays finish their webhook round trip before we exit.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped cleanly")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}
