package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oxhq/langserved/internal/audit"
	"github.com/oxhq/langserved/internal/bootstrap"
	"github.com/oxhq/langserved/internal/config"
	"github.com/oxhq/langserved/internal/dispatch"
	"github.com/oxhq/langserved/internal/httpapi"
	"github.com/oxhq/langserved/internal/logging"
	"github.com/oxhq/langserved/internal/registries"
	"github.com/oxhq/langserved/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language-processing HTTP service",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	set := registries.New(cfg.QueueSize, logger)

	logger.Info("bootstrap: scanning data directory", zap.String("data_root", cfg.DataRoot))
	if err := bootstrap.Run(cfg.DataRoot, set, logger); err != nil {
		return fmt.Errorf("bootstrap: unreadable data root: %w", err)
	}

	var auditLog *audit.Log
	if cfg.Audit.Enabled {
		auditLog, err = audit.Open(cfg.Audit.Path, logger)
		if err != nil {
			return fmt.Errorf("open audit log: %w", err)
		}
		defer auditLog.Close()
	}

	w, err := watcher.New(cfg.DataRoot, set, time.Duration(cfg.WatcherDebounceMS)*time.Millisecond, logger)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	go w.Run()
	defer w.Close()

	d := dispatch.New(set)
	server := httpapi.New(d, auditLog, logger)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", zap.String("addr", cfg.ListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
