package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"Armature/internal/calc/materials"
	"Armature/internal/core"
	"Armature/internal/version"
)

var wg sync.WaitGroup

func loadDefaults(cfg *core.Config) (materials.Defaults, error) {
	if cfg.DefaultsFile == "" {
		return materials.Standard(), nil
	}
	return materials.LoadFile(cfg.DefaultsFile)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := core.LoadConfig()
	if err != nil {
		core.NewLogger("info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := core.NewLogger(cfg.LogLevel)

	defaults, err := loadDefaults(cfg)
	if err != nil {
		logger.Error("failed to load defaults", "file", cfg.DefaultsFile, "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: NewRouter(cfg, defaults, logger),
	}

	logger.Info("starting server",
		"addr", server.Addr,
		"version", version.Version,
		"tls", cfg.TLSEnabled(),
		"auth", cfg.TokenKey != "",
		"defaults_file", cfg.DefaultsFile,
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	wg.Wait()
	logger.Info("server stopped")
}
