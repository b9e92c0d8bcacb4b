// Package main initializes and starts the BlitzWare dev backend,
// setting up configuration, logging, the in-memory store, token
// issuing, and the HTTP router.
package main

import (
	"cmp"
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/LanderDK/blitzware-client/internal/config"
	"github.com/LanderDK/blitzware-client/internal/devserver"
	"github.com/LanderDK/blitzware-client/internal/logger"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Addr

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	// Signing secret is regenerated per run; dev tokens do not survive
	// a restart.
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		zapLogger.Fatal("cannot generate signing secret", zap.Error(err))
	}
	tokens := devserver.NewTokenIssuer(secret, 24*time.Hour)

	// Seed the fixture account developers log in with.
	store := devserver.NewStore()
	accountID := store.SeedAccount("dev", "dev", "dev@blitzware.local", []string{"admin", "beta"})
	zapLogger.Info("seeded dev account",
		zap.String("id", accountID),
		zap.String("username", "dev"),
	)

	// Prune login/audit noise hourly; keep 30 days.
	devserver.StartLogRetention(context.Background(), store,
		time.Hour,
		30*24*time.Hour,
		zapLogger,
	)

	handler := &devserver.Handler{Store: store, Tokens: tokens}
	router := devserver.NewRouter(handler, zapLogger)

	zapLogger.Info("dev server listening", zap.String("addr", addr))
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
