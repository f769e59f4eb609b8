/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll calculation server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Build the zap logger
  3. Load the fiscal configuration (YAML file or built-in 2025 defaults)
  4. Create API handler and router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: $PORT or 8080)
  -config  Fiscal configuration YAML (default: $PAYROLL_CONFIG, built-in if empty)
  -dev     Human-readable development logging

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Flush the logger
  4. Exit

EXAMPLES:
  # Built-in 2025 constants
  ./server

  # Next fiscal year
  ./server -config=./config/fiscal-2026.yaml

  # Run on different port with debug logs
  LOG_LEVEL=debug ./server -port=3000 -dev

ENVIRONMENT:
  PORT, PAYROLL_CONFIG, LOG_LEVEL (debug, info, warn, error).
  A .env file in the working directory is loaded first.

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - factory/fiscal.go: Fiscal configuration documents
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	_ = godotenv.Load()

	// Flags
	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	configPath := flag.String("config", os.Getenv("PAYROLL_CONFIG"), "fiscal configuration YAML (built-in 2025 values if empty)")
	dev := flag.Bool("dev", false, "development logging")
	flag.Parse()

	logger, err := newLogger(*dev, os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := payroll.DefaultConfig()
	if *configPath != "" {
		cfg, err = factory.LoadFiscalConfig(*configPath)
		if err != nil {
			logger.Fatal("failed to load fiscal configuration", zap.String("path", *configPath), zap.Error(err))
		}
	}
	logger.Info("fiscal configuration loaded",
		zap.Int("fiscal_year", cfg.FiscalYear),
		zap.String("tax_unit", cfg.TaxUnit.String()),
		zap.String("source", sourceName(*configPath)),
	)

	handler := api.NewHandler(cfg, logger)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server stopped")
}

func newLogger(dev bool, level string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if dev {
		zc = zap.NewDevelopmentConfig()
	}
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zc.Build()
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func sourceName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
