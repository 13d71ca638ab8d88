package database_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"lexview/pkg/database"
	"lexview/pkg/lifecycle"
)

func testConfig(t *testing.T) database.Config {
	t.Helper()
	cfg := database.Config{
		Path: filepath.Join(t.TempDir(), "test.db"),
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize config: %v", err)
	}
	return cfg
}

func TestNewReturnsSystem(t *testing.T) {
	cfg := testConfig(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sys, err := database.New(&cfg, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if sys == nil {
		t.Fatal("New() returned nil system")
	}

	conn := sys.Connection()
	if conn == nil {
		t.Fatal("Connection() returned nil")
	}

	conn.Close()
}

func TestNewLimitsToSingleConnection(t *testing.T) {
	cfg := testConfig(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sys, err := database.New(&cfg, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	conn := sys.Connection()
	defer conn.Close()

	stats := conn.Stats()
	if stats.MaxOpenConnections != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", stats.MaxOpenConnections)
	}
}

func TestStartLifecycle(t *testing.T) {
	cfg := testConfig(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sys, err := database.New(&cfg, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	lc.WaitForStartup()

	if err := sys.Connection().Ping(); err != nil {
		t.Fatalf("ping after startup: %v", err)
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if err := sys.Connection().Ping(); err == nil {
		t.Error("connection should be closed after shutdown")
	}
}
