// Package main provides the noteboard binary entry point. It loads
// configuration from an optional .env file and NOTEBOARD_-prefixed
// environment variables, opens the configured persistence backend, hydrates
// the board, starts the expiry janitor, and serves the HTTP API.
//
// The application flow:
//  1. Load .env (if present) and the environment configuration.
//  2. Ensure the data directory exists (file-backed modes).
//  3. Open the snapshot backend: sqlite, file, or redis.
//  4. Hydrate the board from the last snapshot.
//  5. Start the janitor and the HTTP server.
//
// It blocks until SIGINT/SIGTERM or a fatal server error, then shuts down
// the server gracefully and stops the janitor.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Tpepper2001/noteboard/internal/board"
	"github.com/Tpepper2001/noteboard/internal/config"
	"github.com/Tpepper2001/noteboard/internal/httpx"
	"github.com/Tpepper2001/noteboard/internal/janitor"
	"github.com/Tpepper2001/noteboard/internal/store"
	"github.com/Tpepper2001/noteboard/internal/store/filesystem"
	"github.com/Tpepper2001/noteboard/internal/store/rediskv"
	"github.com/Tpepper2001/noteboard/internal/store/sqlite"
)

// realClock implements board.Clock using time.Now.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

func loadConfig() *config.Config {
	// A missing .env is fine; the environment alone is a complete source.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("skipping .env", "err", err)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "err", err)
		os.Exit(2)
	}
	return cfg
}

func ensureDataDir(dir string) string {
	if st, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if mkErr := os.MkdirAll(dir, 0o700); mkErr != nil {
				slog.Error("failed to create data directory", "dir", dir, "err", mkErr)
				os.Exit(3)
			}
		} else {
			slog.Error("stat data directory", "dir", dir, "err", err)
			os.Exit(3)
		}
	} else if !st.IsDir() {
		slog.Error("data path not directory", "dir", dir)
		os.Exit(3)
	}
	return dir
}

// backend bundles a snapshot KV with its lifecycle hooks.
type backend struct {
	kv    store.KV
	ping  func(context.Context) error
	close func() error
}

func openBackend(cfg *config.Config) backend {
	switch cfg.Backend {
	case "sqlite":
		ensureDataDir(cfg.DataDir)
		kv, err := sqlite.Open(cfg.SQLitePath())
		if err != nil {
			slog.Error("open sqlite backend", "path", cfg.SQLitePath(), "err", err)
			os.Exit(4)
		}
		return backend{kv: kv, ping: kv.Ping, close: kv.Close}
	case "file":
		ensureDataDir(cfg.DataDir)
		kv, err := filesystem.New(cfg.DataDir)
		if err != nil {
			slog.Error("open file backend", "dir", cfg.DataDir, "err", err)
			os.Exit(4)
		}
		return backend{kv: kv, ping: kv.Ping, close: func() error { return nil }}
	case "redis":
		kv, err := rediskv.New(cfg.RedisURL, 5*time.Second)
		if err != nil {
			slog.Error("open redis backend", "err", err)
			os.Exit(4)
		}
		return backend{kv: kv, ping: kv.Ping, close: kv.Close}
	default:
		// config validation rejects anything else
		slog.Error("unknown backend", "backend", cfg.Backend)
		os.Exit(4)
		return backend{}
	}
}

func buildBoard(cfg *config.Config, kv store.KV, clock board.Clock) *board.Board {
	mode := board.ModeShared
	if cfg.Mode == "secure" {
		mode = board.ModeSecure
	}
	snaps := store.NewSnapshots(kv, store.SnapshotKey(cfg.Mode))
	return board.New(snaps, clock, board.Config{
		Mode:         mode,
		MinTTL:       cfg.MinTTL,
		MaxTTL:       cfg.MaxTTL,
		MaxTextBytes: cfg.MaxTextBytes,
	})
}

func buildHandler(cfg *config.Config, b *board.Board, clock board.Clock, ping func(context.Context) error) http.Handler {
	h := httpx.New(b, clock, b.Mode())
	h.BoardPassword = cfg.BoardPassword
	h.TTLOptions = cfg.TTLOptions
	h.MaxBody = int64(cfg.MaxTextBytes) + 1024 // text plus JSON envelope headroom
	h.Readiness = ping
	return h.Router()
}

func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{Addr: cfg.Addr, Handler: handler, ReadTimeout: 5 * time.Second, WriteTimeout: 10 * time.Second, IdleTimeout: 120 * time.Second}
}

func run() error {
	cfg := loadConfig()
	be := openBackend(cfg)
	defer func() {
		if err := be.close(); err != nil {
			slog.Warn("close backend", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := realClock{}
	b := buildBoard(cfg, be.kv, clock)
	b.Hydrate(ctx)
	slog.Info("board hydrated", "mode", cfg.Mode, "backend", cfg.Backend, "posts", b.Len())

	j := janitor.New(b, janitor.Config{Interval: cfg.JanitorInterval})
	j.Start(ctx)
	defer j.Stop()

	srv := newServer(cfg, buildHandler(cfg, b, clock, be.ping))
	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Addr, "pid", os.Getpid())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
