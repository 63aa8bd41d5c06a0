package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/tasklist"
	"github.com/aretw0/tasklist/internal/config"
	"github.com/aretw0/tasklist/internal/logging"
	"github.com/aretw0/tasklist/pkg/adapters/file"
	"github.com/aretw0/tasklist/pkg/adapters/memory"
	"github.com/aretw0/tasklist/pkg/adapters/redis"
	"github.com/aretw0/tasklist/pkg/adapters/sqlite"
	"github.com/aretw0/tasklist/pkg/persistence/middleware"
	"github.com/aretw0/tasklist/pkg/ports"
)

// NewLogger creates the application logger at the configured level.
func NewLogger(cfg *config.Config) *slog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return logging.NewNop()
	}
	return logging.New(level)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore builds the configured backend wrapped in the logging and (when a key is
// configured) encryption middleware. The closer releases backend connections.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.SnapshotStore, io.Closer, error) {
	var (
		store  ports.SnapshotStore
		closer io.Closer = nopCloser{}
	)

	switch cfg.Backend {
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendFile:
		store = file.NewStore(cfg.File.Dir)
	case config.BackendRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		r := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := r.Ping(ctx); err != nil {
			r.Close()
			return nil, nil, err
		}
		store, closer = r, r
	case config.BackendSQLite:
		s, err := sqlite.New(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		store, closer = s, s
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	mws := []middleware.Middleware{middleware.NewLoggingMiddleware(logger)}
	enc, err := cfg.Encryption.Middleware()
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	if enc != nil {
		mws = append(mws, enc)
	}

	logger.Debug("Store ready", "backend", cfg.Backend, "encrypted", enc != nil)
	return middleware.Chain(store, mws...), closer, nil
}

// OpenSession opens the configured list on store.
func OpenSession(ctx context.Context, cfg *config.Config, store ports.SnapshotStore, logger *slog.Logger, opts ...tasklist.Option) (*tasklist.Session, error) {
	base := []tasklist.Option{
		tasklist.WithStore(store),
		tasklist.WithKey(cfg.List),
		tasklist.WithMalformedPolicy(cfg.Policy()),
		tasklist.WithLogger(logger),
	}
	s, err := tasklist.Open(ctx, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open list %q: %w", cfg.List, err)
	}
	return s, nil
}
