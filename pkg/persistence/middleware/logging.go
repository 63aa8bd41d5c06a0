package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/aretw0/tasklist/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.SnapshotStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at debug level, and failures at warn.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) done(op, key string, start time.Time, size int, err error) {
	if err != nil && !errors.Is(err, domain.ErrSnapshotNotFound) {
		m.logger.Warn("Snapshot store call failed", "op", op, "key", key, "err", err)
		return
	}
	m.logger.Debug("Snapshot store call", "op", op, "key", key, "bytes", size, "took", time.Since(start))
}

func (m *loggingMiddleware) Save(ctx context.Context, key string, data []byte) error {
	start := time.Now()
	err := m.next.Save(ctx, key, data)
	m.done("save", key, start, len(data), err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := m.next.Load(ctx, key)
	m.done("load", key, start, len(data), err)
	return data, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := m.next.Delete(ctx, key)
	m.done("delete", key, start, 0, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := m.next.List(ctx)
	m.done("list", "", start, len(keys), err)
	return keys, err
}
