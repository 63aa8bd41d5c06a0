package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/tasklist/internal/logging"
	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/aretw0/tasklist/pkg/ports"
)

// DefaultKey is the slot used when none is configured.
const DefaultKey = "tasks"

// MalformedPolicy decides what Load does with records it cannot decode.
type MalformedPolicy string

const (
	// PolicyFail aborts the load with an error wrapping domain.ErrMalformedSnapshot.
	PolicyFail MalformedPolicy = "fail"
	// PolicySkip drops the offending records and logs a warning for each.
	PolicySkip MalformedPolicy = "skip"
)

// ParsePolicy validates a policy name. An empty name means PolicyFail.
func ParsePolicy(s string) (MalformedPolicy, error) {
	switch MalformedPolicy(s) {
	case "", PolicyFail:
		return PolicyFail, nil
	case PolicySkip:
		return PolicySkip, nil
	}
	return "", fmt.Errorf("unknown malformed policy %q (want %q or %q)", s, PolicyFail, PolicySkip)
}

// Adapter saves and loads one task list snapshot.
type Adapter struct {
	store  ports.SnapshotStore
	key    string
	policy MalformedPolicy
	logger *slog.Logger
}

// Option configures the Adapter.
type Option func(*Adapter)

// WithPolicy sets the malformed record policy.
func WithPolicy(p MalformedPolicy) Option {
	return func(a *Adapter) {
		a.policy = p
	}
}

// WithLogger configures a logger for skipped records.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// New creates an Adapter for the given slot. An empty key means DefaultKey.
func New(store ports.SnapshotStore, key string, opts ...Option) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	a := &Adapter{
		store:  store,
		key:    key,
		policy: PolicyFail,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the slot name.
func (a *Adapter) Key() string {
	return a.key
}

// Encode serializes tasks in order as a JSON array of records.
func Encode(tasks []domain.Task) ([]byte, error) {
	records := make([]domain.Record, len(tasks))
	for i, t := range tasks {
		records[i] = t.Serialize()
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// Save writes the full ordered list into the slot.
func (a *Adapter) Save(ctx context.Context, tasks []domain.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := a.store.Save(ctx, a.key, data); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", a.key, err)
	}
	return nil
}

// Load reads the slot. A slot that was never written yields an empty list.
func (a *Adapter) Load(ctx context.Context) ([]domain.Task, error) {
	data, err := a.store.Load(ctx, a.key)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			return []domain.Task{}, nil
		}
		return nil, fmt.Errorf("failed to load snapshot %q: %w", a.key, err)
	}
	return a.Decode(data)
}

// Decode parses snapshot bytes according to the adapter's policy.
func (a *Adapter) Decode(data []byte) ([]domain.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Task{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// The array itself is unreadable; no record can be salvaged under any policy.
		return nil, fmt.Errorf("%w: %q: %v", domain.ErrMalformedSnapshot, a.key, err)
	}

	tasks := make([]domain.Task, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	for i, msg := range raw {
		t, err := decodeRecord(msg)
		if err == nil && seen[t.ID] {
			err = fmt.Errorf("%w: duplicate id %d", domain.ErrMalformedRecord, t.ID)
		}
		if err != nil {
			if a.policy != PolicySkip {
				return nil, fmt.Errorf("%w: %q record %d: %w", domain.ErrMalformedSnapshot, a.key, i, err)
			}
			a.logger.Warn("Skipping malformed task record", "key", a.key, "index", i, "err", err)
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// decodeRecord keeps numbers as json.Number so large IDs stay exact.
func decodeRecord(msg json.RawMessage) (domain.Task, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()

	var rec map[string]any
	if err := dec.Decode(&rec); err != nil {
		return domain.Task{}, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}
	return domain.Deserialize(rec)
}
