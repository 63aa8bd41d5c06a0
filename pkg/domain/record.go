package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Persisted field names.
const (
	FieldID        = "id"
	FieldText      = "text"
	FieldDone      = "done"
	FieldCreatedAt = "createdAt"
)

// Record is the plain persisted representation of a Task.
// CreatedAt is an RFC 3339 timestamp in UTC.
type Record struct {
	ID        int64  `json:"id" mapstructure:"id"`
	Text      string `json:"text" mapstructure:"text"`
	Done      bool   `json:"done" mapstructure:"done"`
	CreatedAt string `json:"createdAt" mapstructure:"createdAt"`
}

// Serialize converts the task into its persisted form.
func (t Task) Serialize() Record {
	return Record{
		ID:        t.ID,
		Text:      t.Text,
		Done:      t.Done,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// Map returns the record as a generic map, the shape Deserialize accepts.
func (r Record) Map() map[string]any {
	return map[string]any{
		FieldID:        r.ID,
		FieldText:      r.Text,
		FieldDone:      r.Done,
		FieldCreatedAt: r.CreatedAt,
	}
}

// wireRecord is the decode target for untrusted records.
type wireRecord struct {
	ID        int64     `mapstructure:"id"`
	Text      string    `mapstructure:"text"`
	Done      bool      `mapstructure:"done"`
	CreatedAt time.Time `mapstructure:"createdAt"`
}

var timeType = reflect.TypeOf(time.Time{})

// Deserialize rebuilds a Task from a persisted record.
//
// createdAt may be an RFC 3339 string, a Unix timestamp in milliseconds (number,
// json.Number or numeric string) or a time.Time. Any record that cannot satisfy the
// Task invariants returns an error wrapping ErrMalformedRecord.
func Deserialize(raw map[string]any) (Task, error) {
	if raw == nil {
		return Task{}, fmt.Errorf("%w: record is null", ErrMalformedRecord)
	}

	var wire wireRecord
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(timestampHook),
		Result:     &wire,
	})
	if err != nil {
		return Task{}, fmt.Errorf("failed to build record decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return Task{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	if wire.ID == 0 {
		return Task{}, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	}
	text := strings.TrimSpace(wire.Text)
	if text == "" {
		return Task{}, fmt.Errorf("%w: task %d has empty text", ErrMalformedRecord, wire.ID)
	}
	if wire.CreatedAt.IsZero() {
		return Task{}, fmt.Errorf("%w: task %d has no creation time", ErrMalformedRecord, wire.ID)
	}

	return Task{
		ID:        wire.ID,
		Text:      text,
		Done:      wire.Done,
		CreatedAt: normalizeTime(wire.CreatedAt),
	}, nil
}

func timestampHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	return parseTimestamp(data)
}

func parseTimestamp(v any) (time.Time, error) {
	switch ts := v.(type) {
	case time.Time:
		return ts, nil
	case string:
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			return t, nil
		}
		if ms, err := strconv.ParseInt(ts, 10, 64); err == nil {
			return time.UnixMilli(ms), nil
		}
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", ts)
	case json.Number:
		if ms, err := ts.Int64(); err == nil {
			return time.UnixMilli(ms), nil
		}
		f, err := ts.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("unrecognized timestamp %q", ts.String())
		}
		return time.UnixMilli(int64(f)), nil
	case float64:
		return time.UnixMilli(int64(ts)), nil
	case int64:
		return time.UnixMilli(ts), nil
	case int:
		return time.UnixMilli(int64(ts)), nil
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
}
