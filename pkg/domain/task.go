package domain

import (
	"strings"
	"time"
)

// Task is a single to-do item.
//
// Done is the only field mutated after construction.
type Task struct {
	ID        int64
	Text      string
	Done      bool
	CreatedAt time.Time
}

// NewTask validates text and builds a pending task.
// The text is trimmed; empty or whitespace-only text returns ErrEmptyText.
func NewTask(text string, id int64, now time.Time) (Task, error) {
	clean, err := ValidateText(text)
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:        id,
		Text:      clean,
		CreatedAt: normalizeTime(now),
	}, nil
}

// ValidateText trims text and rejects it if nothing is left.
func ValidateText(text string) (string, error) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return "", ErrEmptyText
	}
	return clean, nil
}

// ToggleDone flips the completion flag.
func (t *Task) ToggleDone() {
	t.Done = !t.Done
}

// normalizeTime drops the monotonic reading and location so that a timestamp
// survives a persistence round trip unchanged.
func normalizeTime(t time.Time) time.Time {
	return t.Round(0).UTC()
}
