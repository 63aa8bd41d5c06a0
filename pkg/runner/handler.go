package runner

import (
	"context"

	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/aretw0/tasklist/pkg/ports"
	"github.com/aretw0/tasklist/pkg/view"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (terminal) and JSON (structured) modes.
type IOHandler interface {
	ports.Confirmer
	ports.Notifier

	// Render presents the current list.
	Render(ctx context.Context, m view.Model) error

	// Input reads the next command line.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message (help, errors) distinct from the list.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms markdown before it is written, e.g. into ANSI output.
// This keeps terminal styling out of the runner package.
type ContentRenderer func(string) (string, error)

// Session is the part of a task session the shell drives.
type Session interface {
	Add(ctx context.Context, text string) bool
	Toggle(ctx context.Context, id int64) bool
	Remove(ctx context.Context, id int64) bool
	ClearAll(ctx context.Context) bool
	ClearCompleted(ctx context.Context) int
	Get(id int64) (domain.Task, bool)
	Search(term string)
	Refresh()
}
