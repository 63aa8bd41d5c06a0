package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/tasklist/internal/logging"
)

// Runner reads commands from an IOHandler and dispatches them to a Session.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Run renders the list once and then processes commands until quit, end of input or
// context cancellation. Command errors are reported to the user and do not stop the
// loop.
func (r *Runner) Run(ctx context.Context, s Session) error {
	s.Refresh()

	for {
		line, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				r.Logger.Debug("Shell input closed", "err", err)
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}

		quit, err := r.Dispatch(ctx, s, line)
		if err != nil {
			r.Logger.Debug("Command failed", "line", line, "err", err)
			if err := r.Handler.SystemOutput(ctx, "Error: "+err.Error()); err != nil {
				return err
			}
			continue
		}
		if quit {
			return nil
		}
	}
}

// Dispatch executes one command line. It reports whether the shell should stop.
func (r *Runner) Dispatch(ctx context.Context, s Session, line string) (bool, error) {
	cmd := ParseCommand(line)

	switch cmd.Name {
	case "":
		return false, nil
	case "add":
		s.Add(ctx, cmd.Arg)
	case "done":
		id, err := ParseID(cmd.Arg)
		if err != nil {
			return false, err
		}
		if !s.Toggle(ctx, id) {
			return false, fmt.Errorf("%w: %d", ErrUnknownTask, id)
		}
	case "rm":
		id, err := ParseID(cmd.Arg)
		if err != nil {
			return false, err
		}
		if _, ok := s.Get(id); !ok {
			return false, fmt.Errorf("%w: %d", ErrUnknownTask, id)
		}
		s.Remove(ctx, id)
	case "clear":
		switch cmd.Arg {
		case "":
			s.ClearAll(ctx)
		case "done", "completed":
			if n := s.ClearCompleted(ctx); n > 0 {
				return false, r.Handler.SystemOutput(ctx, fmt.Sprintf("Removed %d completed task(s).", n))
			}
		default:
			return false, fmt.Errorf("%w: clear %s", ErrUnknownCommand, cmd.Arg)
		}
	case "search":
		s.Search(cmd.Arg)
	case "ls":
		s.Refresh()
	case "help":
		return false, r.Handler.SystemOutput(ctx, HelpText)
	case "quit":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s (type help)", ErrUnknownCommand, cmd.Name)
	}
	return false, nil
}
