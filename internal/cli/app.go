package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/tasklist"
	"github.com/aretw0/tasklist/internal/config"
	"github.com/aretw0/tasklist/internal/presentation/tui"
	"github.com/aretw0/tasklist/pkg/ports"
	"github.com/aretw0/tasklist/pkg/runner"
	"github.com/aretw0/tasklist/pkg/view"
)

var (
	// ErrNotConfirmed is returned when a destructive command was not confirmed.
	ErrNotConfirmed = errors.New("not confirmed")
	// ErrNotFound is returned for an unknown task ID.
	ErrNotFound = errors.New("task not found")
	// ErrNotSaved is returned when a change stayed in memory because the store failed.
	ErrNotSaved = errors.New("change applied but not saved")
)

// App holds what every command needs: the resolved config, the logger, the store and
// the terminal streams.
type App struct {
	Config      *config.Config
	Logger      *slog.Logger
	Store       ports.SnapshotStore
	In          io.Reader
	Out         io.Writer
	Interactive bool

	closer io.Closer
}

// NewApp resolves the configuration from flags and opens the store.
func NewApp(ctx context.Context, opts Options, in io.Reader, out io.Writer) (*App, error) {
	cfg, err := opts.Resolve()
	if err != nil {
		return nil, err
	}
	return NewAppFromConfig(ctx, cfg, in, out)
}

// NewAppFromConfig opens the store described by cfg.
func NewAppFromConfig(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	logger := NewLogger(cfg)
	store, closer, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &App{
		Config:      cfg,
		Logger:      logger,
		Store:       store,
		In:          in,
		Out:         out,
		Interactive: IsTerminal(in) && IsTerminal(out),
		closer:      closer,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.closer.Close()
}

// Open opens the configured list with notices printed to Out.
func (a *App) Open(ctx context.Context, extra ...tasklist.Option) (*tasklist.Session, error) {
	opts := append([]tasklist.Option{tasklist.WithNotifier(ports.NotifyFunc(a.notify))}, extra...)
	return OpenSession(ctx, a.Config, a.Store, a.Logger, opts...)
}

func (a *App) notify(msg string) {
	fmt.Fprintln(a.Out, tui.Notice(a.Out, msg))
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format+"\n", args...)
}

// confirmer returns the gate for a destructive one-shot command: --yes approves,
// an interactive terminal asks, anything else refuses.
func (a *App) confirmer(yes bool) ports.Confirmer {
	if yes {
		return ports.AlwaysConfirm
	}
	if a.Interactive {
		return runner.NewTextHandler(a.In, a.Out)
	}
	return ports.NeverConfirm
}

// render prints the list, styled on a terminal.
func (a *App) render(m view.Model) error {
	if a.Interactive {
		if render, err := tui.NewRenderer(); err == nil {
			if out, err := render(view.RenderMarkdown(m)); err == nil {
				fmt.Fprint(a.Out, out)
				return nil
			}
		}
	}
	return view.RenderText(a.Out, m)
}

func saved(s *tasklist.Session) error {
	if err := s.SaveErr(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotSaved, err)
	}
	return nil
}
