package cli

import (
	"context"

	"github.com/aretw0/tasklist"
	"github.com/aretw0/tasklist/internal/presentation/tui"
	"github.com/aretw0/tasklist/pkg/runner"
	"github.com/aretw0/tasklist/pkg/view"
)

// Shell runs the interactive shell on the app's streams. With asJSON the shell speaks
// JSON-Lines instead of text.
func Shell(ctx context.Context, a *App, asJSON bool) error {
	var h runner.IOHandler
	if asJSON {
		h = runner.NewJSONHandler(a.In, a.Out)
	} else {
		var opts []runner.TextHandlerOption
		if a.Interactive {
			tui.PrintBanner(a.Out)
			if render, err := tui.NewRenderer(); err == nil {
				opts = append(opts, runner.WithTextHandlerRenderer(render))
			} else {
				a.Logger.Warn("Falling back to plain output", "err", err)
			}
		} else {
			opts = append(opts, runner.WithPrompt(""))
		}
		h = runner.NewTextHandler(a.In, a.Out, opts...)
	}

	s, err := OpenSession(ctx, a.Config, a.Store, a.Logger,
		tasklist.WithConfirmer(h),
		tasklist.WithNotifier(h),
		tasklist.WithOnChange(func(m view.Model) {
			if err := h.Render(ctx, m); err != nil {
				a.Logger.Warn("Failed to render list", "err", err)
			}
		}),
	)
	if err != nil {
		return err
	}

	if a.Interactive && !asJSON {
		_ = h.SystemOutput(ctx, "Type help for commands.")
	}
	return runner.NewRunner(runner.WithInputHandler(h), runner.WithLogger(a.Logger)).Run(ctx, s)
}
