/*
Package runner implements the interactive task shell.

The Runner reads one command per line through an IOHandler, dispatches it to the
session and lets the session's on-change callback re-render the list. Handlers double
as the session's Confirmer and Notifier, so confirmations and notices flow through
the same terminal (or JSON stream) as the commands.

# Key Components

  - Runner: the read-dispatch loop.
  - TextHandler: interactive terminal usage, with an optional markdown renderer.
  - JSONHandler: JSON-Lines output for scripts and editors.
  - SanitizeInput: size, UTF-8 and control character checks applied to every line.

# Usage

	h := runner.NewTextHandler(os.Stdin, os.Stdout)
	s, err := tasklist.Open(ctx,
		tasklist.WithStore(store),
		tasklist.WithConfirmer(h),
		tasklist.WithNotifier(h),
		tasklist.WithOnChange(func(m view.Model) { _ = h.Render(ctx, m) }),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := runner.NewRunner(runner.WithInputHandler(h)).Run(ctx, s); err != nil {
		log.Fatal(err)
	}
*/
package runner
