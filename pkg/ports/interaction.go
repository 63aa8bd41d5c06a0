package ports

import "context"

// Confirmer gates destructive operations behind an explicit user decision.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt. Used when confirmation already happened
// on the caller's side (e.g. an HTTP client or a --yes flag).
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

// NeverConfirm rejects every prompt.
var NeverConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })

// Notifier shows a short notice to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifyFunc adapts a function to the Notifier interface.
type NotifyFunc func(msg string)

// Notify calls f.
func (f NotifyFunc) Notify(msg string) {
	f(msg)
}

// DiscardNotices drops every notice.
var DiscardNotices Notifier = NotifyFunc(func(string) {})
