package tasklist

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/tasklist/internal/logging"
	"github.com/aretw0/tasklist/pkg/adapters/memory"
	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/aretw0/tasklist/pkg/persistence"
	"github.com/aretw0/tasklist/pkg/ports"
	"github.com/aretw0/tasklist/pkg/view"
)

// Notices shown through the Notifier.
const (
	NoticeEmptyText        = "Please enter some text for the task!"
	NoticeNothingToDelete  = "No tasks to delete!"
	NoticeNothingCompleted = "No completed tasks to clear!"
)

// Prompts passed to the Confirmer.
const (
	PromptDelete   = "Delete this task?"
	PromptClearAll = "Are you sure? Every task will be permanently deleted!"
)

// Session owns one task list for the lifetime of a run: the in-memory list, the
// snapshot slot it is persisted to, and the current search term.
//
// Every successful mutation is saved and then reported once through the on-change
// callback. A Session is not safe for concurrent use; frontends that receive events
// concurrently must serialize their calls.
type Session struct {
	list    *domain.List
	persist *persistence.Adapter
	term    string
	saveErr error

	store     ports.SnapshotStore
	key       string
	policy    persistence.MalformedPolicy
	confirmer ports.Confirmer
	notifier  ports.Notifier
	onChange  func(view.Model)
	clock     func() time.Time
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Session.
type Option func(*Session)

// WithStore sets the snapshot store. Defaults to an in-memory store.
func WithStore(store ports.SnapshotStore) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithKey selects the snapshot slot (default: "tasks").
func WithKey(key string) Option {
	return func(s *Session) {
		s.key = key
	}
}

// WithMalformedPolicy decides how unreadable records in the snapshot are handled.
func WithMalformedPolicy(p persistence.MalformedPolicy) Option {
	return func(s *Session) {
		s.policy = p
	}
}

// WithConfirmer sets the gate for destructive operations.
// Without it every confirmation is refused.
func WithConfirmer(c ports.Confirmer) Option {
	return func(s *Session) {
		s.confirmer = c
	}
}

// WithNotifier sets where user notices go.
func WithNotifier(n ports.Notifier) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithOnChange registers the re-render callback.
func WithOnChange(fn func(view.Model)) Option {
	return func(s *Session) {
		s.onChange = fn
	}
}

// WithClock overrides the time source used for IDs and creation times.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithLogger sets a custom structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Open loads the snapshot and returns a ready session.
// A slot that was never written starts an empty list.
func Open(ctx context.Context, opts ...Option) (*Session, error) {
	s := &Session{
		key:       persistence.DefaultKey,
		policy:    persistence.PolicyFail,
		confirmer: ports.NeverConfirm,
		notifier:  ports.DiscardNotices,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = memory.NewStore()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.logger = s.logger.With("list", s.key)

	s.persist = persistence.New(s.store, s.key,
		persistence.WithPolicy(s.policy),
		persistence.WithLogger(s.logger),
	)

	tasks, err := s.persist.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.list = domain.NewList(s.clock, tasks...)
	s.logger.Info("Tasks loaded", "count", len(tasks))

	return s, nil
}

// Create validates text and appends a new task, returning it.
// Invalid text triggers NoticeEmptyText and leaves the list and the store untouched.
func (s *Session) Create(ctx context.Context, text string) (domain.Task, error) {
	t, err := s.list.Add(text)
	if err != nil {
		s.logger.Warn("Task rejected", "err", err)
		s.notifier.Notify(NoticeEmptyText)
		return domain.Task{}, err
	}
	s.logger.Info("Task added", "id", t.ID, "text", t.Text)
	s.commit(ctx)
	return t, nil
}

// Add is Create reduced to whether a task was added.
func (s *Session) Add(ctx context.Context, text string) bool {
	_, err := s.Create(ctx, text)
	return err == nil
}

// Remove deletes a task after confirmation.
// Unknown IDs return false without prompting.
func (s *Session) Remove(ctx context.Context, id int64) bool {
	t, ok := s.list.Get(id)
	if !ok {
		return false
	}
	if !s.confirmer.Confirm(ctx, PromptDelete) {
		s.logger.Debug("Delete declined", "id", id)
		return false
	}
	s.list.Remove(id)
	s.logger.Info("Task removed", "id", id, "text", t.Text)
	s.commit(ctx)
	return true
}

// Toggle flips the completion flag of a task.
func (s *Session) Toggle(ctx context.Context, id int64) bool {
	if !s.list.Toggle(id) {
		return false
	}
	t, _ := s.list.Get(id)
	s.logger.Info("Task toggled", "id", id, "done", t.Done)
	s.commit(ctx)
	return true
}

// ClearAll deletes every task after confirmation.
// On an empty list it shows NoticeNothingToDelete and returns false without prompting
// or saving.
func (s *Session) ClearAll(ctx context.Context) bool {
	n := s.list.Len()
	if n == 0 {
		s.notifier.Notify(NoticeNothingToDelete)
		return false
	}
	if !s.confirmer.Confirm(ctx, PromptClearAll) {
		s.logger.Debug("Clear all declined")
		return false
	}
	s.list.ClearAll()
	s.logger.Info("All tasks removed", "count", n)
	s.commit(ctx)
	return true
}

// ClearCompleted deletes every completed task and returns how many were removed.
// When there are none it shows NoticeNothingCompleted and does not save.
func (s *Session) ClearCompleted(ctx context.Context) int {
	n := s.list.ClearCompleted()
	if n == 0 {
		s.notifier.Notify(NoticeNothingCompleted)
		return 0
	}
	s.logger.Info("Completed tasks removed", "count", n)
	s.commit(ctx)
	return n
}

// Search sets the filter term and re-renders.
func (s *Session) Search(term string) {
	s.term = term
	s.Refresh()
}

// Term returns the current filter term.
func (s *Session) Term() string {
	return s.term
}

// Visible returns the tasks matching the current term, in order.
func (s *Session) Visible() []domain.Task {
	return domain.Filter(s.list.Tasks(), s.term)
}

// Tasks returns every task, in order.
func (s *Session) Tasks() []domain.Task {
	return s.list.Tasks()
}

// Get returns the task with the given ID.
func (s *Session) Get(id int64) (domain.Task, bool) {
	return s.list.Get(id)
}

// Count returns the aggregate counts of the whole list.
func (s *Session) Count() domain.Counts {
	return s.list.Count()
}

// View builds the presentational model for the current state.
func (s *Session) View() view.Model {
	return view.Build(s.Visible(), s.list.Count(), s.term)
}

// Refresh invokes the on-change callback with the current view.
func (s *Session) Refresh() {
	if s.onChange != nil {
		s.onChange(s.View())
	}
}

// Key returns the snapshot slot of this session.
func (s *Session) Key() string {
	return s.key
}

// SaveErr returns the error of the latest save, or nil if it succeeded.
func (s *Session) SaveErr() error {
	return s.saveErr
}

// Degraded reports whether the session is running from memory only because the
// latest save failed.
func (s *Session) Degraded() bool {
	return s.saveErr != nil
}

// commit persists the list and re-renders. A failed save is logged and the session
// keeps working from memory; the next mutation retries the save.
func (s *Session) commit(ctx context.Context) {
	err := s.persist.Save(ctx, s.list.Tasks())
	switch {
	case err != nil:
		s.logger.Error("Failed to save tasks, continuing in memory", "err", err)
	case s.saveErr != nil:
		s.logger.Info("Saving tasks recovered")
	}
	s.saveErr = err

	c := s.list.Count()
	s.logger.Debug("Stats", "total", c.Total, "pending", c.Pending, "completed", c.Completed)
	s.Refresh()
}
