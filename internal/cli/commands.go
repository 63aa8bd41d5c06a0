package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/tasklist"
)

// Add appends a task.
func Add(ctx context.Context, a *App, text string) error {
	s, err := a.Open(ctx)
	if err != nil {
		return err
	}
	t, err := s.Create(ctx, text)
	if err != nil {
		return err
	}
	a.printf("Added %d: %s", t.ID, t.Text)
	return saved(s)
}

// List prints the tasks matching term, as JSON when asJSON is set.
func List(ctx context.Context, a *App, term string, asJSON bool) error {
	s, err := a.Open(ctx)
	if err != nil {
		return err
	}
	s.Search(term)
	m := s.View()
	if asJSON {
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}
	return a.render(m)
}

// Toggle flips the completion flag of a task.
func Toggle(ctx context.Context, a *App, id int64) error {
	s, err := a.Open(ctx)
	if err != nil {
		return err
	}
	if !s.Toggle(ctx, id) {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	t, _ := s.Get(id)
	state := "pending"
	if t.Done {
		state = "completed"
	}
	a.printf("Task %d is now %s.", id, state)
	return saved(s)
}

// Remove deletes a task once confirmed.
func Remove(ctx context.Context, a *App, id int64, yes bool) error {
	s, err := a.Open(ctx, tasklist.WithConfirmer(a.confirmer(yes)))
	if err != nil {
		return err
	}
	t, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if !s.Remove(ctx, id) {
		return fmt.Errorf("%w: pass --yes to delete without asking", ErrNotConfirmed)
	}
	a.printf("Deleted %d: %s", id, t.Text)
	return saved(s)
}

// Clear deletes every task once confirmed, or only completed tasks.
func Clear(ctx context.Context, a *App, completedOnly, yes bool) error {
	s, err := a.Open(ctx, tasklist.WithConfirmer(a.confirmer(yes)))
	if err != nil {
		return err
	}

	if completedOnly {
		if n := s.ClearCompleted(ctx); n > 0 {
			a.printf("Removed %d completed task(s).", n)
		}
		return saved(s)
	}

	if s.Count().Total == 0 {
		s.ClearAll(ctx)
		return nil
	}
	if !s.ClearAll(ctx) {
		return fmt.Errorf("%w: pass --yes to delete without asking", ErrNotConfirmed)
	}
	a.printf("All tasks deleted.")
	return saved(s)
}

// Slots prints the stored list names.
func Slots(ctx context.Context, a *App) error {
	keys, err := a.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list slots: %w", err)
	}
	for _, k := range keys {
		marker := " "
		if k == a.Config.List {
			marker = "*"
		}
		a.printf("%s %s", marker, k)
	}
	return nil
}
