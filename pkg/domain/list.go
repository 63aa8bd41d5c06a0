package domain

import "time"

// Counts aggregates a list. Pending is always Total - Completed.
type Counts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// List is the authoritative ordered collection of tasks.
// New tasks are appended; insertion order is preserved by every operation.
//
// List only mutates memory. It is not safe for concurrent use.
type List struct {
	tasks  []Task
	lastID int64
	clock  func() time.Time
}

// NewList creates a list seeded with tasks (typically a loaded snapshot).
// A nil clock defaults to time.Now.
func NewList(clock func() time.Time, tasks ...Task) *List {
	if clock == nil {
		clock = time.Now
	}
	l := &List{
		tasks: make([]Task, 0, len(tasks)),
		clock: clock,
	}
	for _, t := range tasks {
		l.tasks = append(l.tasks, t)
		if t.ID > l.lastID {
			l.lastID = t.ID
		}
	}
	return l
}

// nextID uses the creation time in milliseconds, bumped past the last issued ID
// when the clock has not advanced.
func (l *List) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return id
}

// Add validates text and appends a new task.
// On validation failure the list is left untouched.
func (l *List) Add(text string) (Task, error) {
	// Validate before issuing an ID so rejected input does not consume one.
	if _, err := ValidateText(text); err != nil {
		return Task{}, err
	}
	now := l.clock()
	t, err := NewTask(text, l.nextID(now), now)
	if err != nil {
		return Task{}, err
	}
	l.tasks = append(l.tasks, t)
	return t, nil
}

func (l *List) indexOf(id int64) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the task with the given ID.
func (l *List) Get(id int64) (Task, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return l.tasks[i], true
}

// Remove deletes the task with the given ID and reports whether it existed.
func (l *List) Remove(id int64) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return true
}

// Toggle flips the completion flag of the task with the given ID.
func (l *List) Toggle(id int64) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.tasks[i].ToggleDone()
	return true
}

// ClearAll removes every task. It returns false if the list was already empty.
func (l *List) ClearAll() bool {
	if len(l.tasks) == 0 {
		return false
	}
	l.tasks = l.tasks[:0]
	return true
}

// ClearCompleted removes every completed task and returns how many were removed.
func (l *List) ClearCompleted() int {
	kept := l.tasks[:0]
	for _, t := range l.tasks {
		if !t.Done {
			kept = append(kept, t)
		}
	}
	removed := len(l.tasks) - len(kept)
	l.tasks = kept
	return removed
}

// Count returns the aggregate counts.
func (l *List) Count() Counts {
	c := Counts{Total: len(l.tasks)}
	for _, t := range l.tasks {
		if t.Done {
			c.Completed++
		}
	}
	c.Pending = c.Total - c.Completed
	return c
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the tasks in insertion order.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}
