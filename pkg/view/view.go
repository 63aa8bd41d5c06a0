// Package view projects the visible tasks and the list counts into a presentational model.
//
// Building a Model is pure. Renderers turn it into text, markdown or HTML and always
// escape task text, which comes from users and from untrusted snapshots.
package view

import (
	"time"

	"github.com/aretw0/tasklist/pkg/domain"
)

// EmptyPlaceholder replaces the list when nothing is visible.
const EmptyPlaceholder = "No tasks to show."

// Control labels.
const (
	LabelDone   = "Done"
	LabelReopen = "Reopen"
	LabelDelete = "Delete"
)

// Item is one rendered task. ID routes the toggle and delete controls back to the list.
type Item struct {
	ID          int64     `json:"id"`
	Text        string    `json:"text"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"createdAt"`
	ToggleLabel string    `json:"toggleLabel"`
	DeleteLabel string    `json:"deleteLabel"`
}

// Model is everything a renderer needs.
type Model struct {
	Items  []Item        `json:"items"`
	Counts domain.Counts `json:"counts"`
	Term   string        `json:"term,omitempty"`
	Empty  bool          `json:"empty"`
}

// Build creates the model from the filtered tasks and the counts of the whole list.
func Build(visible []domain.Task, counts domain.Counts, term string) Model {
	m := Model{
		Items:  make([]Item, 0, len(visible)),
		Counts: counts,
		Term:   term,
		Empty:  len(visible) == 0,
	}
	for _, t := range visible {
		label := LabelDone
		if t.Done {
			label = LabelReopen
		}
		m.Items = append(m.Items, Item{
			ID:          t.ID,
			Text:        t.Text,
			Done:        t.Done,
			CreatedAt:   t.CreatedAt,
			ToggleLabel: label,
			DeleteLabel: LabelDelete,
		})
	}
	return m
}
