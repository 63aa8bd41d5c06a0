package domain

import "strings"

// Filter returns the tasks whose text contains term, ignoring case.
//
// A blank term returns tasks unchanged. Order is preserved and the input is never
// modified, so calling Filter repeatedly with the same arguments yields the same result.
func Filter(tasks []Task, term string) []Task {
	if strings.TrimSpace(term) == "" {
		return tasks
	}
	needle := strings.ToLower(term)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Text), needle) {
			out = append(out, t)
		}
	}
	return out
}
