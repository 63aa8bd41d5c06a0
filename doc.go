/*
Package tasklist is a small, persistent to-do list manager.

A Session owns one ordered list of tasks loaded from a snapshot slot. Each task has
text, a completion flag, a creation time and a unique ID. Every successful mutation
saves the full list back to the slot and then re-renders through a single on-change
callback, so the storage backend and the user interface stay out of the list logic.

# Architecture

The module follows a ports and adapters layout:

  - pkg/domain: Task, the ordered List, Filter and the persisted record format.
  - pkg/ports: the SnapshotStore, Confirmer and Notifier contracts.
  - pkg/persistence: the snapshot adapter (JSON array of records) and store middleware.
  - pkg/adapters: memory, file, redis and sqlite stores, plus HTTP and MCP frontends.
  - pkg/view: the presentational model and its text and markdown renderings.
  - pkg/runner: the interactive shell.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/tasklist"
		"github.com/aretw0/tasklist/pkg/adapters/file"
		"github.com/aretw0/tasklist/pkg/view"
	)

	func main() {
		ctx := context.Background()
		s, err := tasklist.Open(ctx,
			tasklist.WithStore(file.NewStore("")),
			tasklist.WithOnChange(func(m view.Model) {
				fmt.Println(view.Summary(m))
			}),
		)
		if err != nil {
			log.Fatal(err)
		}
		s.Add(ctx, "Buy milk")
	}

Destructive operations (Remove and ClearAll) ask the injected Confirmer first. The
default Confirmer refuses, so embedders must opt in explicitly.

# Persistence

A slot holds a JSON array of {id, text, done, createdAt} records. Loading treats the
slot as untrusted input: by default a malformed record fails the load with
domain.ErrMalformedSnapshot, and persistence.PolicySkip drops bad records with a
warning instead. When a save fails the session keeps working from memory and reports
it through Degraded.
*/
package tasklist
