/*
Package domain contains the core models of the task list.

It is kept pure: nothing here performs I/O, persistence or rendering. The composition of
mutations with saving and re-rendering lives in the root tasklist package.

# Key Entities

  - Task: One to-do item (ID, Text, Done, CreatedAt).
  - Record: The plain persisted form of a Task.
  - List: The ordered, in-memory collection of tasks with its mutation operations.
  - Filter: Derives the visible subset of a list from a search term.
*/
package domain
