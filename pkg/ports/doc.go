/*
Package ports defines the driven ports (interfaces) of the task list.

These interfaces decouple the session from external implementations, allowing
the same task list to be persisted in different backends and driven by different
frontends (terminal, HTTP, MCP).

# Key Interfaces

  - SnapshotStore: Persists opaque snapshots in named slots (file, memory, redis, sqlite).
  - Confirmer: Asks the user to approve a destructive operation.
  - Notifier: Shows a short notice to the user (validation failures, nothing to clear).
*/
package ports
