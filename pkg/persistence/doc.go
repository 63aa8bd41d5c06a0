/*
Package persistence turns a task list into a snapshot and back.

An Adapter owns one slot (key) of a ports.SnapshotStore. Saving writes the whole ordered
list as a JSON array of domain.Record values; loading treats the stored bytes as untrusted
input and applies an explicit MalformedPolicy.

	adapter := persistence.New(file.NewStore(""), "tasks")
	tasks, err := adapter.Load(ctx)
*/
package persistence
