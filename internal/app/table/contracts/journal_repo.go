package contracts

import (
	"cloud.google.com/go/spanner"
)

// JournalEntry records one row-level change written by a save.
type JournalEntry struct {
	EntryID   string
	Table     string
	EntityKey string
	Operation string
	Payload   map[string]any // JSON
}

// JournalRepository defines the interface for change journal persistence.
type JournalRepository interface {
	// NewEntry builds a journal entry with a fresh id
	NewEntry(table string, key any, operation string, payload map[string]any) *JournalEntry

	// InsertMut creates a mutation for inserting a journal entry
	InsertMut(entry *JournalEntry) *spanner.Mutation
}
