package repo

import (
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/penspanic/Datra-sub005/internal/app/table/contracts"
	"github.com/penspanic/Datra-sub005/internal/models/m_journal"
)

// JournalRepo implements JournalRepository for Spanner.
type JournalRepo struct {
	client *spanner.Client
	model  *m_journal.Model
}

// NewJournalRepo creates a new JournalRepo.
func NewJournalRepo(client *spanner.Client) contracts.JournalRepository {
	return &JournalRepo{
		client: client,
		model:  m_journal.NewModel(),
	}
}

// NewEntry builds a journal entry with a fresh id.
func (r *JournalRepo) NewEntry(table string, key any, operation string, payload map[string]any) *contracts.JournalEntry {
	return &contracts.JournalEntry{
		EntryID:   uuid.New().String(),
		Table:     table,
		EntityKey: fmt.Sprint(key),
		Operation: operation,
		Payload:   payload,
	}
}

// InsertMut creates a mutation for inserting a journal entry.
func (r *JournalRepo) InsertMut(entry *contracts.JournalEntry) *spanner.Mutation {
	data := &m_journal.Data{
		EntryID:   entry.EntryID,
		Table:     entry.Table,
		EntityKey: entry.EntityKey,
		Operation: entry.Operation,
		Payload:   spanner.NullJSON{Value: entry.Payload, Valid: entry.Payload != nil},
	}

	return r.model.InsertMut(data)
}
