package m_journal

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the table_change_journal table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns returns the columns of the journal in storage order.
func (m *Model) Columns() []string {
	return []string{EntryID, Table, EntityKey, Operation, Payload, CreatedAt}
}

// InsertMut creates a Spanner mutation for inserting a journal entry.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			EntryID,
			Table,
			EntityKey,
			Operation,
			Payload,
			CreatedAt,
		},
		[]interface{}{
			data.EntryID,
			data.Table,
			data.EntityKey,
			data.Operation,
			data.Payload,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a journal entry.
func (m *Model) DeleteMut(entryID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{entryID})
}
