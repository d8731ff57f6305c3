package list_journal

import (
	"context"

	"github.com/penspanic/Datra-sub005/internal/models/m_journal"
)

// Request contains filtering parameters for listing journal entries.
type Request struct {
	Table     *string // Filter by table name (e.g., "items")
	EntityKey *string // Filter by entity key
	Operation *string // Filter by operation ("insert", "update", "delete")
	Limit     int     // Max number of entries to return (default: 100)
}

// JournalReadModel defines the interface for reading journal entries.
type JournalReadModel interface {
	ListEntries(ctx context.Context, req *Request) ([]*m_journal.Data, int64, error)
}

// Query handles the list journal query use case.
type Query struct {
	readModel JournalReadModel
}

// NewQuery creates a new list journal query.
func NewQuery(readModel JournalReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves journal entries, most recent first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*m_journal.Data, int64, error) {
	if req.Limit <= 0 {
		req.Limit = 100 // Default limit
	}
	if req.Limit > 1000 {
		req.Limit = 1000 // Max limit
	}

	return q.readModel.ListEntries(ctx, req)
}
