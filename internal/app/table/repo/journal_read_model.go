package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/penspanic/Datra-sub005/internal/app/table/queries/list_journal"
	"github.com/penspanic/Datra-sub005/internal/models/m_journal"
	"github.com/penspanic/Datra-sub005/internal/pkg/query"
)

// JournalReadModel implements list_journal.JournalReadModel for Spanner.
type JournalReadModel struct {
	client *spanner.Client
	model  *m_journal.Model
}

// NewJournalReadModel creates a new JournalReadModel.
func NewJournalReadModel(client *spanner.Client) *JournalReadModel {
	return &JournalReadModel{
		client: client,
		model:  m_journal.NewModel(),
	}
}

// journalQuery builds the filtered listing; the same builder yields the count query.
func (r *JournalReadModel) journalQuery(req *list_journal.Request) *query.Builder {
	b := query.From(m_journal.TableName).Select(r.model.Columns()...)

	if req.Table != nil {
		b = b.Where(query.Eq(m_journal.Table, *req.Table))
	}
	if req.EntityKey != nil {
		b = b.Where(query.Eq(m_journal.EntityKey, *req.EntityKey))
	}
	if req.Operation != nil {
		b = b.Where(query.Eq(m_journal.Operation, *req.Operation))
	}

	return b.OrderBy(m_journal.CreatedAt, query.Desc).
		OrderBy(m_journal.EntryID, query.Asc).
		Limit(int64(req.Limit))
}

// ListEntries retrieves journal entries with filtering and the total match count.
func (r *JournalReadModel) ListEntries(ctx context.Context, req *list_journal.Request) ([]*m_journal.Data, int64, error) {
	b := r.journalQuery(req)

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	iter := txn.Query(ctx, b.Build())
	defer iter.Stop()

	var entries []*m_journal.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate journal: %w", err)
		}

		var entry m_journal.Data
		if err := row.Columns(
			&entry.EntryID,
			&entry.Table,
			&entry.EntityKey,
			&entry.Operation,
			&entry.Payload,
			&entry.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		entries = append(entries, &entry)
	}

	var total int64
	countIter := txn.Query(ctx, b.Count().Build())
	defer countIter.Stop()
	row, err := countIter.Next()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count journal entries: %w", err)
	}
	if err := row.Columns(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to parse journal count: %w", err)
	}

	return entries, total, nil
}
