package m_journal

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the table_change_journal table.
type Data struct {
	EntryID   string
	Table     string
	EntityKey string
	Operation string
	Payload   spanner.NullJSON
	CreatedAt time.Time
}
