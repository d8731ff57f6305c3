package m_journal

// Field name constants for the table_change_journal table.
const (
	TableName = "table_change_journal"

	EntryID   = "entry_id"
	Table     = "table_name"
	EntityKey = "entity_key"
	Operation = "operation"
	Payload   = "payload"
	CreatedAt = "created_at"
)

// Operation constants
const (
	OperationInsert = "insert"
	OperationUpdate = "update"
	OperationDelete = "delete"
)
