package m_table

// Data represents one row of a data table: its key and property columns.
type Data struct {
	Key     any
	Columns map[string]any
}
