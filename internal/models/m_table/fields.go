package m_table

// Column name constants shared by every data table.
const (
	UpdatedAt = "updated_at"
)
