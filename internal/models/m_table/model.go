package m_table

import (
	"sort"

	"cloud.google.com/go/spanner"

	"github.com/penspanic/Datra-sub005/internal/pkg/naming"
)

// Model provides a facade for mutations on one data table. Unlike the fixed
// models, its columns are derived at runtime from the entity's property names.
type Model struct {
	table     string
	keyColumn string
	columns   []string
	byProp    map[string]string
}

// NewModel creates a Model for the entity named entity with the given properties.
// Table and column names follow the naming package conventions.
func NewModel(entity string, properties []string) *Model {
	m := &Model{
		table:     naming.TableName(entity),
		keyColumn: naming.KeyColumn(entity),
		columns:   make([]string, 0, len(properties)),
		byProp:    make(map[string]string, len(properties)),
	}
	for _, p := range properties {
		col := naming.ColumnName(p)
		m.columns = append(m.columns, col)
		m.byProp[p] = col
	}
	return m
}

// TableName returns the Spanner table name.
func (m *Model) TableName() string { return m.table }

// KeyColumn returns the primary key column.
func (m *Model) KeyColumn() string { return m.keyColumn }

// Columns returns the property columns in declaration order.
func (m *Model) Columns() []string {
	out := make([]string, len(m.columns))
	copy(out, m.columns)
	return out
}

// SelectColumns returns the key column followed by the property columns.
func (m *Model) SelectColumns() []string {
	return append([]string{m.keyColumn}, m.columns...)
}

// Column maps a property name to its column.
func (m *Model) Column(property string) (string, bool) {
	col, ok := m.byProp[property]
	return col, ok
}

// InsertMut creates a Spanner mutation for inserting a row.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	columns := make([]string, 0, len(m.columns)+2)
	values := make([]interface{}, 0, len(m.columns)+2)

	columns = append(columns, m.keyColumn)
	values = append(values, data.Key)

	for _, col := range m.columns {
		columns = append(columns, col)
		values = append(values, data.Columns[col])
	}

	columns = append(columns, UpdatedAt)
	values = append(values, spanner.CommitTimestamp)

	return spanner.InsertOrUpdate(m.table, columns, values)
}

// UpdateMut creates a Spanner mutation for updating specific columns of a row.
// The updates map should contain column names as keys and new values.
func (m *Model) UpdateMut(key any, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	names := make([]string, 0, len(updates))
	for col := range updates {
		names = append(names, col)
	}
	sort.Strings(names)

	columns := make([]string, 0, len(updates)+2)
	values := make([]interface{}, 0, len(updates)+2)

	columns = append(columns, m.keyColumn)
	values = append(values, key)

	for _, col := range names {
		columns = append(columns, col)
		values = append(values, updates[col])
	}

	// Always update the updated_at timestamp
	columns = append(columns, UpdatedAt)
	values = append(values, spanner.CommitTimestamp)

	return spanner.Update(m.table, columns, values)
}

// DeleteMut creates a Spanner mutation for deleting a row.
func (m *Model) DeleteMut(key any) *spanner.Mutation {
	return spanner.Delete(m.table, spanner.Key{key})
}
