package m_table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModel_Naming(t *testing.T) {
	m := NewModel("Item", []string{"Name", "Value", "DropRate"})

	assert.Equal(t, "items", m.TableName())
	assert.Equal(t, "item_id", m.KeyColumn())
	assert.Equal(t, []string{"name", "value", "drop_rate"}, m.Columns())
	assert.Equal(t, []string{"item_id", "name", "value", "drop_rate"}, m.SelectColumns())

	col, ok := m.Column("DropRate")
	assert.True(t, ok)
	assert.Equal(t, "drop_rate", col)

	_, ok = m.Column("Missing")
	assert.False(t, ok)
}

func TestModel_ScalarTable(t *testing.T) {
	m := NewModel("LocalizedString", []string{"Value"})

	assert.Equal(t, "localized_strings", m.TableName())
	assert.Equal(t, "localized_string_id", m.KeyColumn())
	assert.Equal(t, []string{"value"}, m.Columns())
}

func TestModel_Mutations(t *testing.T) {
	m := NewModel("Item", []string{"Name", "Value"})

	assert.NotNil(t, m.InsertMut(&Data{Key: "id1", Columns: map[string]any{"name": "Sword", "value": int64(10)}}))
	assert.NotNil(t, m.UpdateMut("id1", map[string]interface{}{"name": "Shield"}))
	assert.Nil(t, m.UpdateMut("id1", nil))
	assert.NotNil(t, m.DeleteMut("id1"))
}

func TestModel_ColumnsIsACopy(t *testing.T) {
	m := NewModel("Item", []string{"Name"})
	cols := m.Columns()
	cols[0] = "changed"
	assert.Equal(t, []string{"name"}, m.Columns())
}
