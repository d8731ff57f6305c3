package repo

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
	"github.com/penspanic/Datra-sub005/internal/datatables"
)

func newItemRepo() *TableRepo[string, *datatables.Item] {
	return NewTableRepo[string](nil, datatables.NewItemDescriptor())
}

func TestTableRepo_TableName(t *testing.T) {
	assert.Equal(t, "items", newItemRepo().TableName())
	assert.Equal(t, "localized_strings",
		NewTableRepo[string](nil, datatables.NewLocalizedStringDescriptor()).TableName())
}

func TestTableRepo_DomainToData(t *testing.T) {
	r := newItemRepo()
	item := &datatables.Item{Name: "Sword", Value: 10, Rarity: datatables.RarityRare, Tags: []string{"melee"}}

	t.Run("all properties", func(t *testing.T) {
		data, err := r.domainToData("id1", item, []string{"Name", "Value", "Rarity", "Tags"})
		require.NoError(t, err)
		assert.Equal(t, "id1", data.Key)
		assert.Equal(t, map[string]any{
			"name":   "Sword",
			"value":  int64(10),
			"rarity": "rare",
			"tags":   []string{"melee"},
		}, data.Columns)
	})

	t.Run("subset", func(t *testing.T) {
		data, err := r.domainToData("id1", item, []string{"Value"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"value": int64(10)}, data.Columns)
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := r.domainToData("id1", item, []string{"Weight"})
		assert.ErrorIs(t, err, domain.ErrUnknownProperty)
	})
}

func TestTableRepo_Mutations(t *testing.T) {
	r := newItemRepo()
	item := &datatables.Item{Name: "Sword"}

	mut, err := r.InsertMut("id1", item)
	require.NoError(t, err)
	assert.NotNil(t, mut)

	mut, err = r.UpdateMut("id1", item, []string{"Name"})
	require.NoError(t, err)
	assert.NotNil(t, mut)

	mut, err = r.UpdateMut("id1", item, nil)
	require.NoError(t, err)
	assert.Nil(t, mut)

	mut, err = r.DeleteMut("id1")
	require.NoError(t, err)
	assert.NotNil(t, mut)
}

func TestTableRepo_RowToDomain(t *testing.T) {
	r := newItemRepo()

	row, err := spanner.NewRow(
		[]string{"item_id", "name", "value", "rarity", "tags"},
		[]interface{}{"id1", "Sword", int64(10), spanner.NullString{}, []string{"melee"}},
	)
	require.NoError(t, err)

	key, item, err := r.rowToDomain(row)
	require.NoError(t, err)
	assert.Equal(t, "id1", key)
	assert.Equal(t, &datatables.Item{Name: "Sword", Value: 10, Tags: []string{"melee"}}, item)
}

func TestTableRepo_RowToDomain_IntKeys(t *testing.T) {
	r := NewTableRepo[int](nil, domain.ScalarDescriptor[string]("Label"))

	row, err := spanner.NewRow([]string{"label_id", "value"}, []interface{}{int64(3), "Hello"})
	require.NoError(t, err)

	key, value, err := r.rowToDomain(row)
	require.NoError(t, err)
	assert.Equal(t, 3, key)
	assert.Equal(t, "Hello", value)
}

func TestJournalRepo_NewEntry(t *testing.T) {
	r := NewJournalRepo(nil)

	entry := r.NewEntry("items", 42, "update", map[string]any{"Name": "Shield"})
	assert.NotEmpty(t, entry.EntryID)
	assert.Equal(t, "items", entry.Table)
	assert.Equal(t, "42", entry.EntityKey)
	assert.Equal(t, "update", entry.Operation)

	other := r.NewEntry("items", 42, "update", nil)
	assert.NotEqual(t, entry.EntryID, other.EntryID)

	assert.NotNil(t, r.InsertMut(entry))
	assert.NotNil(t, r.InsertMut(other))
}
