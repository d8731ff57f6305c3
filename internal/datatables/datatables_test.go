package datatables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
)

func TestItemDescriptor(t *testing.T) {
	d := NewItemDescriptor()

	assert.Equal(t, []string{"Name", "Value", "Rarity", "Tags"}, d.PropertyNames())
	assert.False(t, d.IsScalar())

	item, err := d.Decode(map[string]any{
		"Name":   "Sword",
		"Value":  int64(10),
		"Rarity": "rare",
		"Tags":   []string{"melee"},
	})
	require.NoError(t, err)
	assert.Equal(t, &Item{Name: "Sword", Value: 10, Rarity: RarityRare, Tags: []string{"melee"}}, item)
}

func TestItemTracking(t *testing.T) {
	tr := domain.NewTracker[string](NewItemDescriptor())
	sword := &Item{Name: "Sword", Value: 10}
	tr.InitializeBaseline(map[string]*Item{"id1": sword})

	assert.True(t, tr.TrackPropertyChange("id1", "Rarity", "epic"))
	assert.Equal(t, Rarity(""), sword.Rarity)
	assert.Equal(t, []string{"Rarity"}, tr.ModifiedProperties("id1"))

	tr.TrackChange("id1", &Item{Name: "Sword", Value: 10})
	assert.False(t, tr.HasModifications())
}

func TestLocalizedStringDescriptor(t *testing.T) {
	d := NewLocalizedStringDescriptor()

	assert.True(t, d.IsScalar())
	assert.Equal(t, LocalizedStringEntity, d.Name())
	assert.Equal(t, []string{domain.ValueProperty}, d.PropertyNames())
}
