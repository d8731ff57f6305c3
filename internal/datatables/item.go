// Package datatables declares the data tables the editor backend serves.
package datatables

import (
	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
)

// Rarity grades an item.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Item is one row of the items table.
type Item struct {
	Name   string   `json:"Name" jsonschema:"required,minLength=1"`
	Value  int      `json:"Value" jsonschema:"minimum=0"`
	Rarity Rarity   `json:"Rarity,omitempty" jsonschema:"enum=common,enum=rare,enum=epic,enum=legendary"`
	Tags   []string `json:"Tags,omitempty"`
}

// ItemEntity is the entity name of Item; the items table and item_id key
// column derive from it.
const ItemEntity = "Item"

// NewItemDescriptor describes Item for change tracking.
func NewItemDescriptor() *domain.Descriptor[*Item] {
	return domain.NewDescriptor(ItemEntity, func() *Item { return &Item{} },
		domain.PtrField("Name",
			func(i *Item) string { return i.Name },
			func(i *Item, v string) { i.Name = v }),
		domain.PtrField("Value",
			func(i *Item) int { return i.Value },
			func(i *Item, v int) { i.Value = v }),
		domain.PtrField("Rarity",
			func(i *Item) Rarity { return i.Rarity },
			func(i *Item, v Rarity) { i.Rarity = v }),
		domain.PtrField("Tags",
			func(i *Item) []string { return i.Tags },
			func(i *Item, v []string) { i.Tags = v }),
	)
}
