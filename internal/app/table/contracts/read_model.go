package contracts

import "time"

// PropertyChangeDTO is one modified property with its baseline and current values.
type PropertyChangeDTO struct {
	Property string `json:"property"`
	Baseline any    `json:"baseline"`
	Current  any    `json:"current"`
}

// EntityChangeDTO describes one changed entity.
type EntityChangeDTO struct {
	Key        any                 `json:"key"`
	State      string              `json:"state"`
	Properties []PropertyChangeDTO `json:"properties,omitempty"`
	Baseline   map[string]any      `json:"baseline,omitempty"`
	Current    map[string]any      `json:"current,omitempty"`
	Diff       string              `json:"diff,omitempty"`
}

// ChangeReport is the pending delta of one table.
type ChangeReport struct {
	Table            string            `json:"table"`
	HasModifications bool              `json:"has_modifications"`
	Added            int               `json:"added"`
	Modified         int               `json:"modified"`
	Deleted          int               `json:"deleted"`
	Entities         []EntityChangeDTO `json:"entities"`
}

// JournalEntryDTO is a persisted journal entry.
type JournalEntryDTO struct {
	EntryID   string    `json:"entry_id"`
	Table     string    `json:"table"`
	EntityKey string    `json:"entity_key"`
	Operation string    `json:"operation"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}
