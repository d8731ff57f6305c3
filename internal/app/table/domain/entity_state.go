package domain

// EntityState is the lifecycle classification of one entity relative to the baseline.
type EntityState string

const (
	StateUnchanged EntityState = "unchanged"
	StateAdded     EntityState = "added"
	StateModified  EntityState = "modified"
	StateDeleted   EntityState = "deleted"
)

// IsDirty returns true for every state except StateUnchanged.
func (s EntityState) IsDirty() bool {
	return s != StateUnchanged
}
