package domain

// PropertyChange is one tracked (baseline, current) pair for a property.
type PropertyChange struct {
	Baseline any
	Current  any
}

// ChangeLedger tracks which properties of which entities differ from the baseline.
// Entities appear in the ledger only while at least one of their properties is dirty.
type ChangeLedger[K comparable] struct {
	dirtyFields map[K]map[string]PropertyChange
	keys        *keySet[K]
}

// NewChangeLedger creates an empty ChangeLedger.
func NewChangeLedger[K comparable]() *ChangeLedger[K] {
	return &ChangeLedger[K]{
		dirtyFields: make(map[K]map[string]PropertyChange),
		keys:        newKeySet[K](),
	}
}

// MarkDirty records (or overwrites) the change for one property of an entity.
func (l *ChangeLedger[K]) MarkDirty(key K, field string, change PropertyChange) {
	fields, ok := l.dirtyFields[key]
	if !ok {
		fields = make(map[string]PropertyChange)
		l.dirtyFields[key] = fields
		l.keys.Add(key)
	}
	fields[field] = change
}

// MarkClean forgets the change for one property of an entity.
func (l *ChangeLedger[K]) MarkClean(key K, field string) {
	fields, ok := l.dirtyFields[key]
	if !ok {
		return
	}
	delete(fields, field)
	if len(fields) == 0 {
		l.Forget(key)
	}
}

// Forget drops every change recorded for an entity.
func (l *ChangeLedger[K]) Forget(key K) {
	delete(l.dirtyFields, key)
	l.keys.Remove(key)
}

// Dirty checks if a property of an entity has been modified.
func (l *ChangeLedger[K]) Dirty(key K, field string) bool {
	_, ok := l.dirtyFields[key][field]
	return ok
}

// Change returns the recorded change for a property, if any.
func (l *ChangeLedger[K]) Change(key K, field string) (PropertyChange, bool) {
	change, ok := l.dirtyFields[key][field]
	return change, ok
}

// HasKey returns true if the entity has at least one dirty property.
func (l *ChangeLedger[K]) HasKey(key K) bool {
	return l.keys.Has(key)
}

// Clear clears all dirty markers.
func (l *ChangeLedger[K]) Clear() {
	l.dirtyFields = make(map[K]map[string]PropertyChange)
	l.keys.Clear()
}

// HasChanges returns true if any property of any entity has been modified.
func (l *ChangeLedger[K]) HasChanges() bool {
	return l.keys.Len() > 0
}

// Keys returns the entities with dirty properties, in the order they first became dirty.
func (l *ChangeLedger[K]) Keys() []K {
	return l.keys.Keys()
}

// DirtyFields returns the dirty property names of an entity, ordered as in fieldOrder.
func (l *ChangeLedger[K]) DirtyFields(key K, fieldOrder []string) []string {
	fields := l.dirtyFields[key]
	out := make([]string, 0, len(fields))
	for _, name := range fieldOrder {
		if _, ok := fields[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
