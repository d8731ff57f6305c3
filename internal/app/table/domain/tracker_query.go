package domain

// HasModifications reports whether anything differs from the baseline.
func (t *Tracker[K, V]) HasModifications() bool {
	return t.ledger.HasChanges() || t.added.Len() > 0 || t.deleted.Len() > 0
}

// State classifies key relative to the baseline.
func (t *Tracker[K, V]) State(key K) EntityState {
	switch {
	case t.added.Has(key):
		return StateAdded
	case t.deleted.Has(key):
		return StateDeleted
	case t.ledger.HasKey(key):
		return StateModified
	default:
		return StateUnchanged
	}
}

// IsModified reports whether key has at least one modified property.
func (t *Tracker[K, V]) IsModified(key K) bool {
	return t.ledger.HasKey(key)
}

// IsPropertyModified reports whether one property of key differs from the baseline.
func (t *Tracker[K, V]) IsPropertyModified(key K, property string) bool {
	return t.ledger.Dirty(key, property)
}

// ModifiedProperties returns the modified property names of key in declaration order.
func (t *Tracker[K, V]) ModifiedProperties(key K) []string {
	return t.ledger.DirtyFields(key, t.descriptor.PropertyNames())
}

// PropertyChange returns the (baseline, current) pair recorded for a property.
func (t *Tracker[K, V]) PropertyChange(key K, property string) (PropertyChange, bool) {
	change, ok := t.ledger.Change(key, property)
	if !ok {
		return PropertyChange{}, false
	}
	return PropertyChange{
		Baseline: t.values.Clone(change.Baseline),
		Current:  t.values.Clone(change.Current),
	}, true
}

// ModifiedKeys returns the keys with at least one modified property.
func (t *Tracker[K, V]) ModifiedKeys() []K {
	return t.ledger.Keys()
}

// AddedKeys returns the keys added since the baseline, in the order they were added.
func (t *Tracker[K, V]) AddedKeys() []K {
	return t.added.Keys()
}

// DeletedKeys returns the baseline keys deleted from the working copy.
func (t *Tracker[K, V]) DeletedKeys() []K {
	return t.deleted.Keys()
}

// PropertyBaselineValue returns the baseline value of one property of key.
func (t *Tracker[K, V]) PropertyBaselineValue(key K, property string) (any, bool) {
	base, ok := t.baseline[key]
	if !ok {
		return nil, false
	}
	prop, ok := t.descriptor.Lookup(property)
	if !ok {
		return nil, false
	}
	return t.values.Clone(prop.Get(base)), true
}

// BaselineValue returns a copy of the baseline entity for key.
func (t *Tracker[K, V]) BaselineValue(key K) (V, bool) {
	v, ok := t.baseline[key]
	if !ok {
		var zero V
		return zero, false
	}
	return t.clone(v), true
}

// CurrentValue returns a copy of the working entity for key.
func (t *Tracker[K, V]) CurrentValue(key K) (V, bool) {
	v, ok := t.current[key]
	if !ok {
		var zero V
		return zero, false
	}
	return t.clone(v), true
}

// Baseline returns a copy of the whole baseline snapshot.
func (t *Tracker[K, V]) Baseline() map[K]V {
	return t.cloneAll(t.baseline)
}

// Current returns a copy of the whole working snapshot.
func (t *Tracker[K, V]) Current() map[K]V {
	return t.cloneAll(t.current)
}

// Len returns the number of entities in the working copy.
func (t *Tracker[K, V]) Len() int {
	return len(t.current)
}

func (t *Tracker[K, V]) cloneAll(src map[K]V) map[K]V {
	out := make(map[K]V, len(src))
	for key, value := range src {
		out[key] = t.clone(value)
	}
	return out
}
