package domain

import "fmt"

// AnyTracker is the type-erased view of a Tracker. Editor code that does not know
// a table's key and value types at compile time drives the tracker through it.
//
// Keys and values are boxed. A boxed value is either the table's value type or a
// property-name keyed record (map[string]any). Conversion failures are reported
// as ErrKeyType or ErrValueType; everything past the conversion behaves exactly
// like the typed Tracker.
type AnyTracker interface {
	Name() string
	IsScalar() bool
	PropertyNames() []string

	InitializeBaseline(entities map[any]any) error
	UpdateBaseline(entities map[any]any) error
	TrackPropertyChange(key any, property string, value any) (bool, error)
	TrackChange(key, value any) error
	TrackAdd(key, value any) error
	TrackDelete(key any) error
	RevertAll()
	RevertKey(key any) error
	RevertProperty(key any, property string) error

	HasModifications() bool
	State(key any) EntityState
	IsModified(key any) bool
	IsPropertyModified(key any, property string) bool
	ModifiedProperties(key any) []string
	PropertyChange(key any, property string) (PropertyChange, bool)
	ModifiedKeys() []any
	AddedKeys() []any
	DeletedKeys() []any
	PropertyBaselineValue(key any, property string) (any, bool)
	BaselineValue(key any) (any, bool)
	CurrentValue(key any) (any, bool)
	BaselineRecord(key any) (map[string]any, bool)
	CurrentRecord(key any) (map[string]any, bool)

	OnModifiedStateChanged(fn ModifiedStateListener) func()
}

// Untyped returns the type-erased adapter over t. The adapter shares t's state.
func (t *Tracker[K, V]) Untyped() AnyTracker {
	return &untyped[K, V]{t: t}
}

type untyped[K comparable, V any] struct {
	t *Tracker[K, V]
}

func (u *untyped[K, V]) Name() string            { return u.t.descriptor.Name() }
func (u *untyped[K, V]) IsScalar() bool          { return u.t.descriptor.IsScalar() }
func (u *untyped[K, V]) PropertyNames() []string { return u.t.descriptor.PropertyNames() }

func (u *untyped[K, V]) InitializeBaseline(entities map[any]any) error {
	typed, err := u.entities(entities)
	if err != nil {
		return err
	}
	u.t.InitializeBaseline(typed)
	return nil
}

func (u *untyped[K, V]) UpdateBaseline(entities map[any]any) error {
	typed, err := u.entities(entities)
	if err != nil {
		return err
	}
	u.t.UpdateBaseline(typed)
	return nil
}

func (u *untyped[K, V]) TrackPropertyChange(key any, property string, value any) (bool, error) {
	k, err := u.key(key)
	if err != nil {
		return false, err
	}
	prop, ok := u.t.descriptor.Lookup(property)
	if !ok {
		return false, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, u.Name(), property)
	}
	if err := prop.Check(value); err != nil {
		return false, err
	}
	return u.t.TrackPropertyChange(k, property, value), nil
}

func (u *untyped[K, V]) TrackChange(key, value any) error {
	k, v, err := u.pair(key, value)
	if err != nil {
		return err
	}
	u.t.TrackChange(k, v)
	return nil
}

func (u *untyped[K, V]) TrackAdd(key, value any) error {
	k, v, err := u.pair(key, value)
	if err != nil {
		return err
	}
	u.t.TrackAdd(k, v)
	return nil
}

func (u *untyped[K, V]) TrackDelete(key any) error {
	k, err := u.key(key)
	if err != nil {
		return err
	}
	u.t.TrackDelete(k)
	return nil
}

func (u *untyped[K, V]) RevertAll() { u.t.RevertAll() }

func (u *untyped[K, V]) RevertKey(key any) error {
	k, err := u.key(key)
	if err != nil {
		return err
	}
	u.t.RevertKey(k)
	return nil
}

func (u *untyped[K, V]) RevertProperty(key any, property string) error {
	k, err := u.key(key)
	if err != nil {
		return err
	}
	if _, ok := u.t.descriptor.Lookup(property); !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, u.Name(), property)
	}
	u.t.RevertProperty(k, property)
	return nil
}

func (u *untyped[K, V]) HasModifications() bool { return u.t.HasModifications() }

func (u *untyped[K, V]) State(key any) EntityState {
	k, err := u.key(key)
	if err != nil {
		return StateUnchanged
	}
	return u.t.State(k)
}

func (u *untyped[K, V]) IsModified(key any) bool {
	k, err := u.key(key)
	return err == nil && u.t.IsModified(k)
}

func (u *untyped[K, V]) IsPropertyModified(key any, property string) bool {
	k, err := u.key(key)
	return err == nil && u.t.IsPropertyModified(k, property)
}

func (u *untyped[K, V]) ModifiedProperties(key any) []string {
	k, err := u.key(key)
	if err != nil {
		return []string{}
	}
	return u.t.ModifiedProperties(k)
}

func (u *untyped[K, V]) PropertyChange(key any, property string) (PropertyChange, bool) {
	k, err := u.key(key)
	if err != nil {
		return PropertyChange{}, false
	}
	return u.t.PropertyChange(k, property)
}

func (u *untyped[K, V]) ModifiedKeys() []any { return boxKeys(u.t.ModifiedKeys()) }
func (u *untyped[K, V]) AddedKeys() []any    { return boxKeys(u.t.AddedKeys()) }
func (u *untyped[K, V]) DeletedKeys() []any  { return boxKeys(u.t.DeletedKeys()) }

func (u *untyped[K, V]) PropertyBaselineValue(key any, property string) (any, bool) {
	k, err := u.key(key)
	if err != nil {
		return nil, false
	}
	return u.t.PropertyBaselineValue(k, property)
}

func (u *untyped[K, V]) BaselineValue(key any) (any, bool) {
	k, err := u.key(key)
	if err != nil {
		return nil, false
	}
	return u.t.BaselineValue(k)
}

func (u *untyped[K, V]) CurrentValue(key any) (any, bool) {
	k, err := u.key(key)
	if err != nil {
		return nil, false
	}
	return u.t.CurrentValue(k)
}

func (u *untyped[K, V]) BaselineRecord(key any) (map[string]any, bool) {
	k, err := u.key(key)
	if err != nil {
		return nil, false
	}
	v, ok := u.t.BaselineValue(k)
	if !ok {
		return nil, false
	}
	return u.t.descriptor.Encode(v), true
}

func (u *untyped[K, V]) CurrentRecord(key any) (map[string]any, bool) {
	k, err := u.key(key)
	if err != nil {
		return nil, false
	}
	v, ok := u.t.CurrentValue(k)
	if !ok {
		return nil, false
	}
	return u.t.descriptor.Encode(v), true
}

func (u *untyped[K, V]) OnModifiedStateChanged(fn ModifiedStateListener) func() {
	return u.t.OnModifiedStateChanged(fn)
}

func (u *untyped[K, V]) key(key any) (K, error) {
	k, err := Coerce[K](key)
	if err != nil {
		var zero K
		return zero, fmt.Errorf("%w: %s: %w", ErrKeyType, u.Name(), err)
	}
	return k, nil
}

// value converts a boxed value. A record for a structured entity is decoded onto
// base, so a partial record only replaces the properties it names.
func (u *untyped[K, V]) value(value any, base func() V) (V, error) {
	if v, ok := value.(V); ok {
		return v, nil
	}
	if record, ok := value.(map[string]any); ok && !u.t.descriptor.IsScalar() {
		return u.t.descriptor.DecodeOnto(base(), record)
	}
	v, err := Coerce[V](value)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("%w: %s: %w", ErrValueType, u.Name(), err)
	}
	return v, nil
}

// pair converts a key and a value for an edit. Partial records start from the
// working entity, or from the baseline entity when the key was deleted.
func (u *untyped[K, V]) pair(key, value any) (K, V, error) {
	k, err := u.key(key)
	if err != nil {
		var zero V
		return k, zero, err
	}
	v, err := u.value(value, func() V {
		if cur, ok := u.t.CurrentValue(k); ok {
			return cur
		}
		if base, ok := u.t.BaselineValue(k); ok {
			return base
		}
		return u.t.descriptor.New()
	})
	return k, v, err
}

// fullPair converts a key and a complete value for a baseline.
func (u *untyped[K, V]) fullPair(key, value any) (K, V, error) {
	k, err := u.key(key)
	if err != nil {
		var zero V
		return k, zero, err
	}
	v, err := u.value(value, u.t.descriptor.New)
	return k, v, err
}

func (u *untyped[K, V]) entities(entities map[any]any) (map[K]V, error) {
	typed := make(map[K]V, len(entities))
	for key, value := range entities {
		k, v, err := u.fullPair(key, value)
		if err != nil {
			return nil, err
		}
		typed[k] = v
	}
	return typed, nil
}

func boxKeys[K comparable](keys []K) []any {
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}
