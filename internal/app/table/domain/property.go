package domain

import (
	"fmt"
	"sort"
)

// ValueProperty is the synthetic property of scalar entities; it stands for the whole value.
const ValueProperty = "Value"

// Property is one named, independently readable and writable attribute of V.
type Property[V any] struct {
	name  string
	get   func(V) any
	set   func(V, any) (V, error)
	check func(any) error
}

// Name returns the property name.
func (p Property[V]) Name() string { return p.name }

// Get reads the property from v.
func (p Property[V]) Get(v V) any { return p.get(v) }

// Set writes value into v and returns the updated entity. For pointer entities
// the pointee is mutated in place; for value entities a modified copy is returned.
func (p Property[V]) Set(v V, value any) (V, error) { return p.set(v, value) }

// Check reports whether value can be written to the property, without writing it.
func (p Property[V]) Check(value any) error { return p.check(value) }

func checker[F any](name string) func(any) error {
	return func(value any) error {
		if _, err := Coerce[F](value); err != nil {
			return fmt.Errorf("property %s: %w", name, err)
		}
		return nil
	}
}

// Field declares a property of a value-typed entity.
func Field[V, F any](name string, get func(V) F, set func(*V, F)) Property[V] {
	return Property[V]{
		name: name,
		get:  func(v V) any { return get(v) },
		set: func(v V, value any) (V, error) {
			f, err := Coerce[F](value)
			if err != nil {
				return v, fmt.Errorf("property %s: %w", name, err)
			}
			set(&v, f)
			return v, nil
		},
		check: checker[F](name),
	}
}

// PtrField declares a property of a pointer-typed entity.
func PtrField[T, F any](name string, get func(*T) F, set func(*T, F)) Property[*T] {
	return Property[*T]{
		name: name,
		get: func(v *T) any {
			if v == nil {
				var zero F
				return zero
			}
			return get(v)
		},
		set: func(v *T, value any) (*T, error) {
			f, err := Coerce[F](value)
			if err != nil {
				return v, fmt.Errorf("property %s: %w", name, err)
			}
			if v == nil {
				v = new(T)
			}
			set(v, f)
			return v, nil
		},
		check: checker[F](name),
	}
}

// Descriptor is the accessor table of an entity type: its name and its ordered,
// stable set of properties.
type Descriptor[V any] struct {
	name     string
	scalar   bool
	newValue func() V
	props    []Property[V]
	index    map[string]int
}

// NewDescriptor declares a structured entity type. newValue builds an empty
// entity for decoding; nil means the zero value of V. It panics on empty or
// duplicate property names, which are declaration bugs.
func NewDescriptor[V any](name string, newValue func() V, props ...Property[V]) *Descriptor[V] {
	d := &Descriptor[V]{
		name:     name,
		newValue: newValue,
		props:    props,
		index:    make(map[string]int, len(props)),
	}
	for i, p := range props {
		if p.name == "" {
			panic(fmt.Sprintf("descriptor %s: property %d has no name", name, i))
		}
		if _, dup := d.index[p.name]; dup {
			panic(fmt.Sprintf("descriptor %s: duplicate property %s", name, p.name))
		}
		d.index[p.name] = i
	}
	return d
}

// ScalarDescriptor declares a primitive/opaque entity type whose only property is Value.
func ScalarDescriptor[V any](name string) *Descriptor[V] {
	d := NewDescriptor(name, nil, Property[V]{
		name: ValueProperty,
		get:  func(v V) any { return v },
		set: func(v V, value any) (V, error) {
			next, err := Coerce[V](value)
			if err != nil {
				return v, fmt.Errorf("property %s: %w", ValueProperty, err)
			}
			return next, nil
		},
		check: checker[V](ValueProperty),
	})
	d.scalar = true
	return d
}

// Name returns the entity type name.
func (d *Descriptor[V]) Name() string { return d.name }

// IsScalar reports whether the entity is a primitive with the single Value property.
func (d *Descriptor[V]) IsScalar() bool { return d.scalar }

// Properties returns the properties in declaration order.
func (d *Descriptor[V]) Properties() []Property[V] {
	out := make([]Property[V], len(d.props))
	copy(out, d.props)
	return out
}

// PropertyNames returns the property names in declaration order.
func (d *Descriptor[V]) PropertyNames() []string {
	names := make([]string, len(d.props))
	for i, p := range d.props {
		names[i] = p.name
	}
	return names
}

// Lookup finds a property by name.
func (d *Descriptor[V]) Lookup(name string) (Property[V], bool) {
	i, ok := d.index[name]
	if !ok {
		return Property[V]{}, false
	}
	return d.props[i], true
}

// New returns an empty entity.
func (d *Descriptor[V]) New() V {
	if d.newValue == nil {
		var zero V
		return zero
	}
	return d.newValue()
}

// Encode flattens an entity into a property-name keyed record.
func (d *Descriptor[V]) Encode(v V) map[string]any {
	record := make(map[string]any, len(d.props))
	for _, p := range d.props {
		record[p.name] = p.get(v)
	}
	return record
}

// Decode builds an entity from a property-name keyed record. Missing properties
// keep their empty value; unknown ones are rejected.
func (d *Descriptor[V]) Decode(record map[string]any) (V, error) {
	return d.DecodeOnto(d.New(), record)
}

// DecodeOnto writes the properties present in record into base and returns the
// result. Properties missing from record keep their value from base. Pointer
// entities are updated in place, so callers pass a copy they own.
func (d *Descriptor[V]) DecodeOnto(base V, record map[string]any) (V, error) {
	names := make([]string, 0, len(record))
	for name := range record {
		if _, ok := d.index[name]; !ok {
			var zero V
			return zero, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, d.name, name)
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return d.index[names[i]] < d.index[names[j]] })

	v := base
	for _, name := range names {
		var err error
		v, err = d.props[d.index[name]].set(v, record[name])
		if err != nil {
			var zero V
			return zero, fmt.Errorf("%w: %s: %w", ErrValueType, d.name, err)
		}
	}
	return v, nil
}
