package domain

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/penspanic/Datra-sub005/internal/pkg/structural"
)

// Tracker holds a baseline snapshot and a working copy of keyed entities and
// tracks the delta between them: per-property changes of baseline entities,
// added keys and deleted keys.
//
// A Tracker is owned by a single editor session and is not safe for concurrent use.
type Tracker[K comparable, V any] struct {
	descriptor *Descriptor[V]
	values     *structural.Service
	log        *zap.Logger

	baseline map[K]V
	current  map[K]V

	ledger  *ChangeLedger[K]
	added   *keySet[K]
	deleted *keySet[K]

	notifier *modifiedStateNotifier
}

// Option configures a Tracker.
type Option func(*trackerOptions)

type trackerOptions struct {
	log    *zap.Logger
	values *structural.Service
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(o *trackerOptions) { o.log = log }
}

// WithStructural sets the clone/equality service.
func WithStructural(values *structural.Service) Option {
	return func(o *trackerOptions) { o.values = values }
}

// NewTracker creates an empty Tracker for entities described by descriptor.
func NewTracker[K comparable, V any](descriptor *Descriptor[V], opts ...Option) *Tracker[K, V] {
	o := trackerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.values == nil {
		o.values = structural.New(o.log)
	}

	return &Tracker[K, V]{
		descriptor: descriptor,
		values:     o.values,
		log:        o.log.With(zap.String("entity", descriptor.Name())),
		baseline:   make(map[K]V),
		current:    make(map[K]V),
		ledger:     NewChangeLedger[K](),
		added:      newKeySet[K](),
		deleted:    newKeySet[K](),
		notifier:   newModifiedStateNotifier(),
	}
}

// Descriptor returns the entity descriptor.
func (t *Tracker[K, V]) Descriptor() *Descriptor[V] { return t.descriptor }

// OnModifiedStateChanged registers fn to be called whenever HasModifications flips.
// The returned function unregisters it.
func (t *Tracker[K, V]) OnModifiedStateChanged(fn ModifiedStateListener) func() {
	return t.notifier.subscribe(fn)
}

// InitializeBaseline discards all tracked state and loads entities as both the
// baseline and the working copy. The two snapshots share no memory.
func (t *Tracker[K, V]) InitializeBaseline(entities map[K]V) {
	defer t.publish()

	t.baseline = make(map[K]V, len(entities))
	t.current = make(map[K]V, len(entities))
	t.ledger.Clear()
	t.added.Clear()
	t.deleted.Clear()

	for key, value := range entities {
		t.baseline[key] = t.clone(value)
		t.current[key] = t.clone(value)
	}
}

// UpdateBaseline re-establishes the baseline from freshly persisted data. It behaves
// exactly like InitializeBaseline: every tracked change is forgotten.
func (t *Tracker[K, V]) UpdateBaseline(entities map[K]V) {
	t.InitializeBaseline(entities)
}

// TrackPropertyChange records that property of key now holds value and reports
// whether the property differs from the baseline afterwards. Keys that are not
// part of the baseline (or are deleted) and unknown properties are ignored.
func (t *Tracker[K, V]) TrackPropertyChange(key K, property string, value any) bool {
	defer t.publish()

	prop, ok := t.descriptor.Lookup(property)
	if !ok {
		t.log.Warn("ignoring change to unknown property", zap.String("property", property))
		return false
	}
	return t.trackProperty(key, prop, value)
}

// TrackChange diffs every property of value against the baseline entity. Keys that
// are not part of the baseline are tracked as additions. A deleted baseline key is
// restored first, so re-adding it reads as a modification.
func (t *Tracker[K, V]) TrackChange(key K, value V) {
	defer t.publish()
	t.trackChange(key, value)
}

// TrackAdd records a new entity. A key that exists in the baseline is tracked as a
// change instead.
func (t *Tracker[K, V]) TrackAdd(key K, value V) {
	defer t.publish()
	t.trackAdd(key, value)
}

// TrackDelete removes key from the working copy. Added keys are erased without a
// trace; baseline keys become Deleted and lose their property changes.
func (t *Tracker[K, V]) TrackDelete(key K) {
	defer t.publish()
	t.trackDelete(key)
}

// RevertAll discards every tracked change and resets the working copy to the baseline.
func (t *Tracker[K, V]) RevertAll() {
	defer t.publish()

	t.ledger.Clear()
	t.added.Clear()
	t.deleted.Clear()

	t.current = make(map[K]V, len(t.baseline))
	for key, value := range t.baseline {
		t.current[key] = t.clone(value)
	}
}

// RevertKey restores one entity to its baseline state. Added keys are erased.
func (t *Tracker[K, V]) RevertKey(key K) {
	defer t.publish()

	if t.added.Has(key) {
		t.trackDelete(key)
		return
	}

	base, ok := t.baseline[key]
	if !ok {
		return
	}
	t.current[key] = t.clone(base)
	t.ledger.Forget(key)
	t.deleted.Remove(key)
}

// RevertProperty restores one property of a baseline entity to its baseline value.
func (t *Tracker[K, V]) RevertProperty(key K, property string) {
	defer t.publish()

	prop, ok := t.descriptor.Lookup(property)
	if !ok {
		return
	}
	base, ok := t.baseline[key]
	if !ok {
		return
	}
	t.trackProperty(key, prop, prop.Get(base))
}

func (t *Tracker[K, V]) trackProperty(key K, prop Property[V], value any) bool {
	base, ok := t.baseline[key]
	if !ok || t.deleted.Has(key) {
		return false
	}

	cur, ok := t.current[key]
	if !ok {
		cur = t.clone(base)
	}

	next, err := prop.Set(cur, t.values.Clone(value))
	if err != nil {
		t.log.Warn("ignoring property change",
			zap.String("key", fmt.Sprint(key)),
			zap.String("property", prop.Name()),
			zap.Error(err),
		)
		return t.ledger.Dirty(key, prop.Name())
	}
	t.current[key] = next

	baseValue := prop.Get(base)
	newValue := prop.Get(next)
	if t.values.Equal(baseValue, newValue) {
		t.ledger.MarkClean(key, prop.Name())
		return false
	}

	t.ledger.MarkDirty(key, prop.Name(), PropertyChange{
		Baseline: t.values.Clone(baseValue),
		Current:  t.values.Clone(newValue),
	})
	return true
}

func (t *Tracker[K, V]) trackChange(key K, value V) {
	base, ok := t.baseline[key]
	if !ok {
		t.trackAdd(key, value)
		return
	}

	if t.deleted.Has(key) {
		t.deleted.Remove(key)
		t.current[key] = t.clone(base)
	}

	for _, prop := range t.descriptor.props {
		t.trackProperty(key, prop, prop.Get(value))
	}
}

func (t *Tracker[K, V]) trackAdd(key K, value V) {
	if _, ok := t.baseline[key]; ok {
		t.trackChange(key, value)
		return
	}

	t.current[key] = t.clone(value)
	t.added.Add(key)
	t.deleted.Remove(key)
	t.checkConsistency(key)
}

func (t *Tracker[K, V]) trackDelete(key K) {
	delete(t.current, key)

	if t.added.Has(key) {
		t.added.Remove(key)
		return
	}

	if _, ok := t.baseline[key]; ok {
		t.deleted.Add(key)
		t.ledger.Forget(key)
		t.checkConsistency(key)
	}
}

func (t *Tracker[K, V]) clone(v V) V {
	return structural.CloneOf(t.values, v)
}

// checkConsistency reports a key that is both added and deleted. Construction
// prevents it; seeing one is a bug in the tracker.
func (t *Tracker[K, V]) checkConsistency(key K) {
	if t.added.Has(key) && t.deleted.Has(key) {
		t.log.DPanic("key is both added and deleted", zap.String("key", fmt.Sprint(key)))
	}
}

func (t *Tracker[K, V]) publish() {
	t.notifier.publish(t.HasModifications())
}
