// Package session holds the editable tables of one editor session. The registry
// is built explicitly at startup and passed to the transports; there is no
// process-wide table lookup.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/penspanic/Datra-sub005/internal/app/table/contracts"
	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
	"github.com/penspanic/Datra-sub005/internal/app/table/queries/describe_changes"
)

var (
	// ErrTableNotFound is returned when a table name is not registered.
	ErrTableNotFound = errors.New("table not found")

	// ErrDuplicateTable is returned when a table name is registered twice.
	ErrDuplicateTable = errors.New("table already registered")
)

// Loader replaces a table's baseline with the stored rows.
type Loader interface {
	Execute(ctx context.Context) (*contracts.LoadResult, error)
}

// Saver writes a table's pending changes.
type Saver interface {
	Execute(ctx context.Context) (*contracts.SaveResult, error)
}

// Describer reports a table's pending changes.
type Describer interface {
	Execute(ctx context.Context, req *describe_changes.Request) (*contracts.ChangeReport, error)
}

// Table is one editable table. Every access goes through its mutex because the
// tracker itself is not safe for concurrent use.
type Table struct {
	name     string
	tracker  domain.AnyTracker
	loader   Loader
	saver    Saver
	describe Describer
	schema   *jsonschema.Schema

	mu sync.Mutex
}

// NewTable assembles a Table.
func NewTable(name string, tracker domain.AnyTracker, loader Loader, saver Saver, describe Describer, schema *jsonschema.Schema) *Table {
	return &Table{
		name:     name,
		tracker:  tracker,
		loader:   loader,
		saver:    saver,
		describe: describe,
		schema:   schema,
	}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Schema returns the JSON schema of one row's value.
func (t *Table) Schema() *jsonschema.Schema { return t.schema }

// WithLock runs fn with exclusive access to the tracker.
func (t *Table) WithLock(fn func(tracker domain.AnyTracker) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.tracker)
}

// Load replaces the baseline with the stored rows.
func (t *Table) Load(ctx context.Context) (*contracts.LoadResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loader.Execute(ctx)
}

// Save writes pending changes and promotes them to the baseline.
func (t *Table) Save(ctx context.Context) (*contracts.SaveResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saver.Execute(ctx)
}

// Describe reports pending changes.
func (t *Table) Describe(ctx context.Context, req *describe_changes.Request) (*contracts.ChangeReport, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.describe.Execute(ctx, req)
}

// Registry is the set of tables of one session.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Register adds a table.
func (r *Registry) Register(table *Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tables[table.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTable, table.Name())
	}
	r.tables[table.Name()] = table
	return nil
}

// Lookup finds a table by name.
func (r *Registry) Lookup(name string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, ok := r.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return table, nil
}

// Names returns the registered table names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadAll loads every table, stopping at the first failure.
func (r *Registry) LoadAll(ctx context.Context) ([]*contracts.LoadResult, error) {
	names := r.Names()
	results := make([]*contracts.LoadResult, 0, len(names))
	for _, name := range names {
		table, err := r.Lookup(name)
		if err != nil {
			return results, err
		}
		result, err := table.Load(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}
