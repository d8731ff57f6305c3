package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penspanic/Datra-sub005/internal/app/table/contracts"
	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
	"github.com/penspanic/Datra-sub005/internal/app/table/queries/describe_changes"
	"github.com/penspanic/Datra-sub005/internal/datatables"
	"github.com/penspanic/Datra-sub005/internal/pkg/clock"
	"github.com/penspanic/Datra-sub005/internal/pkg/committer"
)

type memoryRepo struct {
	rows map[string]*datatables.Item
}

func (r *memoryRepo) TableName() string { return "items" }

func (r *memoryRepo) LoadAll(ctx context.Context) (map[string]*datatables.Item, error) {
	return r.rows, nil
}

func (r *memoryRepo) InsertMut(key string, value *datatables.Item) (*spanner.Mutation, error) {
	return spanner.InsertOrUpdate("items", []string{"item_id"}, []interface{}{key}), nil
}

func (r *memoryRepo) UpdateMut(key string, value *datatables.Item, properties []string) (*spanner.Mutation, error) {
	return spanner.Update("items", []string{"item_id"}, []interface{}{key}), nil
}

func (r *memoryRepo) DeleteMut(key string) (*spanner.Mutation, error) {
	return spanner.Delete("items", spanner.Key{key}), nil
}

type nopJournal struct{}

func (nopJournal) NewEntry(table string, key any, operation string, payload map[string]any) *contracts.JournalEntry {
	return &contracts.JournalEntry{EntryID: "e", Table: table, Operation: operation}
}

func (nopJournal) InsertMut(entry *contracts.JournalEntry) *spanner.Mutation { return nil }

type countingApplier struct{ applied int }

func (a *countingApplier) Apply(ctx context.Context, plan *committer.CommitPlan) error {
	a.applied += plan.Count()
	return nil
}

func bindItems(t *testing.T) (*Table, *countingApplier) {
	t.Helper()
	applier := &countingApplier{}
	repo := &memoryRepo{rows: map[string]*datatables.Item{"id1": {Name: "Sword", Value: 10}}}
	table := Bind[string, *datatables.Item](repo, domain.NewTracker[string](datatables.NewItemDescriptor()), Deps{
		Journal:   nopJournal{},
		Committer: applier,
		Clock:     clock.NewMockClock(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
	}, &datatables.Item{})
	return table, applier
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	items, _ := bindItems(t)
	strings := NewTable("localized_strings", nil, nil, nil, nil, nil)

	require.NoError(t, r.Register(items))
	require.NoError(t, r.Register(strings))
	assert.ErrorIs(t, r.Register(items), ErrDuplicateTable)

	assert.Equal(t, []string{"items", "localized_strings"}, r.Names())

	found, err := r.Lookup("items")
	require.NoError(t, err)
	assert.Same(t, items, found)

	_, err = r.Lookup("weapons")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestTable_EditSaveCycle(t *testing.T) {
	table, applier := bindItems(t)
	ctx := context.Background()

	loaded, err := table.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Rows)

	err = table.WithLock(func(tracker domain.AnyTracker) error {
		_, err := tracker.TrackPropertyChange("id1", "Name", "Shield")
		return err
	})
	require.NoError(t, err)

	report, err := table.Describe(ctx, &describe_changes.Request{})
	require.NoError(t, err)
	assert.True(t, report.HasModifications)
	assert.Equal(t, 1, report.Modified)

	saved, err := table.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Updated)
	assert.Equal(t, 1, applier.applied)

	report, err = table.Describe(ctx, nil)
	require.NoError(t, err)
	assert.False(t, report.HasModifications)
}

func TestTable_WithLockPropagatesErrors(t *testing.T) {
	table, _ := bindItems(t)
	boom := errors.New("boom")
	assert.ErrorIs(t, table.WithLock(func(domain.AnyTracker) error { return boom }), boom)
}

func TestTable_SerializesAccess(t *testing.T) {
	table, _ := bindItems(t)
	_, err := table.Load(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = table.WithLock(func(tracker domain.AnyTracker) error {
				_, err := tracker.TrackPropertyChange("id1", "Value", i)
				return err
			})
		}(i)
	}
	wg.Wait()

	err = table.WithLock(func(tracker domain.AnyTracker) error {
		_, ok := tracker.CurrentValue("id1")
		assert.True(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestRegistry_LoadAll(t *testing.T) {
	r := NewRegistry()
	items, _ := bindItems(t)
	require.NoError(t, r.Register(items))

	results, err := r.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "items", results[0].Table)
}

type namedRepo struct {
	*memoryRepo
	name string
}

func (r namedRepo) TableName() string { return r.name }

func TestRegistry_LoadAllWhileRegistering(t *testing.T) {
	r := NewRegistry()
	items, _ := bindItems(t)
	require.NoError(t, r.Register(items))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			repo := namedRepo{memoryRepo: &memoryRepo{rows: map[string]*datatables.Item{}}, name: fmt.Sprintf("extra_%02d", i)}
			table := Bind[string, *datatables.Item](repo, domain.NewTracker[string](datatables.NewItemDescriptor()), Deps{
				Journal:   nopJournal{},
				Committer: &countingApplier{},
				Clock:     clock.NewMockClock(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
			}, &datatables.Item{})
			assert.NoError(t, r.Register(table))
		}
	}()
	for i := 0; i < 20; i++ {
		results, err := r.LoadAll(context.Background())
		require.NoError(t, err)
		assert.NotEmpty(t, results)
	}
	wg.Wait()

	results, err := r.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, 21)
}

func TestSchema(t *testing.T) {
	table, _ := bindItems(t)
	schema := table.Schema()
	require.NotNil(t, schema)
	assert.Contains(t, schema.Required, "Name")

	scalar := Schema("")
	require.NotNil(t, scalar)
	assert.Equal(t, "string", scalar.Type)
}
