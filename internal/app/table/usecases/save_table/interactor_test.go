package save_table

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penspanic/Datra-sub005/internal/app/table/contracts"
	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
	"github.com/penspanic/Datra-sub005/internal/datatables"
	"github.com/penspanic/Datra-sub005/internal/pkg/clock"
	"github.com/penspanic/Datra-sub005/internal/pkg/committer"
)

type updateCall struct {
	key        string
	properties []string
}

type fakeTableRepo struct {
	inserted []string
	updated  []updateCall
	deleted  []string
	failOn   string
}

func (r *fakeTableRepo) TableName() string { return "items" }

func (r *fakeTableRepo) LoadAll(ctx context.Context) (map[string]*datatables.Item, error) {
	return nil, nil
}

func (r *fakeTableRepo) InsertMut(key string, value *datatables.Item) (*spanner.Mutation, error) {
	if key == r.failOn {
		return nil, errors.New("cannot encode")
	}
	r.inserted = append(r.inserted, key)
	return spanner.InsertOrUpdate("items", []string{"item_id"}, []interface{}{key}), nil
}

func (r *fakeTableRepo) UpdateMut(key string, value *datatables.Item, properties []string) (*spanner.Mutation, error) {
	r.updated = append(r.updated, updateCall{key: key, properties: properties})
	return spanner.Update("items", []string{"item_id"}, []interface{}{key}), nil
}

func (r *fakeTableRepo) DeleteMut(key string) (*spanner.Mutation, error) {
	r.deleted = append(r.deleted, key)
	return spanner.Delete("items", spanner.Key{key}), nil
}

type fakeJournalRepo struct {
	entries   []*contracts.JournalEntry
	mutations []*spanner.Mutation
}

func (r *fakeJournalRepo) NewEntry(table string, key any, operation string, payload map[string]any) *contracts.JournalEntry {
	entry := &contracts.JournalEntry{EntryID: "e", Table: table, EntityKey: key.(string), Operation: operation, Payload: payload}
	r.entries = append(r.entries, entry)
	return entry
}

func (r *fakeJournalRepo) InsertMut(entry *contracts.JournalEntry) *spanner.Mutation {
	mut := spanner.Insert("table_change_journal", []string{"entry_id"}, []interface{}{entry.EntryID})
	r.mutations = append(r.mutations, mut)
	return mut
}

type fakeApplier struct {
	plans []*committer.CommitPlan
	err   error
}

func (a *fakeApplier) Apply(ctx context.Context, plan *committer.CommitPlan) error {
	a.plans = append(a.plans, plan)
	return a.err
}

type fixture struct {
	repo    *fakeTableRepo
	journal *fakeJournalRepo
	applier *fakeApplier
	tracker *domain.Tracker[string, *datatables.Item]
	clock   *clock.MockClock
	uc      *Interactor[string, *datatables.Item]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:    &fakeTableRepo{},
		journal: &fakeJournalRepo{},
		applier: &fakeApplier{},
		tracker: domain.NewTracker[string](datatables.NewItemDescriptor()),
		clock:   clock.NewMockClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)),
	}
	f.tracker.InitializeBaseline(map[string]*datatables.Item{
		"id1": {Name: "Sword", Value: 10},
		"id3": {Name: "Axe", Value: 7},
	})
	f.uc = NewInteractor[string, *datatables.Item](f.repo, f.journal, f.applier, f.tracker, f.clock, nil)
	return f
}

func TestInteractor_NothingToSave(t *testing.T) {
	f := newFixture(t)

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Changed())
	assert.Empty(t, f.applier.plans)
}

func TestInteractor_SavesDelta(t *testing.T) {
	f := newFixture(t)
	f.tracker.TrackPropertyChange("id1", "Name", "Shield")
	f.tracker.TrackPropertyChange("id1", "Value", 12)
	f.tracker.TrackAdd("id2", &datatables.Item{Name: "Bow", Value: 4})
	f.tracker.TrackDelete("id3")

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Deleted)
	assert.Equal(t, f.clock.Now(), result.SavedAt)

	assert.Equal(t, []string{"id2"}, f.repo.inserted)
	assert.Equal(t, []updateCall{{key: "id1", properties: []string{"Name", "Value"}}}, f.repo.updated)
	assert.Equal(t, []string{"id3"}, f.repo.deleted)

	require.Len(t, f.applier.plans, 1)
	assert.Equal(t, 6, f.applier.plans[0].Count())

	require.Len(t, f.journal.entries, 3)
	update := f.journal.entries[1]
	assert.Equal(t, "update", update.Operation)
	assert.Equal(t, map[string]any{"baseline": "Sword", "current": "Shield"}, update.Payload["Name"])
	deleted := f.journal.entries[2]
	assert.Equal(t, "delete", deleted.Operation)
	assert.Equal(t, "Axe", deleted.Payload["Name"])

	// The saved state is the new baseline.
	assert.False(t, f.tracker.HasModifications())
	base, ok := f.tracker.BaselineValue("id1")
	require.True(t, ok)
	assert.Equal(t, "Shield", base.Name)
	_, ok = f.tracker.BaselineValue("id2")
	assert.True(t, ok)
	_, ok = f.tracker.BaselineValue("id3")
	assert.False(t, ok)
}

func TestInteractor_CommitFailureKeepsChanges(t *testing.T) {
	f := newFixture(t)
	f.applier.err = errors.New("aborted")
	f.tracker.TrackPropertyChange("id1", "Name", "Shield")

	_, err := f.uc.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, f.applier.err)

	assert.True(t, f.tracker.HasModifications())
	assert.Equal(t, []string{"Name"}, f.tracker.ModifiedProperties("id1"))
}

func TestInteractor_PlanFailureDoesNotCommit(t *testing.T) {
	f := newFixture(t)
	f.repo.failOn = "id2"
	f.tracker.TrackAdd("id2", &datatables.Item{Name: "Bow"})

	_, err := f.uc.Execute(context.Background())
	require.Error(t, err)
	assert.Empty(t, f.applier.plans)
	assert.Equal(t, []string{"id2"}, f.tracker.AddedKeys())
}

func TestInteractor_JournalFollowsRowMutations(t *testing.T) {
	f := newFixture(t)
	f.tracker.TrackPropertyChange("id1", "Value", 11)
	f.tracker.TrackAdd("id2", &datatables.Item{Name: "Bow", Value: 4})
	f.tracker.TrackDelete("id3")

	_, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, f.applier.plans, 1)
	mutations := f.applier.plans[0].Mutations()
	require.Len(t, mutations, 6)
	require.Len(t, f.journal.mutations, 3)
	for i, mut := range f.journal.mutations {
		assert.Same(t, mut, mutations[3+i])
	}
}
