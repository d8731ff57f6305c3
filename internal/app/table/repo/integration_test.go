//go:build integration

package repo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
	"github.com/penspanic/Datra-sub005/internal/app/table/queries/list_journal"
	"github.com/penspanic/Datra-sub005/internal/app/table/repo"
	"github.com/penspanic/Datra-sub005/internal/app/table/session"
	"github.com/penspanic/Datra-sub005/internal/datatables"
	"github.com/penspanic/Datra-sub005/internal/models/m_journal"
	"github.com/penspanic/Datra-sub005/internal/pkg/clock"
	"github.com/penspanic/Datra-sub005/internal/pkg/committer"
)

// setupSpanner connects to the emulator database created by cmd/migrate and
// empties every table before and after the test.
func setupSpanner(t *testing.T) *spanner.Client {
	t.Helper()
	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST is not set")
	}

	db := os.Getenv("SPANNER_DATABASE")
	if db == "" {
		db = "projects/test-project/instances/dev-instance/databases/datra-db"
	}

	client, err := spanner.NewClient(context.Background(), db)
	require.NoError(t, err, "failed to create Spanner client")

	clean := func() {
		_, err := client.Apply(context.Background(), []*spanner.Mutation{
			spanner.Delete(m_journal.TableName, spanner.AllKeys()),
			spanner.Delete("items", spanner.AllKeys()),
			spanner.Delete("localized_strings", spanner.AllKeys()),
		})
		require.NoError(t, err, "failed to clean database")
	}
	clean()
	t.Cleanup(func() {
		clean()
		client.Close()
	})
	return client
}

func TestTableRepo_RoundTrip(t *testing.T) {
	client := setupSpanner(t)
	ctx := context.Background()
	items := repo.NewTableRepo[string](client, datatables.NewItemDescriptor())

	sword := &datatables.Item{Name: "Sword", Value: 10, Rarity: datatables.RarityRare, Tags: []string{"melee"}}
	mut, err := items.InsertMut("id1", sword)
	require.NoError(t, err)
	_, err = client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	rows, err := items.LoadAll(ctx)
	require.NoError(t, err)
	require.Contains(t, rows, "id1")
	assert.Equal(t, sword, rows["id1"])

	mut, err = items.UpdateMut("id1", &datatables.Item{Name: "Sword", Value: 12}, []string{"Value"})
	require.NoError(t, err)
	_, err = client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	rows, err = items.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, rows["id1"].Value)
	assert.Equal(t, datatables.RarityRare, rows["id1"].Rarity)

	mut, err = items.DeleteMut("id1")
	require.NoError(t, err)
	_, err = client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	rows, err = items.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTable_SaveWritesRowsAndJournal(t *testing.T) {
	client := setupSpanner(t)
	ctx := context.Background()
	log := zaptest.NewLogger(t)

	descriptor := datatables.NewLocalizedStringDescriptor()
	strings := repo.NewTableRepo[string](client, descriptor)
	table := session.Bind[string, datatables.LocalizedString](
		strings,
		domain.NewTracker[string](descriptor, domain.WithLogger(log)),
		session.Deps{
			Journal:   repo.NewJournalRepo(client),
			Committer: committer.NewCommitter(client),
			Clock:     clock.NewMockClock(time.Now()),
			Log:       log,
		}, "",
	)

	_, err := table.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, table.WithLock(func(tracker domain.AnyTracker) error {
		if err := tracker.TrackAdd("greeting", "Hello"); err != nil {
			return err
		}
		return tracker.TrackAdd("farewell", "Bye")
	}))

	saved, err := table.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Inserted)

	rows, err := strings.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"greeting": "Hello", "farewell": "Bye"}, rows)

	readModel := repo.NewJournalReadModel(client)
	tableName := "localized_strings"
	entries, total, err := list_journal.NewQuery(readModel).Execute(ctx, &list_journal.Request{Table: &tableName})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, m_journal.OperationInsert, entry.Operation)
		assert.True(t, entry.Payload.Valid)
	}
}
