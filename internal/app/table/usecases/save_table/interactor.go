package save_table

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/penspanic/Datra-sub005/internal/app/table/contracts"
	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
	"github.com/penspanic/Datra-sub005/internal/models/m_journal"
	"github.com/penspanic/Datra-sub005/internal/pkg/clock"
	"github.com/penspanic/Datra-sub005/internal/pkg/committer"
	"github.com/penspanic/Datra-sub005/internal/pkg/metrics"
)

// Interactor handles the save table use case.
type Interactor[K comparable, V any] struct {
	repo        contracts.TableRepository[K, V]
	journalRepo contracts.JournalRepository
	committer   committer.Applier
	tracker     *domain.Tracker[K, V]
	clock       clock.Clock
	log         *zap.Logger
}

// NewInteractor creates a new save table interactor.
func NewInteractor[K comparable, V any](
	repo contracts.TableRepository[K, V],
	journalRepo contracts.JournalRepository,
	committer committer.Applier,
	tracker *domain.Tracker[K, V],
	clock clock.Clock,
	log *zap.Logger,
) *Interactor[K, V] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor[K, V]{
		repo:        repo,
		journalRepo: journalRepo,
		committer:   committer,
		tracker:     tracker,
		clock:       clock,
		log:         log.With(zap.String("table", repo.TableName())),
	}
}

// Execute writes the tracked delta following the Golden Mutation Pattern: one
// mutation per changed row plus one journal entry each, applied atomically.
// Only after the commit succeeds does the current snapshot become the baseline;
// a failed save leaves every tracked change in place.
func (i *Interactor[K, V]) Execute(ctx context.Context) (*contracts.SaveResult, error) {
	table := i.repo.TableName()
	result := &contracts.SaveResult{Table: table}

	if !i.tracker.HasModifications() {
		result.SavedAt = i.clock.Now()
		return result, nil
	}

	start := time.Now()

	// 1. Build commit plan from the delta
	plan, err := i.buildPlan(result)
	if err != nil {
		metrics.SaveFailures.WithLabelValues(table).Inc()
		return nil, err
	}

	// 2. Apply plan
	if err := i.committer.Apply(ctx, plan); err != nil {
		metrics.SaveFailures.WithLabelValues(table).Inc()
		i.log.Warn("save failed", zap.Int("mutations", plan.Count()), zap.Error(err))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// 3. Promote the saved state to the new baseline
	i.tracker.UpdateBaseline(i.tracker.Current())

	metrics.SaveDuration.WithLabelValues(table).Observe(time.Since(start).Seconds())
	metrics.RowsSaved.WithLabelValues(table, metrics.OpInsert).Add(float64(result.Inserted))
	metrics.RowsSaved.WithLabelValues(table, metrics.OpUpdate).Add(float64(result.Updated))
	metrics.RowsSaved.WithLabelValues(table, metrics.OpDelete).Add(float64(result.Deleted))

	result.SavedAt = i.clock.Now()
	i.log.Info("table saved",
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("deleted", result.Deleted),
	)

	return result, nil
}

func (i *Interactor[K, V]) buildPlan(result *contracts.SaveResult) (*committer.CommitPlan, error) {
	table := i.repo.TableName()
	descriptor := i.tracker.Descriptor()
	plan := committer.NewPlan()
	journal := make([]*spanner.Mutation, 0)

	for _, key := range i.tracker.AddedKeys() {
		value, ok := i.tracker.CurrentValue(key)
		if !ok {
			continue
		}
		mut, err := i.repo.InsertMut(key, value)
		if err != nil {
			return nil, fmt.Errorf("failed to build insert for %v: %w", key, err)
		}
		plan.Add(mut)
		journal = append(journal, i.journalRepo.InsertMut(i.journalRepo.NewEntry(table, key, m_journal.OperationInsert, descriptor.Encode(value))))
		result.Inserted++
	}

	for _, key := range i.tracker.ModifiedKeys() {
		value, ok := i.tracker.CurrentValue(key)
		if !ok {
			continue
		}
		properties := i.tracker.ModifiedProperties(key)
		mut, err := i.repo.UpdateMut(key, value, properties)
		if err != nil {
			return nil, fmt.Errorf("failed to build update for %v: %w", key, err)
		}
		plan.Add(mut)
		journal = append(journal, i.journalRepo.InsertMut(i.journalRepo.NewEntry(table, key, m_journal.OperationUpdate, i.changePayload(key, properties))))
		result.Updated++
	}

	for _, key := range i.tracker.DeletedKeys() {
		mut, err := i.repo.DeleteMut(key)
		if err != nil {
			return nil, fmt.Errorf("failed to build delete for %v: %w", key, err)
		}
		plan.Add(mut)

		var payload map[string]any
		if base, ok := i.tracker.BaselineValue(key); ok {
			payload = descriptor.Encode(base)
		}
		journal = append(journal, i.journalRepo.InsertMut(i.journalRepo.NewEntry(table, key, m_journal.OperationDelete, payload)))
		result.Deleted++
	}

	// Journal entries follow the row mutations they describe.
	plan.AddMultiple(journal)
	return plan, nil
}

// changePayload records the (baseline, current) pair of every modified property.
func (i *Interactor[K, V]) changePayload(key K, properties []string) map[string]any {
	payload := make(map[string]any, len(properties))
	for _, p := range properties {
		change, ok := i.tracker.PropertyChange(key, p)
		if !ok {
			continue
		}
		payload[p] = map[string]any{
			"baseline": change.Baseline,
			"current":  change.Current,
		}
	}
	return payload
}
