package load_table

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/penspanic/Datra-sub005/internal/app/table/contracts"
	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
	"github.com/penspanic/Datra-sub005/internal/pkg/clock"
)

// Interactor handles the load table use case: it reads every row and makes the
// result the tracker's baseline, discarding pending edits.
type Interactor[K comparable, V any] struct {
	repo    contracts.TableRepository[K, V]
	tracker *domain.Tracker[K, V]
	clock   clock.Clock
	log     *zap.Logger
}

// NewInteractor creates a new load table interactor.
func NewInteractor[K comparable, V any](
	repo contracts.TableRepository[K, V],
	tracker *domain.Tracker[K, V],
	clock clock.Clock,
	log *zap.Logger,
) *Interactor[K, V] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor[K, V]{
		repo:    repo,
		tracker: tracker,
		clock:   clock,
		log:     log.With(zap.String("table", repo.TableName())),
	}
}

// Execute loads the table. On failure the tracker is left untouched.
func (i *Interactor[K, V]) Execute(ctx context.Context) (*contracts.LoadResult, error) {
	rows, err := i.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", i.repo.TableName(), err)
	}

	i.tracker.InitializeBaseline(rows)

	i.log.Info("table loaded", zap.Int("rows", len(rows)))

	return &contracts.LoadResult{
		Table:    i.repo.TableName(),
		Rows:     len(rows),
		LoadedAt: i.clock.Now(),
	}, nil
}
