package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/penspanic/Datra-sub005/internal/models/m_journal"
	"github.com/penspanic/Datra-sub005/internal/pkg/clock"
	"github.com/penspanic/Datra-sub005/internal/pkg/query"
)

// Config holds configuration for the journal prune job
type Config struct {
	SpannerDB     string
	RetentionDays int
	Table         string
	DryRun        bool
}

func main() {
	config := Config{}
	flag.StringVar(&config.SpannerDB, "database", os.Getenv("SPANNER_DATABASE"), "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&config.RetentionDays, "retention", 90, "Retention days for journal entries")
	flag.StringVar(&config.Table, "table", "", "Only prune entries of this data table")
	flag.BoolVar(&config.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Named("prune_journal")
	defer func() { _ = log.Sync() }()

	if config.SpannerDB == "" {
		log.Fatal("-database flag or SPANNER_DATABASE is required")
	}
	if config.RetentionDays < 1 {
		log.Fatal("-retention must be at least 1 day", zap.Int("retention", config.RetentionDays))
	}

	if err := pruneJournal(context.Background(), config, clock.NewRealClock(), log); err != nil {
		log.Fatal("prune failed", zap.Error(err))
	}
}

func pruneJournal(ctx context.Context, config Config, clk clock.Clock, log *zap.Logger) error {
	client, err := spanner.NewClient(ctx, config.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	cutoff := clk.Now().AddDate(0, 0, -config.RetentionDays)
	selection := journalSelection(cutoff, config.Table)

	log.Info("starting journal prune",
		zap.Time("cutoff", cutoff),
		zap.Int("retention_days", config.RetentionDays),
		zap.String("table", config.Table),
		zap.Bool("dry_run", config.DryRun),
	)

	if config.DryRun {
		count, err := countEntries(ctx, client.Single(), selection)
		if err != nil {
			return err
		}
		log.Info("dry run: entries would be deleted", zap.Int64("count", count))
		return nil
	}

	_, err = client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		count, err := countEntries(ctx, txn, selection)
		if err != nil {
			return err
		}
		if count == 0 {
			log.Info("no journal entries to delete")
			return nil
		}

		deleted, err := txn.Update(ctx, selection.BuildDelete())
		if err != nil {
			return fmt.Errorf("failed to delete journal entries: %w", err)
		}

		log.Info("journal entries deleted", zap.Int64("deleted", deleted))
		return nil
	})
	if err != nil {
		return fmt.Errorf("prune transaction failed: %w", err)
	}

	return nil
}

// journalSelection selects the entries older than cutoff, optionally of one table.
func journalSelection(cutoff time.Time, table string) *query.Builder {
	q := query.From(m_journal.TableName).Where(query.Lt(m_journal.CreatedAt, cutoff))
	if table != "" {
		q = q.Where(query.Eq(m_journal.Table, table))
	}
	return q
}

type queryer interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

func countEntries(ctx context.Context, txn queryer, selection *query.Builder) (int64, error) {
	iter := txn.Query(ctx, selection.Count().Build())
	defer iter.Stop()

	row, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}

	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}
