package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
	"github.com/penspanic/Datra-sub005/internal/app/table/queries/list_journal"
	"github.com/penspanic/Datra-sub005/internal/app/table/repo"
	"github.com/penspanic/Datra-sub005/internal/app/table/session"
	"github.com/penspanic/Datra-sub005/internal/datatables"
	"github.com/penspanic/Datra-sub005/internal/pkg/clock"
	"github.com/penspanic/Datra-sub005/internal/pkg/committer"
	"github.com/penspanic/Datra-sub005/internal/pkg/structural"
	"github.com/penspanic/Datra-sub005/internal/transport/grpc/editor"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Tables        *session.Registry
	EditorHandler *editor.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, spannerDB string, log *zap.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	values := structural.New(log)

	// 3. Create shared repositories
	journalRepo := repo.NewJournalRepo(spannerClient)
	journalReadModel := repo.NewJournalReadModel(spannerClient)

	deps := session.Deps{
		Journal:   journalRepo,
		Committer: comm,
		Clock:     clk,
		Log:       log,
	}
	trackerOpts := []domain.Option{domain.WithLogger(log), domain.WithStructural(values)}

	// 4. Bind the data tables
	tables := session.NewRegistry()

	itemDescriptor := datatables.NewItemDescriptor()
	items := session.Bind[string, *datatables.Item](
		repo.NewTableRepo[string](spannerClient, itemDescriptor),
		domain.NewTracker[string](itemDescriptor, trackerOpts...),
		deps, &datatables.Item{},
	)

	stringDescriptor := datatables.NewLocalizedStringDescriptor()
	localizedStrings := session.Bind[string, datatables.LocalizedString](
		repo.NewTableRepo[string](spannerClient, stringDescriptor),
		domain.NewTracker[string](stringDescriptor, trackerOpts...),
		deps, "",
	)

	for _, table := range []*session.Table{items, localizedStrings} {
		if err := tables.Register(table); err != nil {
			spannerClient.Close()
			return nil, err
		}
	}

	// 5. Create query use cases (read operations)
	listJournalQuery := list_journal.NewQuery(journalReadModel)

	// 6. Create gRPC handler
	editorHandler := editor.NewHandler(tables, listJournalQuery, log)

	return &ServiceOptions{
		SpannerClient: spannerClient,
		Tables:        tables,
		EditorHandler: editorHandler,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
