package session

import (
	"github.com/invopop/jsonschema"
	"go.uber.org/zap"

	"github.com/penspanic/Datra-sub005/internal/app/table/contracts"
	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
	"github.com/penspanic/Datra-sub005/internal/app/table/queries/describe_changes"
	"github.com/penspanic/Datra-sub005/internal/app/table/usecases/load_table"
	"github.com/penspanic/Datra-sub005/internal/app/table/usecases/save_table"
	"github.com/penspanic/Datra-sub005/internal/pkg/clock"
	"github.com/penspanic/Datra-sub005/internal/pkg/committer"
)

// Deps are the collaborators shared by every table of a session.
type Deps struct {
	Journal   contracts.JournalRepository
	Committer committer.Applier
	Clock     clock.Clock
	Log       *zap.Logger
}

// Bind builds a Table for a typed tracker and its repository. sample is a value of
// the row type used to derive the JSON schema; nil skips the schema.
func Bind[K comparable, V any](
	repo contracts.TableRepository[K, V],
	tracker *domain.Tracker[K, V],
	deps Deps,
	sample any,
) *Table {
	name := repo.TableName()
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	var schema *jsonschema.Schema
	if sample != nil {
		schema = Schema(sample)
	}

	return NewTable(
		name,
		tracker.Untyped(),
		load_table.NewInteractor(repo, tracker, deps.Clock, log),
		save_table.NewInteractor(repo, deps.Journal, deps.Committer, tracker, deps.Clock, log),
		describe_changes.NewQuery(name, tracker.Untyped()),
		schema,
	)
}

// Schema reflects the JSON schema of a row value.
func Schema(sample any) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	return r.Reflect(sample)
}
