package describe_changes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/penspanic/Datra-sub005/internal/app/table/contracts"
	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
)

// Request selects what the report contains.
type Request struct {
	IncludeRecords bool // attach full baseline/current records
	IncludeDiff    bool // attach a unified diff per entity
}

// Query builds the pending change report of one table.
type Query struct {
	table   string
	tracker domain.AnyTracker
}

// NewQuery creates a new describe changes query.
func NewQuery(table string, tracker domain.AnyTracker) *Query {
	return &Query{
		table:   table,
		tracker: tracker,
	}
}

// Execute reports every added, modified and deleted entity in that order.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ChangeReport, error) {
	if req == nil {
		req = &Request{}
	}

	added := q.tracker.AddedKeys()
	modified := q.tracker.ModifiedKeys()
	deleted := q.tracker.DeletedKeys()

	report := &contracts.ChangeReport{
		Table:            q.table,
		HasModifications: q.tracker.HasModifications(),
		Added:            len(added),
		Modified:         len(modified),
		Deleted:          len(deleted),
		Entities:         make([]contracts.EntityChangeDTO, 0, len(added)+len(modified)+len(deleted)),
	}

	for _, group := range [][]any{added, modified, deleted} {
		for _, key := range group {
			entity, err := q.describe(key, req)
			if err != nil {
				return nil, err
			}
			report.Entities = append(report.Entities, entity)
		}
	}

	return report, nil
}

func (q *Query) describe(key any, req *Request) (contracts.EntityChangeDTO, error) {
	entity := contracts.EntityChangeDTO{
		Key:   key,
		State: string(q.tracker.State(key)),
	}

	for _, p := range q.tracker.ModifiedProperties(key) {
		change, ok := q.tracker.PropertyChange(key, p)
		if !ok {
			continue
		}
		entity.Properties = append(entity.Properties, contracts.PropertyChangeDTO{
			Property: p,
			Baseline: change.Baseline,
			Current:  change.Current,
		})
	}

	baseline, _ := q.tracker.BaselineRecord(key)
	current, _ := q.tracker.CurrentRecord(key)

	if req.IncludeRecords {
		entity.Baseline = baseline
		entity.Current = current
	}

	if req.IncludeDiff {
		diff, err := unifiedDiff(key, baseline, current)
		if err != nil {
			return entity, err
		}
		entity.Diff = diff
	}

	return entity, nil
}

// unifiedDiff renders both records as indented JSON and diffs them line by line.
// A missing record renders as nothing, so additions and deletions show as whole
// blocks.
func unifiedDiff(key any, baseline, current map[string]any) (string, error) {
	a, err := renderLines(baseline)
	if err != nil {
		return "", fmt.Errorf("failed to render baseline of %v: %w", key, err)
	}
	b, err := renderLines(current)
	if err != nil {
		return "", fmt.Errorf("failed to render current of %v: %w", key, err)
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: fmt.Sprintf("baseline/%v", key),
		ToFile:   fmt.Sprintf("current/%v", key),
		Context:  3,
	})
}

func renderLines(record map[string]any) ([]string, error) {
	if record == nil {
		return nil, nil
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, err
	}
	return difflib.SplitLines(string(data)), nil
}
