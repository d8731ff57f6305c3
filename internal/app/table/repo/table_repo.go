package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/penspanic/Datra-sub005/internal/app/table/contracts"
	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
	"github.com/penspanic/Datra-sub005/internal/models/m_table"
	"github.com/penspanic/Datra-sub005/internal/pkg/query"
)

// TableRepo implements TableRepository for Spanner. Columns are derived from the
// entity descriptor: one column per property plus the key column.
type TableRepo[K comparable, V any] struct {
	client     *spanner.Client
	model      *m_table.Model
	descriptor *domain.Descriptor[V]
}

// NewTableRepo creates a new TableRepo.
func NewTableRepo[K comparable, V any](client *spanner.Client, descriptor *domain.Descriptor[V]) *TableRepo[K, V] {
	return &TableRepo[K, V]{
		client:     client,
		model:      m_table.NewModel(descriptor.Name(), descriptor.PropertyNames()),
		descriptor: descriptor,
	}
}

var _ contracts.TableRepository[string, any] = (*TableRepo[string, any])(nil)

// TableName returns the Spanner table name.
func (r *TableRepo[K, V]) TableName() string {
	return r.model.TableName()
}

// LoadAll reads every row of the table ordered by key.
func (r *TableRepo[K, V]) LoadAll(ctx context.Context) (map[K]V, error) {
	stmt := query.From(r.model.TableName()).
		Select(r.model.SelectColumns()...).
		OrderBy(r.model.KeyColumn(), query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	rows := make(map[K]V)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate %s: %w", r.model.TableName(), err)
		}

		key, value, err := r.rowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s row: %w", r.model.TableName(), err)
		}
		rows[key] = value
	}

	return rows, nil
}

// InsertMut creates a mutation for inserting a new row.
func (r *TableRepo[K, V]) InsertMut(key K, value V) (*spanner.Mutation, error) {
	data, err := r.domainToData(key, value, r.descriptor.PropertyNames())
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation for updating a row (only the given properties).
func (r *TableRepo[K, V]) UpdateMut(key K, value V, properties []string) (*spanner.Mutation, error) {
	if len(properties) == 0 {
		return nil, nil
	}

	data, err := r.domainToData(key, value, properties)
	if err != nil {
		return nil, err
	}
	return r.model.UpdateMut(data.Key, data.Columns), nil
}

// DeleteMut creates a mutation for deleting a row (hard delete).
func (r *TableRepo[K, V]) DeleteMut(key K) (*spanner.Mutation, error) {
	k, err := toSpannerValue(key)
	if err != nil {
		return nil, fmt.Errorf("key %v: %w", key, err)
	}
	return r.model.DeleteMut(k), nil
}

// domainToData converts the given properties of a domain value to column values.
func (r *TableRepo[K, V]) domainToData(key K, value V, properties []string) (*m_table.Data, error) {
	k, err := toSpannerValue(key)
	if err != nil {
		return nil, fmt.Errorf("key %v: %w", key, err)
	}

	data := &m_table.Data{Key: k, Columns: make(map[string]any, len(properties))}
	for _, name := range properties {
		prop, ok := r.descriptor.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", domain.ErrUnknownProperty, r.descriptor.Name(), name)
		}
		col, _ := r.model.Column(name)

		v, err := toSpannerValue(prop.Get(value))
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		data.Columns[col] = v
	}
	return data, nil
}

// rowToDomain rebuilds a key and value from a row selected with SelectColumns.
func (r *TableRepo[K, V]) rowToDomain(row *spanner.Row) (K, V, error) {
	var (
		zeroK K
		zeroV V
	)

	var keyCol spanner.GenericColumnValue
	if err := row.Column(0, &keyCol); err != nil {
		return zeroK, zeroV, err
	}
	rawKey, err := fromColumn(keyCol)
	if err != nil {
		return zeroK, zeroV, err
	}
	key, err := domain.Coerce[K](rawKey)
	if err != nil {
		return zeroK, zeroV, fmt.Errorf("%w: %w", domain.ErrKeyType, err)
	}

	record := make(map[string]any, len(r.descriptor.PropertyNames()))
	for i, name := range r.descriptor.PropertyNames() {
		var col spanner.GenericColumnValue
		if err := row.Column(i+1, &col); err != nil {
			return zeroK, zeroV, err
		}
		v, err := fromColumn(col)
		if err != nil {
			return zeroK, zeroV, fmt.Errorf("column %s: %w", row.ColumnName(i+1), err)
		}
		if v != nil {
			record[name] = v
		}
	}

	value, err := r.descriptor.Decode(record)
	if err != nil {
		return zeroK, zeroV, err
	}
	return key, value, nil
}
