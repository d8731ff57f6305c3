package contracts

import (
	"context"

	"cloud.google.com/go/spanner"
)

// TableRepository defines persistence for one data table.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type TableRepository[K comparable, V any] interface {
	// TableName returns the storage table name
	TableName() string

	// LoadAll reads every row of the table
	LoadAll(ctx context.Context) (map[K]V, error)

	// InsertMut creates a mutation writing every column of a new row
	InsertMut(key K, value V) (*spanner.Mutation, error)

	// UpdateMut creates a mutation writing only the columns of the given properties.
	// Returns nil when properties is empty
	UpdateMut(key K, value V, properties []string) (*spanner.Mutation, error)

	// DeleteMut creates a mutation deleting a row
	DeleteMut(key K) (*spanner.Mutation, error)
}
