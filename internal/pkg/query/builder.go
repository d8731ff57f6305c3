// Package query builds parameterized Spanner SELECT statements.
package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

type orderTerm struct {
	column    string
	direction Direction
}

// Builder constructs SQL SELECT queries for Cloud Spanner.
// Every method returns a new Builder, so a partially built query can be shared
// as a template. Parameter names are generated (@p0, @p1, ...).
type Builder struct {
	table        string
	selectCols   []string
	whereClauses []Condition
	orderBy      []orderTerm
	limitVal     int64
	offsetVal    int64
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select specifies the columns to retrieve. Repeated calls append.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// Where adds a WHERE condition.
// Multiple calls are combined with AND logic.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.whereClauses = append(nb.whereClauses, condition)
	return nb
}

// OrderBy appends a sort column. Earlier calls take precedence.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orderBy = append(nb.orderBy, orderTerm{column: column, direction: direction})
	return nb
}

// Limit sets the maximum number of rows to return.
func (b *Builder) Limit(limit int64) *Builder {
	nb := b.clone()
	nb.limitVal = limit
	return nb
}

// Offset sets the number of rows to skip.
func (b *Builder) Offset(offset int64) *Builder {
	nb := b.clone()
	nb.offsetVal = offset
	return nb
}

// Count returns a builder for a COUNT(*) query with the same FROM and WHERE
// clauses and no ordering or pagination.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.selectCols = []string{"COUNT(*)"}
	nb.limitVal = 0
	nb.offsetVal = 0
	nb.orderBy = nil
	return nb
}

// Build constructs the final spanner.Statement with SQL and parameters.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	b.writeWhere(&sql, params)

	if len(b.orderBy) > 0 {
		terms := make([]string, len(b.orderBy))
		for i, term := range b.orderBy {
			dir := "ASC"
			if term.direction == Desc {
				dir = "DESC"
			}
			terms[i] = term.column + " " + dir
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(terms, ", "))
	}

	if b.limitVal > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limitVal
	}

	if b.offsetVal > 0 {
		sql.WriteString(" OFFSET @offset")
		params["offset"] = b.offsetVal
	}

	return spanner.Statement{
		SQL:    sql.String(),
		Params: params,
	}
}

// BuildDelete constructs a DML statement deleting every row matched by the
// builder's conditions. Columns, ordering and pagination are ignored.
func (b *Builder) BuildDelete() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	sql.WriteString("DELETE FROM ")
	sql.WriteString(b.table)
	if len(b.whereClauses) == 0 {
		// Spanner DML requires a WHERE clause.
		sql.WriteString(" WHERE true")
	}
	b.writeWhere(&sql, params)

	return spanner.Statement{
		SQL:    sql.String(),
		Params: params,
	}
}

func (b *Builder) writeWhere(sql *strings.Builder, params map[string]interface{}) {
	if len(b.whereClauses) == 0 {
		return
	}
	sql.WriteString(" WHERE ")
	whereParts := make([]string, 0, len(b.whereClauses))
	paramIndex := 0
	for _, condition := range b.whereClauses {
		fragment, condParams := condition.SQL(paramIndex)
		whereParts = append(whereParts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}
	sql.WriteString(strings.Join(whereParts, " AND "))
}

func (b *Builder) clone() *Builder {
	nb := &Builder{
		table:        b.table,
		selectCols:   make([]string, len(b.selectCols)),
		whereClauses: make([]Condition, len(b.whereClauses)),
		orderBy:      make([]orderTerm, len(b.orderBy)),
		limitVal:     b.limitVal,
		offsetVal:    b.offsetVal,
	}
	copy(nb.selectCols, b.selectCols)
	copy(nb.whereClauses, b.whereClauses)
	copy(nb.orderBy, b.orderBy)
	return nb
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
