package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// cmpCondition implements a binary comparison (field <op> value).
type cmpCondition struct {
	field string
	op    string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("table_name", "items") generates "table_name = @p0"
func Eq(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "=", value: value}
}

// Lt creates a WHERE condition for a strict less-than comparison.
// Example: Lt("created_at", cutoff) generates "created_at < @p0"
func Lt(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "<", value: value}
}

// Gte creates a WHERE condition for a greater-or-equal comparison.
func Gte(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: ">=", value: value}
}

// SQL generates the SQL fragment for the comparison.
func (c *cmpCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, paramName)
	params := map[string]interface{}{
		paramName: c.value,
	}
	return sql, params
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("payload") generates "payload IS NULL"
func IsNull(field string) Condition {
	return &nullCondition{field: field}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
// Example: IsNotNull("payload") generates "payload IS NOT NULL"
func IsNotNull(field string) Condition {
	return &nullCondition{field: field, not: true}
}

// nullCondition implements IS [NOT] NULL comparison.
type nullCondition struct {
	field string
	not   bool
}

// SQL generates the SQL fragment for the NULL check.
func (c *nullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	if c.not {
		return fmt.Sprintf("%s IS NOT NULL", c.field), map[string]interface{}{}
	}
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}
