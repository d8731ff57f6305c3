// Package naming derives Spanner table and column identifiers from entity and
// property names.
package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// KeySuffix is appended to the singular entity name to form the key column.
const KeySuffix = "_id"

// TableName returns the plural snake_case table name for an entity ("Item" -> "items").
func TableName(entity string) string {
	return inflection.Plural(SnakeCase(entity))
}

// KeyColumn returns the primary key column for an entity ("LocalizedString" -> "localized_string_id").
func KeyColumn(entity string) string {
	return inflection.Singular(SnakeCase(entity)) + KeySuffix
}

// ColumnName returns the column that stores a property.
func ColumnName(property string) string {
	return SnakeCase(property)
}

// SnakeCase converts CamelCase identifiers to snake_case, keeping acronyms together
// ("HTTPPort" -> "http_port").
func SnakeCase(s string) string {
	runes := []rune(strings.TrimSpace(s))
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == ' ' || r == '-' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
