package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// CamelToSnake converts a CamelCase string to snake_case.
// Consecutive uppercase letters (acronyms) are kept together:
// "ID" → "id", "AuthorID" → "author_id", "MagazineName" → "magazine_name".
func CamelToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				next := rune(0)
				if i+1 < len(runes) {
					next = runes[i+1]
				}
				if unicode.IsLower(prev) || (unicode.IsUpper(prev) && unicode.IsLower(next)) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TableName converts a Go type name to its conventional table name:
// snake_case and plural. "Author" → "authors", "MagazineIssue" → "magazine_issues".
func TableName(typeName string) string {
	return inflection.Plural(CamelToSnake(typeName))
}

// ForeignKey returns the conventional foreign key column referencing the
// table of typeName: "Author" → "author_id".
func ForeignKey(typeName string) string {
	return inflection.Singular(CamelToSnake(typeName)) + "_id"
}
