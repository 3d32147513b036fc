package repository

import (
	"reflect"
	"strings"
	"unicode"
)

// EntityName returns the snake_case name of the entity type T, e.g.
// APIKey -> "api_key". It feeds default table names and cache key prefixes,
// so it strips anything that would not survive as a key segment.
func EntityName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return toSnake(t.Name())
}

// toSnake converts s to snake_case using ASCII-aware rules. Consecutive
// capitals stay grouped until the next lowercase rune (APIKey -> api_key).
func toSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (nextLower && prev != '_') {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return strings.Trim(b.String(), "_")
}
