package checkstyle

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitSource derives the issue type and category from a dotted check identifier,
// e.g. "checks.naming.MethodName" gives type "MethodName" and category "Naming".
func SplitSource(source string) (typ, category string) {
	return TypeOf(source), CategoryOf(source)
}

// TypeOf returns the last segment of source.
func TypeOf(source string) string {
	if i := strings.LastIndex(source, "."); i >= 0 {
		return source[i+1:]
	}
	return source
}

// CategoryOf returns the capitalized second to last segment of source, or "" without a dot.
func CategoryOf(source string) string {
	i := strings.LastIndex(source, ".")
	if i < 0 {
		return ""
	}
	return capitalize(TypeOf(source[:i]))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToTitle(r)) + s[size:]
}
