// Package naming converts display names into identifiers for generated schemas.
package naming

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonWord      = regexp.MustCompile(`\W+`)
	acronymBreak = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	lowerToUpper = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// ToSnakeCase turns a display name into a lowercase, underscore-delimited
// identifier: "Created At" -> "created_at", "HTTPServer" -> "http_server".
func ToSnakeCase(s string) string {
	s = nonWord.ReplaceAllString(s, " ")
	s = acronymBreak.ReplaceAllString(s, "${1}_${2}")
	s = lowerToUpper.ReplaceAllString(s, "${1}_${2}")

	// Casers are stateful, so each call gets its own.
	lower := cases.Lower(language.Und)
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, "_")
}

// ToPascalCase capitalizes each space-separated word, lowercases the rest of
// the word and concatenates: "class room" -> "ClassRoom".
func ToPascalCase(s string) string {
	upper, lower := cases.Upper(language.Und), cases.Lower(language.Und)
	var b strings.Builder
	for _, w := range strings.Split(s, " ") {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		b.WriteString(upper.String(string(r)))
		b.WriteString(lower.String(w[size:]))
	}
	return b.String()
}

// ToCamelCase is ToPascalCase with a lowercase first letter. Used for
// scalar foreign-key fields in the Prisma DSL.
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	return inflect.CamelizeDownFirst(pascal)
}
