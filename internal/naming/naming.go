// Package naming converts contract identifiers into Go identifiers.
package naming

import (
	"go/types"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// initialisms are words rendered fully upper case in Go identifiers.
var initialisms = map[string]bool{
	"api": true, "http": true, "https": true, "id": true, "ip": true,
	"json": true, "uri": true, "url": true, "uuid": true, "xml": true,
}

// goKeywords are the identifiers Go reserves.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// Words splits s into words. Any rune that is not a letter or digit separates
// words, as does a lower-to-upper transition ("petId") and the end of an
// upper-case run followed by a lower-case letter ("APIClient").
func Words(s string) []string {
	var words []string
	runes := []rune(s)
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			flush(i)
			start = i
		}
	}
	flush(len(runes))
	return words
}

func title(word string) string {
	lower := cases.Lower(language.Und).String(word)
	if initialisms[lower] {
		return strings.ToUpper(lower)
	}
	return cases.Title(language.Und, cases.NoLower).String(word)
}

// ToPascalCase joins the words of s with each word capitalized.
// Common initialisms are upper cased.
// Example: "get_all_pets" -> "GetAllPets"
// Example: "petId" -> "PetID"
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(title(w))
	}
	return b.String()
}

// ToCamelCase is ToPascalCase with the first word lower cased.
// Example: "petId" -> "petID"
// Example: "NewPet" -> "newPet"
func ToCamelCase(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(cases.Lower(language.Und).String(words[0]))
	for _, w := range words[1:] {
		b.WriteString(title(w))
	}
	return b.String()
}

// IsKeyword reports whether name is a Go keyword.
func IsKeyword(name string) bool {
	return goKeywords[name]
}

// IsPredeclared reports whether name is one of Go's predeclared identifiers,
// such as nil, true, string or new.
func IsPredeclared(name string) bool {
	return types.Universe.Lookup(name) != nil
}

// TypeName converts a contract name into an exported Go type name.
// Names that would not start with a letter are prefixed with "T".
func TypeName(s string) string {
	name := ToPascalCase(s)
	if name == "" {
		return "Type"
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "T" + name
	}
	return name
}

// FieldName converts a property name into an exported Go field name.
func FieldName(s string) string {
	name := ToPascalCase(s)
	if name == "" {
		return "Field"
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "F" + name
	}
	return name
}

// ParamName converts a parameter name into an unexported Go identifier.
// Keywords, predeclared identifiers and any name in taken get a trailing
// underscore.
func ParamName(s string, taken map[string]bool) string {
	name := ToCamelCase(s)
	if name == "" {
		name = "param"
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "p" + name
	}
	for goKeywords[name] || IsPredeclared(name) || taken[name] {
		name += "_"
	}
	return name
}
