// This file converts document text into Go comments and literals.

package generator

import (
	"strings"
)

// maxDescriptionLength is the maximum length of a single-line description in
// generated comments.
const maxDescriptionLength = 200

// cleanDescription prepares a one-line description for use in Go comments.
// It removes newlines, trims whitespace, and truncates long descriptions.
func cleanDescription(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if len(s) > maxDescriptionLength {
		runes := []rune(s)
		if len(runes) > maxDescriptionLength-3 {
			s = string(runes[:maxDescriptionLength-3]) + "..."
		}
	}
	return s
}

// docFor formats text as a doc comment for name. The first line is prefixed
// with name; blank lines are dropped. It returns "" when text is empty.
func docFor(name, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	out = append(out, strings.TrimSpace(name+" "+strings.TrimSpace(lines[0])))
	for _, l := range lines[1:] {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// firstOf returns the first non-empty string.
func firstOf(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}

// isValidJSONName reports whether encoding/json accepts name as a struct tag
// key without falling back to the Go field name.
func isValidJSONName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		switch {
		case strings.ContainsRune("!#$%&()*+-./:;<=>?@[]^_{|}~ ", c):
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c > 127:
		default:
			return false
		}
	}
	return true
}
