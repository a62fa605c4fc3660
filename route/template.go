package route

import (
	"fmt"
	"strings"

	"github.com/erraggy/hsrgen/oaserrors"
)

// Segment is one slash-separated part of a path template.
type Segment struct {
	// Value is the literal text, or the placeholder name when Param is set.
	Value string
	Param bool
}

// Template is a parsed path template such as "/pets/{petId}".
type Template struct {
	Raw      string
	Segments []Segment
	// TrailingSlash is set when Raw ends in "/" and is not "/".
	TrailingSlash bool
}

// ParseTemplate splits path into literal and placeholder segments. A
// placeholder must fill a whole segment and appear only once.
func ParseTemplate(path string) (Template, error) {
	fail := func(format string, args ...any) (Template, error) {
		return Template{}, &oaserrors.RouteError{
			Path:    path,
			Kind:    oaserrors.RoutePathTemplate,
			Message: fmt.Sprintf(format, args...),
		}
	}
	if !strings.HasPrefix(path, "/") {
		return fail("path must start with '/'")
	}
	t := Template{Raw: path}
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return t, nil
	}
	if strings.HasSuffix(trimmed, "/") {
		t.TrailingSlash = true
		trimmed = strings.TrimSuffix(trimmed, "/")
	}
	seen := make(map[string]bool)
	for _, part := range strings.Split(trimmed, "/") {
		if part == "" {
			return fail("empty path segment")
		}
		open, closing := strings.Count(part, "{"), strings.Count(part, "}")
		if open == 0 && closing == 0 {
			t.Segments = append(t.Segments, Segment{Value: part})
			continue
		}
		if open != 1 || closing != 1 || !strings.HasPrefix(part, "{") || !strings.HasSuffix(part, "}") {
			return fail("segment %q: a placeholder must fill the whole segment", part)
		}
		name := part[1 : len(part)-1]
		if name == "" {
			return fail("segment %q: empty placeholder", part)
		}
		if seen[name] {
			return fail("placeholder %q appears twice", name)
		}
		seen[name] = true
		t.Segments = append(t.Segments, Segment{Value: name, Param: true})
	}
	return t, nil
}

// Placeholders returns the placeholder names in path order.
func (t Template) Placeholders() []string {
	var names []string
	for _, s := range t.Segments {
		if s.Param {
			names = append(names, s.Value)
		}
	}
	return names
}

// PlaceholderCount returns the number of placeholders.
func (t Template) PlaceholderCount() int {
	n := 0
	for _, s := range t.Segments {
		if s.Param {
			n++
		}
	}
	return n
}

// Render rebuilds the path, replacing each placeholder with fn(name).
func (t Template) Render(fn func(name string) string) string {
	var b strings.Builder
	for _, s := range t.Segments {
		b.WriteByte('/')
		if s.Param {
			b.WriteString(fn(s.Value))
		} else {
			b.WriteString(s.Value)
		}
	}
	if len(t.Segments) == 0 || t.TrailingSlash {
		b.WriteByte('/')
	}
	return b.String()
}

// Pattern renders the ServeMux path pattern. wildcard names the i-th
// placeholder. A trailing slash is anchored with {$} so the pattern does not
// match as a prefix.
func (t Template) Pattern(wildcard func(i int) string) string {
	i := 0
	p := t.Render(func(string) string {
		name := wildcard(i)
		i++
		return "{" + name + "}"
	})
	if strings.HasSuffix(p, "/") {
		p += "{$}"
	}
	return p
}
