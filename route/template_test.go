package route

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/hsrgen/oaserrors"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		path         string
		placeholders []string
		trailing     bool
		segments     int
	}{
		{path: "/", segments: 0},
		{path: "/pets", segments: 1},
		{path: "/pets/{petId}", placeholders: []string{"petId"}, segments: 2},
		{path: "/a/{x}/b/{y}/", placeholders: []string{"x", "y"}, trailing: true, segments: 4},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.path, tmpl.Raw)
			assert.Equal(t, tt.placeholders, tmpl.Placeholders())
			assert.Equal(t, len(tt.placeholders), tmpl.PlaceholderCount())
			assert.Equal(t, tt.trailing, tmpl.TrailingSlash)
			assert.Len(t, tmpl.Segments, tt.segments)
		})
	}
}

func TestParseTemplate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		contains string
	}{
		{name: "relative", path: "pets", contains: "must start with '/'"},
		{name: "empty segment", path: "/pets//x", contains: "empty path segment"},
		{name: "partial placeholder", path: "/pets/id-{petId}", contains: "fill the whole segment"},
		{name: "two placeholders in a segment", path: "/{a}{b}", contains: "fill the whole segment"},
		{name: "unbalanced", path: "/pets/{petId", contains: "fill the whole segment"},
		{name: "empty placeholder", path: "/pets/{}", contains: "empty placeholder"},
		{name: "duplicate", path: "/{id}/x/{id}", contains: "appears twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate(tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrPathTemplate)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestTemplateRender(t *testing.T) {
	wildcard := func(name string) string { return "{" + strings.ToLower(name) + "}" }

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: "/"},
		{path: "/pets", want: "/pets"},
		{path: "/pets/{petId}", want: "/pets/{petid}"},
		{path: "/pets/{petId}/", want: "/pets/{petid}/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tmpl.Render(wildcard))
		})
	}
}

func TestTemplatePattern(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: "/{$}"},
		{path: "/pets", want: "/pets"},
		{path: "/pets/{petId}", want: "/pets/{w0}"},
		{path: "/a/{x}/b/{y}/", want: "/a/{w0}/b/{w1}/{$}"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tmpl.Pattern(func(i int) string { return "w" + string(rune('0'+i)) }))
		})
	}
}
