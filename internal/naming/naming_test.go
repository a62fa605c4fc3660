package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"pets", []string{"pets"}},
		{"getAllPets", []string{"get", "All", "Pets"}},
		{"petId", []string{"pet", "Id"}},
		{"APIClient", []string{"API", "Client"}},
		{"get_user-by.id/name", []string{"get", "user", "by", "id", "name"}},
		{"/api/v1/users", []string{"api", "v1", "users"}},
		{"__", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.input))
		})
	}
}

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "camelCase operation id", input: "getAllPets", want: "GetAllPets"},
		{name: "snake_case", input: "create_pet", want: "CreatePet"},
		{name: "kebab-case", input: "api-client", want: "APIClient"},
		{name: "initialism suffix", input: "petId", want: "PetID"},
		{name: "already PascalCase", input: "SomeConflict", want: "SomeConflict"},
		{name: "url initialism", input: "image_url", want: "ImageURL"},
		{name: "unicode", input: "émile_zola", want: "ÉmileZola"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPascalCase(tt.input))
		})
	}
}

func TestToCamelCase(t *testing.T) {
	assert.Equal(t, "petID", ToCamelCase("petId"))
	assert.Equal(t, "newPet", ToCamelCase("NewPet"))
	assert.Equal(t, "apiClient", ToCamelCase("APIClient"))
	assert.Equal(t, "limit", ToCamelCase("limit"))
	assert.Equal(t, "", ToCamelCase("--"))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "Pet", TypeName("Pet"))
	assert.Equal(t, "Type", TypeName(""))
	assert.Equal(t, "T200", TypeName("200"))
	assert.Equal(t, "Type", TypeName("type"), "keywords are safe once capitalized")
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "ID", FieldName("id"))
	assert.Equal(t, "Tag", FieldName("tag"))
	assert.Equal(t, "CreatedAt", FieldName("created_at"))
	assert.Equal(t, "F42", FieldName("42"))
	assert.Equal(t, "Field", FieldName("$"))
}

func TestParamName(t *testing.T) {
	taken := map[string]bool{"ctx": true, "req": true}

	assert.Equal(t, "petID", ParamName("petId", taken))
	assert.Equal(t, "limit", ParamName("limit", taken))
	assert.Equal(t, "type_", ParamName("type", taken))
	assert.Equal(t, "ctx_", ParamName("ctx", taken))
	assert.Equal(t, "param", ParamName("", nil))
	assert.Equal(t, "p2fa", ParamName("2fa", nil))

	for _, name := range []string{"nil", "true", "new", "string", "int64", "error", "any", "len"} {
		assert.Equal(t, name+"_", ParamName(name, nil), name)
	}
	assert.Equal(t, "nil__", ParamName("nil", map[string]bool{"nil_": true}))
}

func TestIsPredeclared(t *testing.T) {
	assert.True(t, IsPredeclared("nil"))
	assert.True(t, IsPredeclared("float64"))
	assert.True(t, IsPredeclared("append"))
	assert.False(t, IsPredeclared("func"))
	assert.False(t, IsPredeclared("limit"))
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, IsKeyword("func"))
	assert.False(t, IsKeyword("error"))
}
