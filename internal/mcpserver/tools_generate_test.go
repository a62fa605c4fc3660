package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalSpecWithSchemaAndOp is a minimal OAS 3.0 document with one schema and
// one operation, giving the generator something to produce types and client
// code from.
const minimalSpecWithSchemaAndOp = `openapi: "3.0.0"
info:
  title: Pet API
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: listPets
      summary: List all pets
      responses:
        "200":
          description: A list of pets
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: "#/components/schemas/Pet"
        "404":
          description: none
components:
  schemas:
    Pet:
      type: object
      required:
        - id
        - name
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
`

func fileNames(files []generatedFileInfo) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

func TestGenerateTool_Everything(t *testing.T) {
	docCache.reset()
	dir := t.TempDir()

	input := generateInput{
		Spec:      documentInput{Content: minimalSpecWithSchemaAndOp},
		OutputDir: dir,
	}
	result, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.True(t, output.Success)
	assert.True(t, output.UpToDate)
	assert.Equal(t, dir, output.OutputDir)
	assert.Equal(t, "api", output.PackageName)
	assert.Equal(t, 1, output.GeneratedTypes)
	assert.Equal(t, 1, output.GeneratedOperations)
	assert.ElementsMatch(t, []string{"types.go", "errors.go", "service.go", "server.go", "client.go"}, fileNames(output.Files))

	for _, f := range output.Files {
		assert.True(t, f.Written, f.Name)
		info, statErr := os.Stat(filepath.Join(dir, f.Name))
		require.NoError(t, statErr)
		assert.Equal(t, int64(f.Size), info.Size())
	}

	// Regenerating leaves identical files alone.
	_, output, err = handleGenerate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	for _, f := range output.Files {
		assert.False(t, f.Written, f.Name)
	}
}

func TestGenerateTool_TypesOnly(t *testing.T) {
	dir := t.TempDir()

	input := generateInput{
		Spec:        documentInput{Content: minimalSpecWithSchemaAndOp},
		Types:       true,
		PackageName: "petstore",
		OutputDir:   dir,
	}
	_, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, "petstore", output.PackageName)
	assert.ElementsMatch(t, []string{"types.go", "errors.go"}, fileNames(output.Files))

	data, err := os.ReadFile(filepath.Join(dir, "types.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package petstore")
	assert.Contains(t, string(data), "type Pet struct")
}

func TestGenerateTool_ClientOptions(t *testing.T) {
	dir := t.TempDir()

	input := generateInput{
		Spec:          documentInput{Content: minimalSpecWithSchemaAndOp},
		Client:        true,
		RuntimeImport: "example.com/rt/hsr",
		UserAgent:     "pets/2",
		OutputDir:     dir,
	}
	_, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"types.go", "errors.go", "client.go"}, fileNames(output.Files))

	data, err := os.ReadFile(filepath.Join(dir, "client.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"example.com/rt/hsr"`)
	assert.Contains(t, string(data), `"pets/2"`)
}

func TestGenerateTool_Check(t *testing.T) {
	docCache.reset()
	dir := t.TempDir()
	input := generateInput{
		Spec:      documentInput{Content: minimalSpecWithSchemaAndOp},
		Types:     true,
		OutputDir: dir,
		Check:     true,
	}

	_, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.False(t, output.UpToDate)
	assert.ElementsMatch(t, []string{"types.go", "errors.go"}, output.OutOfDate)
	_, statErr := os.Stat(filepath.Join(dir, "types.go"))
	assert.True(t, os.IsNotExist(statErr), "check must not write")

	input.Check = false
	_, _, err = handleGenerate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	input.Check = true
	_, output, err = handleGenerate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.True(t, output.UpToDate)
	assert.Empty(t, output.OutOfDate)
}

func TestGenerateTool_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    generateInput
		contains string
	}{
		{
			name:     "missing output dir",
			input:    generateInput{Spec: documentInput{Content: minimalSpecWithSchemaAndOp}},
			contains: "output_dir is required",
		},
		{
			name:     "invalid document",
			input:    generateInput{Spec: documentInput{Content: "not valid yaml: ["}},
			contains: "invalid YAML or JSON",
		},
		{
			name:     "no input",
			input:    generateInput{},
			contains: "exactly one of file or content",
		},
		{
			name:     "bad package name",
			input:    generateInput{Spec: documentInput{Content: minimalSpecWithSchemaAndOp}, PackageName: "not-a-package"},
			contains: "package",
		},
		{
			name: "unsupported schema",
			input: generateInput{Spec: documentInput{Content: `openapi: 3.0.0
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Shape:
      oneOf:
        - type: string
        - type: integer
`}},
			contains: "Shape",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.input.OutputDir == "" && tt.name != "missing output dir" {
				tt.input.OutputDir = t.TempDir()
			}
			result, output, err := handleGenerate(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			assert.Empty(t, output.OutputDir)
			text := result.Content[0].(*mcp.TextContent).Text
			assert.Contains(t, text, tt.contains)
			assert.NotContains(t, text, "/tmp/")
		})
	}
}
