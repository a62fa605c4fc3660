package route

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/hsrgen/oaserrors"
	"github.com/erraggy/hsrgen/parser"
	"github.com/erraggy/hsrgen/resolver"
	"github.com/erraggy/hsrgen/typemodel"
)

const components = `components:
  schemas:
    Pet:
      required: [id]
      properties:
        id: {type: integer}
    PetId: {type: integer}
    Error:
      properties:
        message: {type: string}
  parameters:
    Limit:
      name: limit
      in: query
      schema: {type: integer}
  responses:
    NotFound:
      description: not found
      content:
        application/json:
          schema: {$ref: '#/components/schemas/Error'}
  requestBodies:
    PetBody:
      required: true
      content:
        application/json:
          schema: {$ref: '#/components/schemas/Pet'}
`

func buildSet(t *testing.T, paths string) (*Set, error) {
	t.Helper()
	src := "openapi: 3.0.0\ninfo: {title: t, version: '1'}\npaths:\n" + paths + components
	result, err := parser.New().ParseBytes([]byte(src))
	require.NoError(t, err)
	table, err := resolver.BuildTable(result.Document, nil)
	require.NoError(t, err)
	return BuildSet(result.Document, table, nil)
}

func petstore(t *testing.T) *Set {
	t.Helper()
	result, err := parser.New().Parse("../testdata/petstore.yaml")
	require.NoError(t, err)
	table, err := resolver.BuildTable(result.Document, nil)
	require.NoError(t, err)
	set, err := BuildSet(result.Document, table, nil)
	require.NoError(t, err)
	return set
}

func TestBuildSet_Petstore(t *testing.T) {
	set := petstore(t)
	assert.Equal(t, "Swagger Petstore", set.Title)
	require.Len(t, set.Routes, 3)

	ids := make([]string, len(set.Routes))
	for i, r := range set.Routes {
		ids[i] = r.OperationID
	}
	assert.Equal(t, []string{"getAllPets", "createPet", "getPet"}, ids)

	list := set.Routes[0]
	assert.Equal(t, parser.MethodGet, list.Method)
	assert.Empty(t, list.PathParams)
	require.Len(t, list.QueryParams, 1)
	assert.Equal(t, "limit", list.QueryParams[0].Name)
	assert.Equal(t, "?int64", list.QueryParams[0].Type.String())
	assert.Equal(t, 200, list.Success.Status)
	require.NotNil(t, list.Success.Type)
	assert.Equal(t, "Pets", list.Success.Type.String())
	assert.Nil(t, list.Default)

	create := set.Routes[1]
	require.NotNil(t, create.Body)
	assert.Equal(t, "NewPet", create.Body.Type.String())
	assert.Equal(t, 201, create.Success.Status)
	assert.Nil(t, create.Success.Type)
	require.Len(t, create.Errors, 2)
	assert.Equal(t, 403, create.Errors[0].Status)
	assert.Nil(t, create.Errors[0].Type)
	assert.Equal(t, 409, create.Errors[1].Status)
	assert.Equal(t, "SomeConflict", create.Errors[1].Type.String())
	require.NotNil(t, create.Default)
	assert.Equal(t, "Error", create.Default.String())

	get, ok := set.Lookup("getPet")
	require.True(t, ok)
	require.Len(t, get.PathParams, 1)
	assert.Equal(t, "petId", get.PathParams[0].Name)
	assert.True(t, get.PathParams[0].Type.Equal(typemodel.Int64))
	assert.Equal(t, get.Template.PlaceholderCount(), len(get.PathParams))

	_, ok = set.Lookup("nope")
	assert.False(t, ok)
}

func TestBuildSet_MethodOrder(t *testing.T) {
	set, err := buildSet(t, `  /a:
    patch: {operationId: p, responses: {'200': {description: ok}}}
    delete: {operationId: d, responses: {'204': {description: ok}}}
    get: {operationId: g, responses: {'200': {description: ok}}}
`)
	require.NoError(t, err)
	var ids []string
	for _, r := range set.Routes {
		ids = append(ids, r.OperationID)
	}
	assert.Equal(t, []string{"g", "d", "p"}, ids)
}

func TestBuildSet_PathParams(t *testing.T) {
	t.Run("placeholder order wins over declaration order", func(t *testing.T) {
		set, err := buildSet(t, `  /owners/{ownerId}/pets/{petId}:
    get:
      operationId: getOwnerPet
      parameters:
        - {name: petId, in: path, required: true, schema: {$ref: '#/components/schemas/PetId'}}
        - {name: ownerId, in: path, required: true, schema: {type: string}}
      responses: {'200': {description: ok}}
`)
		require.NoError(t, err)
		r := set.Routes[0]
		require.Len(t, r.PathParams, 2)
		assert.Equal(t, "ownerId", r.PathParams[0].Name)
		assert.Equal(t, "petId", r.PathParams[1].Name)
		assert.Equal(t, "PetId", r.PathParams[1].Type.String(), "declared alias is kept")
		assert.True(t, r.PathParams[1].Base.Equal(typemodel.Int64), "base follows the alias")
	})

	t.Run("path item parameters are merged", func(t *testing.T) {
		set, err := buildSet(t, `  /pets/{petId}:
    parameters:
      - {name: petId, in: path, required: true, schema: {type: string}}
      - {$ref: '#/components/parameters/Limit'}
    get:
      operationId: getPet
      parameters:
        - {name: petId, in: path, required: true, schema: {type: integer}}
      responses: {'200': {description: ok}}
`)
		require.NoError(t, err)
		r := set.Routes[0]
		require.Len(t, r.PathParams, 1)
		assert.True(t, r.PathParams[0].Type.Equal(typemodel.Int64), "operation parameter overrides path item")
		require.Len(t, r.QueryParams, 1)
		assert.Equal(t, "limit", r.QueryParams[0].Name)
	})
}

func TestBuildSet_ReferencedComponents(t *testing.T) {
	set, err := buildSet(t, `  /pets:
    post:
      operationId: addPet
      requestBody: {$ref: '#/components/requestBodies/PetBody'}
      responses:
        '201': {description: created}
        '404': {$ref: '#/components/responses/NotFound'}
`)
	require.NoError(t, err)
	r := set.Routes[0]
	require.NotNil(t, r.Body)
	assert.True(t, r.Body.Required)
	assert.Equal(t, "Pet", r.Body.Type.String())
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "Error", r.Errors[0].Type.String())
}

func TestBuildSet_Errors(t *testing.T) {
	tests := []struct {
		name     string
		paths    string
		sentinel error
		contains string
	}{
		{
			name: "arity mismatch",
			paths: `  /pets/{petId}:
    get: {operationId: getPet, responses: {'200': {description: ok}}}
`,
			sentinel: oaserrors.ErrPathArity,
			contains: "path '/pets/{petId}' expected 1 path parameter(s), found 0",
		},
		{
			name: "extra path parameter",
			paths: `  /pets:
    get:
      operationId: list
      parameters: [{name: id, in: path, required: true, schema: {type: string}}]
      responses: {'200': {description: ok}}
`,
			sentinel: oaserrors.ErrPathArity,
			contains: "expected 0 path parameter(s), found 1",
		},
		{
			name: "path parameter name mismatch",
			paths: `  /pets/{petId}:
    get:
      operationId: getPet
      parameters: [{name: id, in: path, required: true, schema: {type: string}}]
      responses: {'200': {description: ok}}
`,
			sentinel: oaserrors.ErrParameter,
			contains: "{petId}",
		},
		{
			name: "optional path parameter",
			paths: `  /pets/{petId}:
    get:
      operationId: getPet
      parameters: [{name: petId, in: path, schema: {type: string}}]
      responses: {'200': {description: ok}}
`,
			sentinel: oaserrors.ErrParameter,
			contains: "must be required",
		},
		{
			name: "duplicate parameter",
			paths: `  /pets:
    get:
      operationId: list
      parameters:
        - {name: q, in: query, schema: {type: string}}
        - {name: q, in: query, schema: {type: string}}
      responses: {'200': {description: ok}}
`,
			sentinel: oaserrors.ErrParameter,
			contains: "duplicate query parameter",
		},
		{
			name: "header parameter",
			paths: `  /pets:
    get:
      operationId: list
      parameters: [{name: X-Trace, in: header, schema: {type: string}}]
      responses: {'200': {description: ok}}
`,
			sentinel: oaserrors.ErrParameter,
			contains: "not supported",
		},
		{
			name: "array query parameter",
			paths: `  /pets:
    get:
      operationId: list
      parameters: [{name: tags, in: query, schema: {type: array, items: {type: string}}}]
      responses: {'200': {description: ok}}
`,
			sentinel: oaserrors.ErrParameter,
			contains: "must be a string, number, integer or boolean",
		},
		{
			name: "two success codes",
			paths: `  /pets:
    get: {operationId: list, responses: {'200': {description: a}, '201': {description: b}}}
`,
			sentinel: oaserrors.ErrBadStatusCode,
			contains: "second success status 201",
		},
		{
			name: "server error code",
			paths: `  /pets:
    get: {operationId: list, responses: {'200': {description: a}, '500': {description: b}}}
`,
			sentinel: oaserrors.ErrBadStatusCode,
			contains: "status 500",
		},
		{
			name: "redirect code",
			paths: `  /pets:
    get: {operationId: list, responses: {'200': {description: a}, '302': {description: b}}}
`,
			sentinel: oaserrors.ErrBadStatusCode,
			contains: "status 302",
		},
		{
			name: "status range",
			paths: `  /pets:
    get: {operationId: list, responses: {'2XX': {description: a}}}
`,
			sentinel: oaserrors.ErrBadStatusCode,
			contains: `"2XX"`,
		},
		{
			name: "no success",
			paths: `  /pets:
    get: {operationId: list, responses: {'404': {description: a}}}
`,
			sentinel: oaserrors.ErrBadStatusCode,
			contains: "no 2xx",
		},
		{
			name: "xml response",
			paths: `  /pets:
    get:
      operationId: list
      responses:
        '200':
          description: ok
          content:
            application/xml:
              schema: {type: string}
`,
			sentinel: oaserrors.ErrUnsupportedContent,
			contains: "application/xml",
		},
		{
			name: "two media types",
			paths: `  /pets:
    post:
      operationId: add
      requestBody:
        content:
          application/json: {schema: {type: string}}
          text/plain: {schema: {type: string}}
      responses: {'201': {description: ok}}
`,
			sentinel: oaserrors.ErrUnsupportedContent,
			contains: "multiple media types",
		},
		{
			name: "body on get",
			paths: `  /pets:
    get:
      operationId: list
      requestBody:
        content:
          application/json: {schema: {type: string}}
      responses: {'200': {description: ok}}
`,
			sentinel: oaserrors.ErrUnsupportedContent,
			contains: "not allowed on GET",
		},
		{
			name: "empty default",
			paths: `  /pets:
    get:
      operationId: list
      responses:
        '200': {description: ok}
        default: {description: oops}
`,
			sentinel: oaserrors.ErrEmptyDefault,
			contains: "default response",
		},
		{
			name: "missing operation id",
			paths: `  /pets:
    get: {responses: {'200': {description: ok}}}
`,
			sentinel: oaserrors.ErrOperation,
			contains: "missing operationId",
		},
		{
			name: "duplicate operation id",
			paths: `  /a:
    get: {operationId: same, responses: {'200': {description: ok}}}
  /b:
    get: {operationId: same, responses: {'200': {description: ok}}}
`,
			sentinel: oaserrors.ErrOperation,
			contains: `duplicate operationId "same"`,
		},
		{
			name: "inline record response",
			paths: `  /pets:
    get:
      operationId: list
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                type: object
                properties:
                  id: {type: integer}
`,
			sentinel: oaserrors.ErrNotNominal,
		},
		{
			name: "bad parameter ref",
			paths: `  /pets:
    get:
      operationId: list
      parameters: [{$ref: '#/components/parameters/Missing'}]
      responses: {'200': {description: ok}}
`,
			sentinel: oaserrors.ErrReference,
		},
		{
			name: "partial placeholder",
			paths: `  /report.{format}:
    get: {operationId: report, responses: {'200': {description: ok}}}
`,
			sentinel: oaserrors.ErrPathTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildSet(t, tt.paths)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestRouteErrorCarriesLocation(t *testing.T) {
	_, err := buildSet(t, `  /pets/{petId}:
    delete: {operationId: del, responses: {'204': {description: ok}}}
`)
	var routeErr *oaserrors.RouteError
	require.True(t, errors.As(err, &routeErr))
	assert.Equal(t, parser.MethodDelete, routeErr.Method)
	assert.Equal(t, "/pets/{petId}", routeErr.Path)
	assert.Equal(t, oaserrors.RoutePathArity, routeErr.Kind)
}

func TestBuild_SingleOperation(t *testing.T) {
	result, err := parser.New().Parse("../testdata/petstore.yaml")
	require.NoError(t, err)
	doc := result.Document
	table, err := resolver.BuildTable(doc, nil)
	require.NoError(t, err)

	item := doc.Paths[1]
	r, err := Build(doc, table, item, parser.MethodGet, item.Get)
	require.NoError(t, err)
	assert.Equal(t, "getPet", r.OperationID)
	assert.True(t, strings.HasPrefix(r.Path(), "/pets/"))
}
