// Package generator compiles OpenAPI 3 documents into Go servers and
// clients.
//
// Compilation runs the schema resolver, the route builder and the error
// taxonomy builder, then hands the validated model to independent emitters
// that build [artifact] trees for each output file. A printer renders and
// formats the trees. Any error stops compilation; no partial output is
// returned.
//
// # Quick Start
//
//	result, err := generator.Generate("openapi.yaml",
//		generator.WithPackageName("petstore"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if _, err := result.WriteFiles("./petstore"); err != nil {
//		log.Fatal(err)
//	}
//
// # Generated Files
//
//   - types.go: one declaration per component schema, sorted by name.
//     Objects become structs; everything else becomes an alias.
//   - errors.go: per operation, a sealed <Op>Error interface with one
//     variant per declared 4xx status, a Default variant when the operation
//     declares a default response, and an Unexpected variant.
//   - service.go: the Service interface the server implementation satisfies.
//   - server.go: request adapters, Routes, NewHandler and Serve.
//   - client.go: Client, NewClient, its options and one method per operation.
//
// The generated code imports the [hsr] runtime package. Use
// [WithRuntimeImport] when it is vendored under another path.
//
// # Type Mapping
//
//   - string → string, number → float64, integer → int64, boolean → bool
//   - array → []T
//   - a schema without a type → any
//   - an optional or nullable property → *T with omitempty
//
// Identical input always produces byte-identical output.
//
// [artifact]: https://pkg.go.dev/github.com/erraggy/hsrgen/internal/artifact
// [hsr]: https://pkg.go.dev/github.com/erraggy/hsrgen/hsr
package generator
