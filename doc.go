// Package hsrgen compiles OpenAPI 3 contracts into Go servers and clients.
//
// hsrgen reads a contract document, resolves its component schemas into a
// closed set of named Go types, builds one validated route per operation and
// then emits five files: types.go, service.go, server.go, client.go and
// errors.go. Server and client are generated from the same route model, so
// they agree on path parameter positions and on which status codes carry which
// payloads.
//
// # Packages
//
//   - parser: loads YAML or JSON documents, preserving declared key order
//   - typemodel: the Typ value and the named-type table
//   - resolver: turns schemas into Typ values and builds the table
//   - route: validates operations into routes
//   - taxonomy: builds the per-route error union
//   - generator: emits and formats the Go source files
//   - hsr: runtime support imported by generated code
//   - oaserrors: structured errors for every failure the compiler reports
//
// # Quick Start
//
//	result, err := generator.Generate("petstore.yaml",
//		generator.WithPackageName("petstore"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./petstore"); err != nil {
//		log.Fatal(err)
//	}
//
// # What is supported
//
// Schemas may be strings, numbers, integers, booleans, arrays, objects with at
// least one property, untyped values and references of the exact form
// "#/components/schemas/<name>". Composed schemas (oneOf, anyOf, allOf, not)
// are rejected. Every object must be a named component schema: an inline object
// anywhere else is reported as not nominally typed.
//
// Each operation needs an operationId, exactly one 2xx response, and may declare
// 4xx responses plus a typed default response. Bodies are application/json only.
//
// # Command line
//
//	hsrgen generate -p petstore -o ./petstore petstore.yaml
//	hsrgen generate --watch -o ./petstore petstore.yaml
//	hsrgen inspect petstore.yaml
//	hsrgen mcp
package hsrgen
