// Package parser loads OpenAPI 3 documents for the hsrgen compiler.
//
// The parser decodes YAML or JSON into a yaml.Node tree and walks it into a
// [Document]. Walking the node tree keeps every collection in declared order:
// paths, properties, responses and component schemas come back exactly as they
// were written, which the compiler relies on for deterministic output.
//
// Only the parts of a document the compiler reads are kept. Unknown keys and
// extension (x-) keys are ignored; structural problems such as a mapping where
// a sequence is expected, or a duplicated key, are reported as
// [oaserrors.ParseError] with line and column.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, item := range result.Document.Paths {
//		for _, op := range item.Operations() {
//			fmt.Println(op.Method, item.Path, op.Operation.OperationID)
//		}
//	}
//
// # Resource limits
//
// Input larger than [DefaultMaxInputSize] is rejected with an
// [oaserrors.ResourceLimitError]. Use [WithMaxInputSize] to change the limit.
//
// # Logging
//
// [Logger] is the structured logging interface shared by every hsrgen package.
// [NopLogger] discards everything; [SlogAdapter] forwards to log/slog.
package parser
