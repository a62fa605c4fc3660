package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/hsrgen/generator"
)

type inspectInput struct {
	Spec    documentInput `json:"spec"               jsonschema:"The OpenAPI 3 document to inspect"`
	Method  string        `json:"method,omitempty"   jsonschema:"Only operations with this HTTP method (case-insensitive)"`
	Path    string        `json:"path,omitempty"     jsonschema:"Only operations whose path template matches this glob, e.g. /pets/*"`
	GroupBy string        `json:"group_by,omitempty" jsonschema:"Return counts instead of operations: method or error"`
	Types   bool          `json:"types,omitempty"    jsonschema:"Include the named type table"`
	Offset  int           `json:"offset,omitempty"   jsonschema:"Skip this many operations"`
	Limit   int           `json:"limit,omitempty"    jsonschema:"Return at most this many operations"`
}

type inspectOutput struct {
	Title          string                       `json:"title"`
	Version        string                       `json:"version"`
	TypeCount      int                          `json:"type_count"`
	OperationCount int                          `json:"operation_count"`
	Matched        int                          `json:"matched"`
	Returned       int                          `json:"returned"`
	Types          []generator.TypeSummary      `json:"types,omitempty"`
	Operations     []generator.OperationSummary `json:"operations,omitempty"`
	Groups         []groupCount                 `json:"groups,omitempty"`
}

var inspectGroups = []string{"method", "error"}

func handleInspect(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	if err := validateGroupBy(input.GroupBy, inspectGroups); err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	if err := validateGlobPattern(input.Path); err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	summary, err := generator.New().InspectParsed(*parseResult)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	var matched []generator.OperationSummary
	for _, op := range summary.Operations {
		if input.Method != "" && !strings.EqualFold(op.Method, input.Method) {
			continue
		}
		if !matchPath(input.Path, op.Path) {
			continue
		}
		matched = append(matched, op)
	}

	output := inspectOutput{
		Title:          summary.Title,
		Version:        summary.Version,
		TypeCount:      len(summary.Types),
		OperationCount: len(summary.Operations),
		Matched:        len(matched),
	}
	if input.Types {
		output.Types = summary.Types
	}

	switch strings.ToLower(input.GroupBy) {
	case "method":
		output.Groups = groupAndSort(matched, func(op generator.OperationSummary) []string {
			return []string{op.Method}
		})
	case "error":
		output.Groups = groupAndSort(matched, func(op generator.OperationSummary) []string {
			return op.Errors
		})
	default:
		output.Operations = paginate(matched, input.Offset, input.Limit)
		output.Returned = len(output.Operations)
	}
	return nil, output, nil
}
