package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/hsrgen/generator"
	"github.com/erraggy/hsrgen/internal/fileutil"
)

type generateInput struct {
	Spec          documentInput `json:"spec"                     jsonschema:"The OpenAPI 3 document to generate code from"`
	Client        bool          `json:"client,omitempty"         jsonschema:"Generate the typed client"`
	Server        bool          `json:"server,omitempty"         jsonschema:"Generate the service interface and HTTP handlers"`
	Types         bool          `json:"types,omitempty"          jsonschema:"Generate type definitions and error unions"`
	PackageName   string        `json:"package_name,omitempty"   jsonschema:"Go package name for generated code (default: api)"`
	RuntimeImport string        `json:"runtime_import,omitempty" jsonschema:"Import path of the hsr runtime package"`
	UserAgent     string        `json:"user_agent,omitempty"     jsonschema:"Default User-Agent of the generated client"`
	OutputDir     string        `json:"output_dir"               jsonschema:"Directory to write generated files to"`
	Check         bool          `json:"check,omitempty"          jsonschema:"Report out-of-date files without writing"`
}

type generatedFileInfo struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Written bool   `json:"written"`
}

type generateOutput struct {
	Success             bool                `json:"success"`
	OutputDir           string              `json:"output_dir"`
	PackageName         string              `json:"package_name"`
	FileCount           int                 `json:"file_count"`
	Files               []generatedFileInfo `json:"files"`
	GeneratedTypes      int                 `json:"generated_types"`
	GeneratedOperations int                 `json:"generated_operations"`
	UpToDate            bool                `json:"up_to_date"`
	OutOfDate           []string            `json:"out_of_date,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	if input.OutputDir == "" {
		return errResult(fmt.Errorf("output_dir is required")), generateOutput{}, nil
	}

	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	var opts []generator.Option
	if input.PackageName != "" {
		opts = append(opts, generator.WithPackageName(input.PackageName))
	}
	if input.Client || input.Server || input.Types {
		opts = append(opts,
			generator.WithClient(input.Client),
			generator.WithServer(input.Server),
			generator.WithTypes(input.Types),
		)
	}
	if input.RuntimeImport != "" {
		opts = append(opts, generator.WithRuntimeImport(input.RuntimeImport))
	}
	if input.UserAgent != "" {
		opts = append(opts, generator.WithUserAgent(input.UserAgent))
	}

	result, err := generator.GenerateParsed(*parseResult, opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:             true,
		OutputDir:           input.OutputDir,
		PackageName:         result.PackageName,
		FileCount:           len(result.Files),
		GeneratedTypes:      result.GeneratedTypes,
		GeneratedOperations: result.GeneratedOperations,
	}

	written := make(map[string]bool)
	if input.Check {
		for _, f := range result.Files {
			_, err := fileutil.WriteFile(filepath.Join(input.OutputDir, filepath.Base(f.Name)), f.Content, fileutil.WriteOptions{Check: true})
			switch {
			case errors.Is(err, fileutil.ErrOutOfDate):
				output.OutOfDate = append(output.OutOfDate, f.Name)
			case err != nil:
				return errResult(err), generateOutput{}, nil
			}
		}
		output.UpToDate = len(output.OutOfDate) == 0
	} else {
		names, err := result.WriteFiles(input.OutputDir)
		if err != nil {
			return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
		}
		for _, n := range names {
			written[n] = true
		}
		output.UpToDate = true
	}

	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		output.Files = append(output.Files, generatedFileInfo{
			Name:    f.Name,
			Size:    len(f.Content),
			Written: written[f.Name],
		})
	}

	return nil, output, nil
}
