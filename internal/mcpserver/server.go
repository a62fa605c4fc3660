// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes hsrgen capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/hsrgen"
)

const serverInstructions = `hsrgen MCP server: compiles OpenAPI 3 contracts into Go types, a typed client, and a typed server skeleton with per-operation error unions.

Tools:
- inspect: compile a contract and summarize its named types, routes and error variants without writing files. Use it first to catch contract errors.
- generate: compile a contract and write the generated package to output_dir. Use check=true to report out-of-date files without writing.

Configuration: defaults are configurable via HSRGEN_* environment variables set in your MCP client config.

Key settings:
- HSRGEN_CACHE_TTL (default: 15m): how long a parsed document stays cached
- HSRGEN_CACHE_ENABLED (default: true): disable document caching entirely
- HSRGEN_LIST_LIMIT (default: 100): default result limit for inspect
- HSRGEN_MAX_INLINE_SIZE (default: 10MiB): largest accepted inline document

Caching: Parsed documents are cached per session and evicted least recently used first. A file is keyed by path, size and mtime, so editing it invalidates the entry.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "hsrgen", Version: hsrgen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Compile an OpenAPI 3 document and summarize the result: named types with their Go names, and one entry per operation with method, path, parameters, success status and the variants of its error union. Writes nothing. Filter by method or path glob (* matches one segment), use group_by (method or error) for counts, and offset/limit to page. Contract errors (unsupported schemas, unresolved references, route conflicts) are reported as tool errors.",
	}, handleInspect)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a Go package from an OpenAPI 3 document: types.go, errors.go, and with client/server enabled client.go, service.go and server.go. When none of types, client or server is set, everything is generated. Requires output_dir. Unchanged files are not rewritten. Use check=true to list out-of-date files without writing. Returns a manifest of generated files.",
	}, handleGenerate)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is one of the allowed values.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matchPath never encounters an
// invalid pattern at match time.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchPath reports whether a route template matches pattern. An empty
// pattern matches everything; a pattern without glob characters must equal
// the template.
func matchPath(pattern, template string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern == template
	}
	ok, _ := path.Match(pattern, template)
	return ok
}
