package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/hsrgen"
	"github.com/erraggy/hsrgen/cmd/hsrgen/commands"
	"github.com/erraggy/hsrgen/internal/cliutil"
)

// validCommands lists every command name for typo suggestions.
var validCommands = []string{"generate", "inspect", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]
	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Println(hsrgen.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		err = commands.HandleGenerate(ctx, os.Args[2:])
	case "inspect":
		err = commands.HandleInspect(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(ctx, os.Args[2:])
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			cliutil.Writef(os.Stderr, "Did you mean %q?\n", s)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// suggestCommand returns the closest valid command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, cmd := range validCommands {
		if d := levenshtein(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`hsrgen - typed Go clients and servers from OpenAPI 3 contracts

Usage:
  hsrgen <command> [options]

Commands:
  generate    Generate a Go package from a contract
  inspect     Summarize the compiled types, routes and error unions
  mcp         Serve the generate and inspect tools over MCP (stdio)
  version     Show version information
  help        Show this help message

Examples:
  hsrgen generate -p petstore -o ./petstore petstore.yaml
  hsrgen generate --check
  hsrgen generate --watch -o ./api openapi.yaml
  hsrgen inspect --format json petstore.yaml

Configuration:
  Settings are read from hsrgen.toml in the working directory (or the file
  named by HSRGEN_CONFIG), then HSRGEN_* environment variables, then flags.

Run 'hsrgen <command> --help' for more information on a command.`)
}
