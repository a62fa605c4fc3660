package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/hsrgen/internal/cliutil"
	"github.com/erraggy/hsrgen/internal/mcpserver"
)

// HandleMCP serves the MCP tools over stdio until ctx is done or the client
// disconnects.
func HandleMCP(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: hsrgen mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the inspect and generate tools over the Model Context Protocol on stdio.\n")
		cliutil.Writef(fs.Output(), "Server defaults are read from HSRGEN_* environment variables.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}
	if err := mcpserver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
