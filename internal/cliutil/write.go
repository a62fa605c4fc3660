// Package cliutil holds small output helpers shared by the hsrgen commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// StdinFilePath is the contract path that selects standard input.
const StdinFilePath = "-"

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// DisplayPath returns "<stdin>" for StdinFilePath and path otherwise.
func DisplayPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}
