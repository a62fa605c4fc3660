// Package taxonomy builds the status-aware error union of a route.
//
// Each route gets one union with a variant per declared 4xx status, an
// optional Default variant carrying the default response payload, and an
// Unexpected variant wrapping any other error. Every variant maps to an HTTP
// status: declared variants to their literal code, Default to the code carried
// with the value, and Unexpected to whatever the wrapped error reports, 500
// otherwise.
package taxonomy
