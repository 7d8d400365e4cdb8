// Package cmd provides the command-line interface for flutterkit.
//
// The root command carries the global --config and --log-level flags and delegates to:
//   - project: create, list and info
//   - mcp: Model Context Protocol server for AI assistants
package cmd
