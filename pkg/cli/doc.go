// Package cli holds the command-line layer.
//
//   - cli/cmd: the root command and its subcommands
//   - cli/ui/errorhandler: cobra execution with normalized error messages
package cli
