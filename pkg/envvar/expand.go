// Package envvar expands ${VAR} placeholders in configuration values.
package envvar

import (
	"log/slog"
	"os"
	"regexp"
)

// pattern matches ${VAR_NAME} and ${VAR_NAME:-default} placeholders.
// Groups: 1 = variable name, 2 = ":-" marker, 3 = default value.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(:-([^}]*))?\}`)

// LookupFunc resolves an environment variable, reporting whether it is set.
type LookupFunc func(key string) (string, bool)

// Expand replaces ${VAR_NAME} and ${VAR_NAME:-default} placeholders with values
// from the process environment.
// If a referenced variable is not set:
//   - With default syntax ${VAR:-default}: uses the default value (possibly empty)
//   - Without default ${VAR}: uses empty string and logs a warning
func Expand(value string) string {
	return ExpandWith(value, os.LookupEnv)
}

// ExpandWith is Expand with a caller-supplied lookup.
func ExpandWith(value string, lookup LookupFunc) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := pattern.FindStringSubmatch(match)

		if envValue, ok := lookup(groups[1]); ok {
			return envValue
		}

		if groups[2] != "" {
			return groups[3]
		}

		slog.Warn("environment variable not set", "variable", groups[1])

		return ""
	})
}

// ExpandAll expands every element of values in place and returns the slice.
func ExpandAll(values []string) []string {
	for i, value := range values {
		values[i] = Expand(value)
	}

	return values
}
