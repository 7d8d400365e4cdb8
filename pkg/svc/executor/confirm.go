package executor

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultConfirmPatterns returns the prompt patterns answered during terminal sessions.
func DefaultConfirmPatterns() []string {
	return []string{
		`\(Y/n\)`,
		`\(y/N\)`,
		`\[Y/n\]`,
		`\[y/N\]`,
		`proceed`,
	}
}

// ConfirmationMatcher finds yes/no prompts in terminal output. Matching is case-insensitive.
type ConfirmationMatcher struct {
	re *regexp.Regexp
}

// NewConfirmationMatcher compiles patterns (Go regexp syntax) into one matcher.
// An empty list selects DefaultConfirmPatterns.
func NewConfirmationMatcher(patterns []string) (*ConfirmationMatcher, error) {
	if len(patterns) == 0 {
		patterns = DefaultConfirmPatterns()
	}

	groups := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		_, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid confirmation pattern %q: %w", pattern, err)
		}

		groups = append(groups, "(?:"+pattern+")")
	}

	return &ConfirmationMatcher{re: regexp.MustCompile("(?i)" + strings.Join(groups, "|"))}, nil
}

// FindAll returns the [start, end) offsets of every prompt in text, in order.
func (m *ConfirmationMatcher) FindAll(text []byte) [][]int {
	if m == nil || m.re == nil {
		return nil
	}

	return m.re.FindAllIndex(text, -1)
}
