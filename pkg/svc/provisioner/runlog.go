package provisioner

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// RunLog is the ordered, append-only log of one run. Lines are mirrored to an optional
// live writer as they are added.
type RunLog struct {
	lines []string
	live  io.Writer
}

// NewRunLog creates a RunLog mirroring to live, which may be nil.
func NewRunLog(live io.Writer) *RunLog {
	return &RunLog{live: live}
}

// Addf appends a formatted line.
func (l *RunLog) Addf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.lines = append(l.lines, line)

	if l.live != nil {
		_, _ = io.WriteString(l.live, line+"\n")
	}
}

// Lines returns a copy of the lines.
func (l *RunLog) Lines() []string {
	return slices.Clone(l.lines)
}

// String joins the lines with newlines.
func (l *RunLog) String() string {
	return strings.Join(l.lines, "\n")
}
