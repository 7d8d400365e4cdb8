package notify

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// plainType has no symbol and no color.
const plainType MessageType = -1

// LineWriter renders each complete line written to it as a notify message.
//
// Lines starting with "[" are treated as stage headers (ActivityType). By trimmed text,
// "✔" lines are successes, "✗" lines errors, "would write:" lines generations and
// "skipped" lines warnings. Everything else is passed through unstyled. Partial lines are held until their
// newline arrives or Flush is called.
type LineWriter struct {
	out     io.Writer
	mu      sync.Mutex
	pending bytes.Buffer
}

// NewLineWriter creates a LineWriter that writes styled lines to out.
func NewLineWriter(out io.Writer) *LineWriter {
	return &LineWriter{out: out}
}

// Write implements io.Writer.
func (w *LineWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending.Write(data)

	for {
		idx := bytes.IndexByte(w.pending.Bytes(), '\n')
		if idx < 0 {
			break
		}

		line := string(w.pending.Next(idx + 1))
		w.writeLine(strings.TrimSuffix(line, "\n"))
	}

	return len(data), nil
}

// Flush writes any buffered partial line.
func (w *LineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending.Len() == 0 {
		return
	}

	w.writeLine(w.pending.String())
	w.pending.Reset()
}

func (w *LineWriter) writeLine(line string) {
	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(line, "["):
		Activityf(w.out, "%s", line)
	case strings.HasPrefix(trimmed, "✔"):
		Successf(w.out, "%s", strings.TrimSpace(strings.TrimPrefix(trimmed, "✔")))
	case strings.HasPrefix(trimmed, "✗"):
		Errorf(w.out, "%s", strings.TrimSpace(strings.TrimPrefix(trimmed, "✗")))
	case strings.HasPrefix(trimmed, "would write:"):
		Generatef(w.out, "%s", trimmed)
	case strings.HasPrefix(trimmed, "skipped "):
		Warningf(w.out, "%s", trimmed)
	default:
		WriteMessage(Message{Type: plainType, Content: "%s", Args: []any{line}, Writer: w.out})
	}
}
