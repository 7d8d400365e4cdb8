package executor

import (
	"bytes"
	"sync"
)

// DefaultMaxOutputBytes is the default cap on captured output (10 MiB).
const DefaultMaxOutputBytes = 10 << 20

// cappedBuffer collects output up to limit bytes.
//
// Writes past the limit are discarded but still reported as consumed, so the child
// never blocks on a full pipe; Exceeded is then checked once the child has exited.
type cappedBuffer struct {
	mu       sync.Mutex
	buf      bytes.Buffer
	limit    int
	exceeded bool
	onExceed func()
}

func newCappedBuffer(limit int, onExceed func()) *cappedBuffer {
	if limit <= 0 {
		limit = DefaultMaxOutputBytes
	}

	return &cappedBuffer{limit: limit, onExceed: onExceed}
}

func (b *cappedBuffer) Write(data []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.exceeded {
		return len(data), nil
	}

	if b.buf.Len()+len(data) > b.limit {
		b.exceeded = true

		if b.onExceed != nil {
			b.onExceed()
		}

		return len(data), nil
	}

	return b.buf.Write(data)
}

func (b *cappedBuffer) Exceeded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.exceeded
}

func (b *cappedBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Len()
}

func (b *cappedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// Since returns a copy of the content from offset onwards.
func (b *cappedBuffer) Since(offset int) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	data := b.buf.Bytes()
	if offset >= len(data) {
		return nil
	}

	if offset < 0 {
		offset = 0
	}

	return bytes.Clone(data[offset:])
}
