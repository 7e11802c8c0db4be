package runner

import (
	"bytes"
	"sync"

	quorumerrors "github.com/mrz1836/quorum/internal/errors"
)

// boundedBuffer accumulates stream output up to a hard ceiling.
// Exceeding the ceiling is a failure for the whole capture, not a silent
// truncation: a truncated JSON document must never reach the normalizer as
// if it were complete. The mutex makes it safe for the exec package's copy
// goroutines.
type boundedBuffer struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	limit      int
	overflowed bool
}

func newBoundedBuffer(limit int) *boundedBuffer {
	return &boundedBuffer{limit: limit}
}

// Write implements io.Writer. Once the ceiling is hit, it refuses all
// further writes and reports the overflow error, which also aborts the
// stream copy.
func (b *boundedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.overflowed || b.buf.Len()+len(p) > b.limit {
		b.overflowed = true
		return 0, quorumerrors.ErrOutputOverflow
	}
	return b.buf.Write(p)
}

// String returns the captured text.
func (b *boundedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Overflowed reports whether the ceiling was exceeded.
func (b *boundedBuffer) Overflowed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.overflowed
}
