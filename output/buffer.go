package output

import "fmt"

// Buffer is an in-memory ModelOutput used in tests and for small
// artifacts. Writing past the end grows the buffer; setting the position
// past the end zero-fills the gap on the next write, mirroring sparse
// file semantics closely enough for the reserve-then-patch protocol.
type Buffer struct {
	data []byte
	pos  int
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.data) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:], p)
	b.pos = end
	return len(p), nil
}

// Position returns the current write position.
func (b *Buffer) Position() (int64, error) {
	return int64(b.pos), nil
}

// SetPosition moves the write position.
func (b *Buffer) SetPosition(pos int64) error {
	if pos < 0 {
		return fmt.Errorf("negative position %d", pos)
	}
	b.pos = int(pos)
	return nil
}

// WithPart runs fn. The in-memory sink does not report progress.
func (b *Buffer) WithPart(name string, fn func() error) error {
	return fn()
}

// Bytes returns the accumulated artifact.
func (b *Buffer) Bytes() []byte {
	return b.data
}
