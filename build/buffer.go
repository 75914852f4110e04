package build

import (
	"encoding/binary"
	"io"

	"github.com/kotodict/kotodict"
)

const (
	// MaxStringLength is the maximum UTF-8 byte length of any stored
	// string field.
	MaxStringLength = 0x7fff

	// MaxUnits is the maximum element count of a reference array; the
	// serialized count must fit one signed byte.
	MaxUnits = 127

	// DefaultBufferSize is the working buffer capacity for streaming
	// entry payloads.
	DefaultBufferSize = 128 * 1024

	// DefaultFlushThreshold is the low-water mark: when remaining buffer
	// capacity drops below it, the buffer is flushed to the sink.
	DefaultFlushThreshold = 16 * 1024
)

// chunk is the bounded working buffer for streaming payloads. Little-
// endian throughout. The flush discipline keeps it under its nominal
// capacity; a single oversized entry grows the backing slice rather than
// failing mid-record.
type chunk struct {
	buf []byte
	cap int
}

func newChunk(size int) *chunk {
	return &chunk{
		buf: make([]byte, 0, size),
		cap: size,
	}
}

// Len returns the number of buffered bytes.
func (c *chunk) Len() int {
	return len(c.buf)
}

// WontFit reports whether fewer than n bytes of nominal capacity remain.
func (c *chunk) WontFit(n int) bool {
	return c.cap-len(c.buf) < n
}

// Flush writes the buffered bytes to w and resets the buffer, returning
// the byte count handed over.
func (c *chunk) Flush(w io.Writer) (int, error) {
	n, err := w.Write(c.buf)
	if err != nil {
		return n, err
	}
	c.buf = c.buf[:0]
	return n, nil
}

func (c *chunk) putInt16(v int16) {
	c.buf = binary.LittleEndian.AppendUint16(c.buf, uint16(v))
}

func (c *chunk) putInt32(v int32) {
	c.buf = binary.LittleEndian.AppendUint32(c.buf, uint32(v))
}

// putStringLength appends the 1-or-2-byte length prefix: values under 128
// take one byte, larger values set the high bit and carry the low eight
// bits in a second byte.
func (c *chunk) putStringLength(n int) error {
	if n < 0 || n > MaxStringLength {
		return &kotodict.ErrStringTooLong{Field: "string", Length: n, Limit: MaxStringLength}
	}
	if n < 0x80 {
		c.buf = append(c.buf, byte(n))
	} else {
		c.buf = append(c.buf, byte(n>>8)|0x80, byte(n))
	}
	return nil
}

func (c *chunk) putString(s string) error {
	if err := c.putStringLength(len(s)); err != nil {
		return err
	}
	c.buf = append(c.buf, s...)
	return nil
}

// putEmptyIfEqual stores s, or the empty string when s equals surface.
// The reader applies the convention inversely.
func (c *chunk) putEmptyIfEqual(s, surface string) error {
	if s == surface {
		return c.putString("")
	}
	return c.putString(s)
}

// putInt32Array appends one signed count byte followed by the elements.
func (c *chunk) putInt32Array(a []int32) error {
	if len(a) > MaxUnits {
		return kotodict.ErrTooManyUnits
	}
	c.buf = append(c.buf, byte(len(a)))
	for _, v := range a {
		c.putInt32(v)
	}
	return nil
}
