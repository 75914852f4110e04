package build

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kotodict/kotodict"
)

func TestChunk_StringLengthEncoding(t *testing.T) {
	tests := []struct {
		n    int
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x80}},
		{129, []byte{0x80, 0x81}},
		{256, []byte{0x81, 0x00}},
		{MaxStringLength, []byte{0xff, 0xff}},
	}
	for _, tt := range tests {
		c := newChunk(16)
		require.NoError(t, c.putStringLength(tt.n))
		require.Equal(t, tt.want, c.buf, "length %d", tt.n)
	}
}

func TestChunk_StringLengthTooLong(t *testing.T) {
	c := newChunk(16)
	err := c.putStringLength(MaxStringLength + 1)
	require.ErrorIs(t, err, kotodict.ErrValidation)
}

func TestChunk_PutString(t *testing.T) {
	c := newChunk(64)
	require.NoError(t, c.putString("大学"))
	require.Equal(t, append([]byte{6}, []byte("大学")...), c.buf)
}

func TestChunk_PutEmptyIfEqual(t *testing.T) {
	c := newChunk(64)
	require.NoError(t, c.putEmptyIfEqual("大学", "大学"))
	require.Equal(t, []byte{0}, c.buf)

	c = newChunk(64)
	require.NoError(t, c.putEmptyIfEqual("だいがく", "大学"))
	require.Equal(t, append([]byte{12}, []byte("だいがく")...), c.buf)
}

func TestChunk_PutInt32Array(t *testing.T) {
	c := newChunk(1024)
	require.NoError(t, c.putInt32Array([]int32{1, -1}))
	require.Equal(t, []byte{2, 1, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}, c.buf)

	big := make([]int32, MaxUnits+1)
	err := c.putInt32Array(big)
	require.ErrorIs(t, err, kotodict.ErrTooManyUnits)

	c = newChunk(1024)
	require.NoError(t, c.putInt32Array(make([]int32, MaxUnits)))
	require.Equal(t, 1+4*MaxUnits, c.Len())
}

func TestChunk_FlushDiscipline(t *testing.T) {
	c := newChunk(8)
	require.False(t, c.WontFit(8))
	c.putInt32(7)
	require.True(t, c.WontFit(8))
	require.False(t, c.WontFit(4))

	var sink bytes.Buffer
	n, err := c.Flush(&sink)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, 0, c.Len())
	require.Equal(t, []byte{7, 0, 0, 0}, sink.Bytes())

	// A flushed chunk regains its full nominal capacity.
	require.False(t, c.WontFit(8))
}
