package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer_ReserveAndPatch(t *testing.T) {
	b := NewBuffer()

	_, err := b.Write([]byte("head"))
	require.NoError(t, err)

	// Reserve a 4-byte hole, write past it, then patch it.
	hole, err := b.Position()
	require.NoError(t, err)
	require.NoError(t, b.SetPosition(hole+4))
	_, err = b.Write([]byte("payload"))
	require.NoError(t, err)

	end, err := b.Position()
	require.NoError(t, err)
	require.NoError(t, b.SetPosition(hole))
	_, err = b.Write([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	require.NoError(t, b.SetPosition(end))

	require.Equal(t, []byte("head\x01\x02\x03\x04payload"), b.Bytes())
}

func TestBuffer_SetPositionNegative(t *testing.T) {
	b := NewBuffer()
	require.Error(t, b.SetPosition(-1))
}

func TestFile_ReserveAndPatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	o := NewFile(f, nil)
	_, err = o.Write([]byte("abcdef"))
	require.NoError(t, err)

	require.NoError(t, o.SetPosition(2))
	_, err = o.Write([]byte("XY"))
	require.NoError(t, err)

	pos, err := o.Position()
	require.NoError(t, err)
	require.Equal(t, int64(4), pos)

	require.NoError(t, f.Sync())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("abXYef"), data)
}

func TestFile_WithPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	o := NewFile(f, nil)
	err = o.WithPart("payload", func() error {
		_, err := o.Write([]byte("data"))
		return err
	})
	require.NoError(t, err)

	failed := errors.New("boom")
	err = o.WithPart("payload", func() error { return failed })
	require.ErrorIs(t, err, failed)
}

func TestSave_Atomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.dic")

	err := Save(path, nil, func(mo ModelOutput) error {
		_, err := mo.Write([]byte("artifact"))
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("artifact"), data)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSave_FailureCommitsNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.dic")

	failed := errors.New("bad row")
	err := Save(path, nil, func(mo ModelOutput) error {
		_, werr := mo.Write([]byte("partial"))
		require.NoError(t, werr)
		return failed
	})
	require.ErrorIs(t, err, failed)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "temp file is cleaned up on failure")
}
