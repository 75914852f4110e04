// Package output provides the seekable byte sink the lexicon serializer
// writes to. The sink exposes explicit position capabilities because the
// offset table is reserved first and back-patched once all entries are
// emitted.
package output

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kotodict/kotodict"
)

// ModelOutput is the byte sink for one dictionary artifact. Position and
// SetPosition enable the two-phase reserve-then-patch write of the offset
// table. WithPart brackets a named section for progress reporting; it
// does not alter what is written.
type ModelOutput interface {
	io.Writer

	Position() (int64, error)
	SetPosition(pos int64) error
	WithPart(name string, fn func() error) error
}

// File is a ModelOutput over an os.File. Writes are unbuffered so that
// positions observed through Position are always exact; the serializer
// brings its own chunked buffer.
type File struct {
	f      *os.File
	logger *kotodict.Logger
}

// NewFile wraps f. A nil logger disables part reporting.
func NewFile(f *os.File, logger *kotodict.Logger) *File {
	if logger == nil {
		logger = kotodict.NoopLogger()
	}
	return &File{f: f, logger: logger}
}

func (o *File) Write(p []byte) (int, error) {
	return o.f.Write(p)
}

// Position returns the current absolute write position.
func (o *File) Position() (int64, error) {
	return o.f.Seek(0, io.SeekCurrent)
}

// SetPosition moves the write position to an absolute offset.
func (o *File) SetPosition(pos int64) error {
	_, err := o.f.Seek(pos, io.SeekStart)
	return err
}

// WithPart runs fn and reports the section's size and duration.
func (o *File) WithPart(name string, fn func() error) error {
	start, err := o.Position()
	if err != nil {
		return err
	}
	began := time.Now()
	if err := fn(); err != nil {
		return err
	}
	end, err := o.Position()
	if err != nil {
		return err
	}
	o.logger.LogPart(name, end-start, time.Since(began))
	return nil
}

// Save writes one artifact through fn and commits it atomically: fn runs
// against a temp file in the target directory, which replaces path only
// after fn returns nil and the file is synced. On failure nothing is left
// committed at path.
func Save(path string, logger *kotodict.Logger, fn func(ModelOutput) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0644)

	if err := fn(NewFile(tmp, logger)); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}
