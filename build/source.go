package build

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/kotodict/kotodict"
)

// ReadRows streams the rows of a lexicon CSV at path to fn, one call per
// row with a 1-based row number. Sources ending in .gz are decompressed
// transparently. An error from fn aborts the stream; row numbers are
// attached via kotodict.LineError.
func ReadRows(path string, fn func(row int, cols []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	row := 0
	for {
		cols, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		row++
		if err != nil {
			return &kotodict.LineError{
				Line: row,
				Err:  fmt.Errorf("%w: %v", kotodict.ErrStructural, err),
			}
		}
		if err := fn(row, cols); err != nil {
			return &kotodict.LineError{Line: row, Err: err}
		}
	}
}

// ReadFile ingests every row of one lexicon source into the compiler and
// returns the number of entries added. The first bad row fails the whole
// read.
func (lx *Lexicon) ReadFile(path string) (int, error) {
	added := 0
	err := ReadRows(path, func(row int, cols []string) error {
		e, err := lx.ParseRow(cols)
		if err != nil {
			return err
		}
		lx.AddEntry(e)
		added++
		return nil
	})
	return added, err
}
