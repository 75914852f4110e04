package dictionary

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MappedLexicon is a Lexicon backed by a memory-mapped file. Zero-copy:
// WordInfo decoding reads the mapping directly.
type MappedLexicon struct {
	*Lexicon

	f *os.File
	m mmap.MMap
}

// Open memory-maps the compiled lexicon block at path.
func Open(path string) (*MappedLexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	lex, err := ParseLexicon(m)
	if err != nil {
		m.Unmap()
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &MappedLexicon{Lexicon: lex, f: f, m: m}, nil
}

// Close unmaps the file. The Lexicon must not be used afterwards.
func (ml *MappedLexicon) Close() error {
	err := ml.m.Unmap()
	if cerr := ml.f.Close(); err == nil {
		err = cerr
	}
	return err
}
