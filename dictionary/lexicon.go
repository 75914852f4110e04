package dictionary

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Lexicon block layout, little-endian:
//
//	int32                entryCount
//	int16[entryCount*3]  parameters (left-id, right-id, cost per entry)
//	int32[entryCount]    offset table, absolute byte offsets of WordInfo records
//	...                  variable-length WordInfo records
//
// String fields carry a 1-or-2-byte length prefix: values under 128 use a
// single byte; larger values set the high bit of the first byte and store
// the remaining eight bits in the second. Reference arrays carry a single
// count byte (max 127) followed by int32 elements.
const (
	paramEntrySize  = 6
	offsetEntrySize = 4
)

// ErrCorrupted is returned when the lexicon block does not decode.
var ErrCorrupted = errors.New("corrupted lexicon block")

// Lexicon gives random access to a compiled lexicon block. The backing
// byte slice is typically a memory-mapped file; Lexicon never copies or
// mutates it.
type Lexicon struct {
	data       []byte
	entryCount int
	paramsOff  int
	offsetsOff int
}

// ParseLexicon validates the block framing and returns a reader over data.
func ParseLexicon(data []byte) (*Lexicon, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: block shorter than entry count", ErrCorrupted)
	}
	count := int32(binary.LittleEndian.Uint32(data))
	if count < 0 {
		return nil, fmt.Errorf("%w: negative entry count", ErrCorrupted)
	}
	l := &Lexicon{
		data:       data,
		entryCount: int(count),
		paramsOff:  4,
	}
	l.offsetsOff = l.paramsOff + l.entryCount*paramEntrySize
	payloadOff := l.offsetsOff + l.entryCount*offsetEntrySize
	if payloadOff > len(data) {
		return nil, fmt.Errorf("%w: block shorter than offset table", ErrCorrupted)
	}
	return l, nil
}

// Size returns the number of entries.
func (l *Lexicon) Size() int {
	return l.entryCount
}

// Parameters returns the connection parameters of the given word index.
func (l *Lexicon) Parameters(word int32) (left, right, cost int16, err error) {
	if word < 0 || int(word) >= l.entryCount {
		return 0, 0, 0, fmt.Errorf("%w: word index %d of %d", ErrCorrupted, word, l.entryCount)
	}
	off := l.paramsOff + int(word)*paramEntrySize
	left = int16(binary.LittleEndian.Uint16(l.data[off:]))
	right = int16(binary.LittleEndian.Uint16(l.data[off+2:]))
	cost = int16(binary.LittleEndian.Uint16(l.data[off+4:]))
	return left, right, cost, nil
}

// WordInfo decodes the record of the given word index, materializing the
// empty-if-equal normalized and reading forms.
func (l *Lexicon) WordInfo(word int32) (WordInfo, error) {
	var wi WordInfo
	if word < 0 || int(word) >= l.entryCount {
		return wi, fmt.Errorf("%w: word index %d of %d", ErrCorrupted, word, l.entryCount)
	}
	off := binary.LittleEndian.Uint32(l.data[l.offsetsOff+int(word)*offsetEntrySize:])
	d := decoder{data: l.data, pos: int(off)}

	wi.Surface = d.readString()
	wi.HeadwordLength = int16(d.readStringLength())
	wi.POSID = d.readInt16()
	wi.NormalizedForm = d.readString()
	if wi.NormalizedForm == "" {
		wi.NormalizedForm = wi.Surface
	}
	wi.DictionaryFormWordID = d.readInt32()
	wi.ReadingForm = d.readString()
	if wi.ReadingForm == "" {
		wi.ReadingForm = wi.Surface
	}
	wi.AUnitSplit = d.readInt32Array()
	wi.BUnitSplit = d.readInt32Array()
	wi.WordStructure = d.readInt32Array()
	wi.SynonymGroupIDs = d.readInt32Array()
	if d.err != nil {
		return WordInfo{}, fmt.Errorf("%w: word %d: %v", ErrCorrupted, word, d.err)
	}
	return wi, nil
}

// decoder walks a WordInfo record with a sticky error, so the field reads
// above stay linear.
type decoder struct {
	data []byte
	pos  int
	err  error
}

func (d *decoder) fail(what string) {
	if d.err == nil {
		d.err = fmt.Errorf("truncated %s at offset %d", what, d.pos)
	}
}

func (d *decoder) readStringLength() int {
	if d.err != nil {
		return 0
	}
	if d.pos >= len(d.data) {
		d.fail("string length")
		return 0
	}
	b := d.data[d.pos]
	d.pos++
	if b&0x80 == 0 {
		return int(b)
	}
	if d.pos >= len(d.data) {
		d.fail("string length")
		return 0
	}
	lo := d.data[d.pos]
	d.pos++
	return int(b&0x7f)<<8 | int(lo)
}

func (d *decoder) readString() string {
	n := d.readStringLength()
	if d.err != nil {
		return ""
	}
	if d.pos+n > len(d.data) {
		d.fail("string")
		return ""
	}
	s := string(d.data[d.pos : d.pos+n])
	d.pos += n
	return s
}

func (d *decoder) readInt16() int16 {
	if d.err != nil {
		return 0
	}
	if d.pos+2 > len(d.data) {
		d.fail("int16")
		return 0
	}
	v := int16(binary.LittleEndian.Uint16(d.data[d.pos:]))
	d.pos += 2
	return v
}

func (d *decoder) readInt32() int32 {
	if d.err != nil {
		return 0
	}
	if d.pos+4 > len(d.data) {
		d.fail("int32")
		return 0
	}
	v := int32(binary.LittleEndian.Uint32(d.data[d.pos:]))
	d.pos += 4
	return v
}

func (d *decoder) readInt32Array() []int32 {
	if d.err != nil {
		return nil
	}
	if d.pos >= len(d.data) {
		d.fail("array count")
		return nil
	}
	n := int(int8(d.data[d.pos]))
	d.pos++
	if n < 0 {
		d.fail("array count")
		return nil
	}
	if n == 0 {
		return nil
	}
	if d.pos+n*4 > len(d.data) {
		d.fail("array")
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(d.data[d.pos:]))
		d.pos += 4
	}
	return out
}

// Index is the reverse (surface, POS id, reading) -> word index lookup
// over a compiled lexicon. On duplicate identities the first entry wins.
type Index struct {
	ids map[IndexKey]int32
}

// IndexKey identifies a word by content.
type IndexKey struct {
	Surface string
	POSID   int16
	Reading string
}

// NewIndex scans the whole lexicon once and builds the reverse index.
func NewIndex(l *Lexicon) (*Index, error) {
	ids := make(map[IndexKey]int32, l.Size())
	for i := 0; i < l.Size(); i++ {
		wi, err := l.WordInfo(int32(i))
		if err != nil {
			return nil, err
		}
		key := IndexKey{Surface: wi.Surface, POSID: wi.POSID, Reading: wi.ReadingForm}
		if _, ok := ids[key]; !ok {
			ids[key] = int32(i)
		}
	}
	return &Index{ids: ids}, nil
}

// Lookup returns the word index for the identity, or -1 on miss.
func (x *Index) Lookup(surface string, posID int16, reading string) int32 {
	if id, ok := x.ids[IndexKey{Surface: surface, POSID: posID, Reading: reading}]; ok {
		return id
	}
	return -1
}
