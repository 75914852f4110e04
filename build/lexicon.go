package build

import (
	"encoding/binary"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/kotodict/kotodict"
	"github.com/kotodict/kotodict/dictionary"
	"github.com/kotodict/kotodict/output"
)

// Lexicon CSV row shape, 0-based columns:
//
//	0  surface (trie headword)   1  left-id    2  right-id   3  cost
//	4  dictionary headword       5-10 POS1..POS6
//	11 reading                   12 normalized form
//	13 dictionary-form word id   14 unit type
//	15 a-unit split              16 b-unit split
//	17 word structure            18 synonym group ids (optional)
const (
	// MinColumns is the smallest accepted row width.
	MinColumns = 18

	// Escape normalization applies to the leading structural columns
	// only, never to the trailing reference columns.
	unescapedColumns = 15

	notIndexedLeftID = "-1"
	atomicUnitType   = "A"
	emptyMarker      = "*"
)

var numericIDPattern = regexp.MustCompile(`^U?\d+$`)

// WordEntry is one parsed lexicon row. The raw split and structure
// strings are retained until serialization because their resolution needs
// the complete entry set and the id-namespace state.
type WordEntry struct {
	// Headword is the surface indexed by the lookup trie; empty when the
	// row's left-id sentinel marks the entry as not independently
	// searchable.
	Headword string

	WordInfo dictionary.WordInfo

	AUnitSplitString    string
	BUnitSplitString    string
	WordStructureString string
}

// Lexicon accumulates parsed word entries and serializes them into the
// binary entry block. Entries are append-only; the index of an entry is
// its word id within the compilation unit.
type Lexicon struct {
	posLookup dictionary.POSLookup
	resolver  WordIDResolver
	params    *Parameters
	entries   []*WordEntry
	opts      options
}

// NewLexicon creates an empty compiler resolving POS tuples through pos.
func NewLexicon(pos dictionary.POSLookup, optFns ...Option) *Lexicon {
	return &Lexicon{
		posLookup: pos,
		params:    NewParameters(),
		opts:      applyOptions(optFns),
	}
}

// SetResolver installs the word-id resolver used during serialization.
// When unset, WriteTo resolves within the compiled entries themselves in
// the base namespace.
func (lx *Lexicon) SetResolver(r WordIDResolver) {
	lx.resolver = r
}

// Parameters exposes the connection-parameter accumulator, e.g. to
// configure matrix limits before ingestion.
func (lx *Lexicon) Parameters() *Parameters {
	return lx.params
}

// Entries returns the ordered entry list.
func (lx *Lexicon) Entries() []*WordEntry {
	return lx.entries
}

// Size returns the number of accumulated entries.
func (lx *Lexicon) Size() int {
	return len(lx.entries)
}

// AddEntry appends e and returns its word id within this compilation.
func (lx *Lexicon) AddEntry(e *WordEntry) int {
	id := len(lx.entries)
	lx.entries = append(lx.entries, e)
	return id
}

// ParseRow parses and validates one CSV row into a WordEntry. As a side
// effect the row's connection parameters are appended to the Parameters
// accumulator, so a row must be parsed exactly once and in entry order.
func (lx *Lexicon) ParseRow(cols []string) (*WordEntry, error) {
	if len(cols) < MinColumns {
		return nil, &kotodict.ErrTooFewColumns{Columns: len(cols), Required: MinColumns}
	}
	cols = slices.Clone(cols)
	for i := 0; i < unescapedColumns; i++ {
		s, err := Unescape(cols[i])
		if err != nil {
			return nil, err
		}
		cols[i] = s
	}

	for _, c := range []struct {
		col  int
		name string
	}{
		{0, "headword"},
		{4, "surface"},
		{11, "reading"},
		{12, "normalized form"},
	} {
		if len(cols[c.col]) > MaxStringLength {
			return nil, &kotodict.ErrStringTooLong{Field: c.name, Length: len(cols[c.col]), Limit: MaxStringLength}
		}
	}
	if cols[0] == "" {
		return nil, kotodict.ErrEmptyHeadword
	}

	entry := &WordEntry{}
	if cols[1] != notIndexedLeftID {
		entry.Headword = cols[0]
	}

	left, err := parseInt16("left-id", cols[1])
	if err != nil {
		return nil, err
	}
	right, err := parseInt16("right-id", cols[2])
	if err != nil {
		return nil, err
	}
	cost, err := parseInt16("cost", cols[3])
	if err != nil {
		return nil, err
	}
	if err := lx.params.Append(left, right, cost); err != nil {
		return nil, err
	}

	pos, err := dictionary.POSFromFields(cols[5:11])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kotodict.ErrValidation, err)
	}
	posID := lx.posLookup.Lookup(pos)
	if posID < 0 {
		return nil, fmt.Errorf("%w: %s", kotodict.ErrInvalidPOS, pos)
	}

	entry.AUnitSplitString = cols[15]
	entry.BUnitSplitString = cols[16]
	entry.WordStructureString = cols[17]
	for _, s := range []string{cols[15], cols[16], cols[17]} {
		if err := checkSplitFormat(s); err != nil {
			return nil, err
		}
	}
	if cols[14] == atomicUnitType &&
		(entry.AUnitSplitString != emptyMarker || entry.BUnitSplitString != emptyMarker) {
		return nil, kotodict.ErrInvalidSplitting
	}

	var synonymGIDs []int32
	if len(cols) > MinColumns {
		synonymGIDs, err = parseSynonymGroupIDs(cols[18])
		if err != nil {
			return nil, err
		}
	}

	dictFormID := dictionary.SelfDictionaryForm
	if cols[13] != emptyMarker {
		id, err := parseInt32("dictionary form", cols[13])
		if err != nil {
			return nil, err
		}
		dictFormID = id
	}

	entry.WordInfo = dictionary.WordInfo{
		Surface:              cols[4],
		HeadwordLength:       int16(len(cols[0])),
		POSID:                posID,
		NormalizedForm:       cols[12],
		DictionaryFormWordID: dictFormID,
		ReadingForm:          cols[11],
		SynonymGroupIDs:      synonymGIDs,
	}
	return entry, nil
}

func parseInt16(field, s string) (int16, error) {
	v, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return 0, &kotodict.ErrInvalidNumber{Field: field, Value: s}
	}
	return int16(v), nil
}

func parseInt32(field, s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, &kotodict.ErrInvalidNumber{Field: field, Value: s}
	}
	return int32(v), nil
}

// checkSplitFormat caps the element count of a raw reference string
// before any resolution work happens.
func checkSplitFormat(s string) error {
	if strings.Count(s, "/")+1 > MaxUnits {
		return kotodict.ErrTooManyUnits
	}
	return nil
}

func parseSynonymGroupIDs(s string) ([]int32, error) {
	if s == emptyMarker || s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) > MaxUnits {
		return nil, kotodict.ErrTooManyUnits
	}
	out := make([]int32, len(parts))
	for i, p := range parts {
		v, err := parseInt32("synonym group id", p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseSplitInfo resolves one raw reference string into word ids. Numeric
// tokens are validated against their namespace; other tokens are content
// descriptors resolved through the resolver's reverse index.
func (lx *Lexicon) parseSplitInfo(info string, r WordIDResolver) ([]int32, error) {
	if info == emptyMarker {
		return nil, nil
	}
	words := strings.Split(info, "/")
	if len(words) > MaxUnits {
		return nil, kotodict.ErrTooManyUnits
	}
	out := make([]int32, len(words))
	for i, w := range words {
		if numericIDPattern.MatchString(w) {
			id, err := lx.parseWordID(w, r)
			if err != nil {
				return nil, err
			}
			out[i] = id
			continue
		}
		id, err := lx.wordToID(w, r)
		if err != nil {
			return nil, err
		}
		if id < 0 {
			return nil, fmt.Errorf("%w: %q", kotodict.ErrWordNotFound, w)
		}
		out[i] = id
	}
	return out, nil
}

// parseWordID resolves a numeric token of the form U?\d+. The U prefix
// names the overlay namespace: in a user build the id is combined with
// the user origin tag, in a system build it is taken literally.
func (lx *Lexicon) parseWordID(token string, r WordIDResolver) (int32, error) {
	text := token
	user := strings.HasPrefix(token, "U")
	if user {
		text = token[1:]
	}
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: word id %q", kotodict.ErrReference, token)
	}
	id := int32(n)
	if user && r.IsUser() {
		id, err = dictionary.MakeWordID(dictionary.UserDic, id)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", kotodict.ErrReference, err)
		}
	}
	if err := r.Validate(id); err != nil {
		return 0, err
	}
	return id, nil
}

// wordToID resolves a content descriptor "surface,POS1..POS6,reading".
func (lx *Lexicon) wordToID(text string, r WordIDResolver) (int32, error) {
	cols := strings.Split(text, ",")
	if len(cols) < 8 {
		return 0, fmt.Errorf("%w: too few columns in word reference %q", kotodict.ErrStructural, text)
	}
	headword, err := Unescape(cols[0])
	if err != nil {
		return 0, err
	}
	pos, err := dictionary.POSFromFields(cols[1:7])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", kotodict.ErrValidation, err)
	}
	posID := lx.posLookup.Lookup(pos)
	if posID < 0 {
		return 0, fmt.Errorf("%w: %s", kotodict.ErrInvalidPOS, pos)
	}
	reading, err := Unescape(cols[7])
	if err != nil {
		return 0, err
	}
	return r.Lookup(headword, posID, reading), nil
}

// WriteTo resolves all references and streams the entry block to out:
// entry count, parameters section, offset-table hole, entry payloads,
// then the offset table back-patched into the hole. Payloads go through
// the bounded working buffer, flushed at the low-water mark, so peak
// memory does not depend on the entry count. On error the sink must be
// treated as not-yet-final by the caller.
func (lx *Lexicon) WriteTo(out output.ModelOutput) error {
	r := lx.resolver
	if r == nil {
		r = NewLexiconResolver(lx)
	}
	if lx.params.Count() != len(lx.entries) {
		return fmt.Errorf("parameter count %d does not match entry count %d", lx.params.Count(), len(lx.entries))
	}

	var head [4]byte
	binary.LittleEndian.PutUint32(head[:], uint32(len(lx.entries)))
	if _, err := out.Write(head[:]); err != nil {
		return err
	}

	err := out.WithPart("word parameters", func() error {
		_, err := lx.params.WriteTo(out)
		return err
	})
	if err != nil {
		return err
	}

	offsets := newChunk(offsetTableSize(len(lx.entries)))
	offsetsPos, err := out.Position()
	if err != nil {
		return err
	}
	// Reserve the hole; true offsets exist only after every entry is
	// resolved and emitted.
	if err := out.SetPosition(offsetsPos + int64(offsetTableSize(len(lx.entries)))); err != nil {
		return err
	}

	err = out.WithPart("word entries", func() error {
		base, err := out.Position()
		if err != nil {
			return err
		}
		offset := base
		buf := newChunk(lx.opts.bufferSize)
		for i, e := range lx.entries {
			if buf.WontFit(lx.opts.flushThreshold) {
				n, err := buf.Flush(out)
				if err != nil {
					return err
				}
				offset += int64(n)
			}
			entryOffset := offset + int64(buf.Len())
			if entryOffset > math.MaxInt32 {
				return fmt.Errorf("entry block exceeds addressable size at word %d", i)
			}
			offsets.putInt32(int32(entryOffset))
			if err := lx.writeEntry(buf, e, r); err != nil {
				return fmt.Errorf("word %d %q: %w", i, e.WordInfo.Surface, err)
			}
		}
		_, err = buf.Flush(out)
		return err
	})
	if err != nil {
		return err
	}

	end, err := out.Position()
	if err != nil {
		return err
	}
	if err := out.SetPosition(offsetsPos); err != nil {
		return err
	}
	err = out.WithPart("wordinfo offsets", func() error {
		_, err := offsets.Flush(out)
		return err
	})
	if err != nil {
		return err
	}
	return out.SetPosition(end)
}

func offsetTableSize(entries int) int {
	return 4 * entries
}

func (lx *Lexicon) writeEntry(buf *chunk, e *WordEntry, r WordIDResolver) error {
	wi := e.WordInfo
	if err := buf.putString(wi.Surface); err != nil {
		return err
	}
	if err := buf.putStringLength(int(wi.HeadwordLength)); err != nil {
		return err
	}
	buf.putInt16(wi.POSID)
	if err := buf.putEmptyIfEqual(wi.NormalizedForm, wi.Surface); err != nil {
		return err
	}
	buf.putInt32(wi.DictionaryFormWordID)
	if err := buf.putEmptyIfEqual(wi.ReadingForm, wi.Surface); err != nil {
		return err
	}
	for _, raw := range []string{e.AUnitSplitString, e.BUnitSplitString, e.WordStructureString} {
		ids, err := lx.parseSplitInfo(raw, r)
		if err != nil {
			return err
		}
		if err := buf.putInt32Array(ids); err != nil {
			return err
		}
	}
	return buf.putInt32Array(wi.SynonymGroupIDs)
}
