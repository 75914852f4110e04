package dictionary

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildBlock assembles a minimal valid block by hand: framing plus one
// entry whose normalized and reading forms use the empty-if-equal
// convention.
func buildBlock(t *testing.T) []byte {
	t.Helper()
	var b []byte
	b = binary.LittleEndian.AppendUint32(b, 1) // entry count
	b = append(b, 1, 0, 2, 0, 100, 0)          // parameters: 1, 2, 100

	payloadOff := uint32(4 + 6 + 4)
	b = binary.LittleEndian.AppendUint32(b, payloadOff)

	surface := "東"
	b = append(b, byte(len(surface)))
	b = append(b, surface...)
	b = append(b, byte(len(surface)))                     // headword length
	b = binary.LittleEndian.AppendUint16(b, 0)            // POS id
	b = append(b, 0)                                      // normalized: empty => surface
	b = binary.LittleEndian.AppendUint32(b, 0xffffffff)   // dictionary form: self
	b = append(b, 0)                                      // reading: empty => surface
	b = append(b, 1)                                      // a-unit split count
	b = binary.LittleEndian.AppendUint32(b, 0x10000002)   // tagged user id
	b = append(b, 0, 0, 0)                                // b-unit, structure, synonyms
	return b
}

func TestParseLexicon_RoundTrip(t *testing.T) {
	lex, err := ParseLexicon(buildBlock(t))
	require.NoError(t, err)
	require.Equal(t, 1, lex.Size())

	left, right, cost, err := lex.Parameters(0)
	require.NoError(t, err)
	require.Equal(t, int16(1), left)
	require.Equal(t, int16(2), right)
	require.Equal(t, int16(100), cost)

	wi, err := lex.WordInfo(0)
	require.NoError(t, err)
	require.Equal(t, "東", wi.Surface)
	require.Equal(t, int16(3), wi.HeadwordLength)
	require.Equal(t, "東", wi.NormalizedForm, "empty normalized form decodes to the surface")
	require.Equal(t, "東", wi.ReadingForm)
	require.Equal(t, SelfDictionaryForm, wi.DictionaryFormWordID)
	require.Equal(t, []int32{0x10000002}, wi.AUnitSplit)
	require.Empty(t, wi.BUnitSplit)
}

func TestParseLexicon_Corrupted(t *testing.T) {
	_, err := ParseLexicon(nil)
	require.ErrorIs(t, err, ErrCorrupted)

	_, err = ParseLexicon([]byte{1, 2})
	require.ErrorIs(t, err, ErrCorrupted)

	// Count claims more entries than the block can frame.
	var b []byte
	b = binary.LittleEndian.AppendUint32(b, 1000)
	_, err = ParseLexicon(b)
	require.ErrorIs(t, err, ErrCorrupted)
}

func TestWordInfo_OutOfRange(t *testing.T) {
	lex, err := ParseLexicon(buildBlock(t))
	require.NoError(t, err)

	_, err = lex.WordInfo(1)
	require.ErrorIs(t, err, ErrCorrupted)
	_, err = lex.WordInfo(-1)
	require.ErrorIs(t, err, ErrCorrupted)
	_, _, _, err = lex.Parameters(5)
	require.ErrorIs(t, err, ErrCorrupted)
}

func TestWordInfo_TruncatedRecord(t *testing.T) {
	b := buildBlock(t)
	lex, err := ParseLexicon(b[:len(b)-2])
	require.NoError(t, err, "framing is intact")

	_, err = lex.WordInfo(0)
	require.ErrorIs(t, err, ErrCorrupted)
}

func TestIndex_Lookup(t *testing.T) {
	lex, err := ParseLexicon(buildBlock(t))
	require.NoError(t, err)

	idx, err := NewIndex(lex)
	require.NoError(t, err)
	require.Equal(t, int32(0), idx.Lookup("東", 0, "東"))
	require.Equal(t, int32(-1), idx.Lookup("東", 1, "東"))
	require.Equal(t, int32(-1), idx.Lookup("西", 0, "西"))
}
