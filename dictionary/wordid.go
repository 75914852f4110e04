package dictionary

import "fmt"

// Word ids are composite: the top four bits carry the origin dictionary,
// the low 28 bits the word index within it. System and user dictionaries
// therefore share one id space without collisions.
const (
	// SystemDic is the origin tag of the base dictionary.
	SystemDic int32 = 0
	// UserDic is the origin tag of the overlay dictionary.
	UserDic int32 = 1

	// MaxWordIndex is the largest word index representable in an id.
	MaxWordIndex int32 = 0x0fffffff

	dicShift = 28
)

// MakeWordID combines an origin tag and a word index into a composite id.
func MakeWordID(dic, word int32) (int32, error) {
	if dic < 0 || dic > 0xf {
		return 0, fmt.Errorf("dictionary tag %d does not fit four bits", dic)
	}
	if word < 0 || word > MaxWordIndex {
		return 0, fmt.Errorf("word index %d does not fit 28 bits", word)
	}
	return int32(uint32(dic)<<dicShift | uint32(word)), nil
}

// WordIDDic extracts the origin tag from a composite id.
func WordIDDic(id int32) int32 {
	return int32(uint32(id) >> dicShift)
}

// WordIDWord extracts the word index from a composite id.
func WordIDWord(id int32) int32 {
	return id & MaxWordIndex
}
