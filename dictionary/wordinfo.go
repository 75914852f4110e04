package dictionary

// SelfDictionaryForm is the stored sentinel meaning the entry's dictionary
// form is the entry itself.
const SelfDictionaryForm int32 = -1

// WordInfo is the per-entry record stored in the lexicon block.
//
// On disk NormalizedForm and ReadingForm use the empty-if-equal
// convention: an empty stored string means "identical to Surface". The
// reader reverses the convention, so in-memory values are always
// materialized.
type WordInfo struct {
	Surface              string
	HeadwordLength       int16 // UTF-8 byte length of the trie headword
	POSID                int16
	NormalizedForm       string
	DictionaryFormWordID int32 // SelfDictionaryForm means self
	ReadingForm          string
	AUnitSplit           []int32
	BUnitSplit           []int32
	WordStructure        []int32
	SynonymGroupIDs      []int32
}
