package build

import (
	"github.com/kotodict/kotodict"
	"github.com/kotodict/kotodict/dictionary"
)

// WordIDResolver resolves content-based word references and validates
// numeric ids against the namespaces a build may reference. It is a
// read-only query service during serialization.
type WordIDResolver interface {
	// Lookup returns the word id for a (headword, POS id, reading)
	// identity, or a negative value on miss.
	Lookup(headword string, posID int16, reading string) int32
	// IsUser reports whether the build targets the overlay (user)
	// namespace, which controls how U-prefixed numeric ids are tagged.
	IsUser() bool
	// Validate rejects ids outside the known range of their namespace.
	Validate(id int32) error
}

// LexiconResolver resolves references within the lexicon being compiled,
// in the base namespace. The reverse index covers the entries present at
// construction time, so it must be built after ingestion; a reference to
// an identity absent from the index is a miss regardless of row order.
type LexiconResolver struct {
	lex *Lexicon
	ids map[dictionary.IndexKey]int32
}

// NewLexiconResolver indexes the current entries of lex.
func NewLexiconResolver(lex *Lexicon) *LexiconResolver {
	ids := make(map[dictionary.IndexKey]int32, len(lex.entries))
	for i, e := range lex.entries {
		key := dictionary.IndexKey{
			Surface: e.WordInfo.Surface,
			POSID:   e.WordInfo.POSID,
			Reading: e.WordInfo.ReadingForm,
		}
		if _, ok := ids[key]; !ok {
			ids[key] = int32(i)
		}
	}
	return &LexiconResolver{lex: lex, ids: ids}
}

func (r *LexiconResolver) Lookup(headword string, posID int16, reading string) int32 {
	if id, ok := r.ids[dictionary.IndexKey{Surface: headword, POSID: posID, Reading: reading}]; ok {
		return id
	}
	return -1
}

func (r *LexiconResolver) IsUser() bool { return false }

func (r *LexiconResolver) Validate(id int32) error {
	if id < 0 || int(id) >= len(r.lex.entries) {
		return &kotodict.ErrWordIDOutOfRange{ID: id}
	}
	return nil
}

// ChainedResolver serves overlay (user) dictionary builds: content
// lookups consult the compiled system lexicon first, then the in-build
// user entries, whose ids carry the user origin tag. The supplied POS ids
// must come from a table consistent across both lexicons.
type ChainedResolver struct {
	system      *dictionary.Lexicon
	systemIndex *dictionary.Index
	user        *Lexicon
	userIDs     map[dictionary.IndexKey]int32
}

// NewChainedResolver builds both reverse indexes. Call after the user
// lexicon is fully ingested.
func NewChainedResolver(system *dictionary.Lexicon, user *Lexicon) (*ChainedResolver, error) {
	idx, err := dictionary.NewIndex(system)
	if err != nil {
		return nil, err
	}
	userIDs := make(map[dictionary.IndexKey]int32, len(user.entries))
	for i, e := range user.entries {
		key := dictionary.IndexKey{
			Surface: e.WordInfo.Surface,
			POSID:   e.WordInfo.POSID,
			Reading: e.WordInfo.ReadingForm,
		}
		if _, ok := userIDs[key]; !ok {
			userIDs[key] = int32(i)
		}
	}
	return &ChainedResolver{
		system:      system,
		systemIndex: idx,
		user:        user,
		userIDs:     userIDs,
	}, nil
}

func (r *ChainedResolver) Lookup(headword string, posID int16, reading string) int32 {
	if id := r.systemIndex.Lookup(headword, posID, reading); id >= 0 {
		return id
	}
	if word, ok := r.userIDs[dictionary.IndexKey{Surface: headword, POSID: posID, Reading: reading}]; ok {
		id, err := dictionary.MakeWordID(dictionary.UserDic, word)
		if err != nil {
			return -1
		}
		return id
	}
	return -1
}

func (r *ChainedResolver) IsUser() bool { return true }

func (r *ChainedResolver) Validate(id int32) error {
	if id < 0 {
		return &kotodict.ErrWordIDOutOfRange{ID: id}
	}
	switch dictionary.WordIDDic(id) {
	case dictionary.SystemDic:
		if int(id) >= r.system.Size() {
			return &kotodict.ErrWordIDOutOfRange{ID: id}
		}
	case dictionary.UserDic:
		if int(dictionary.WordIDWord(id)) >= len(r.user.entries) {
			return &kotodict.ErrWordIDOutOfRange{ID: id}
		}
	default:
		return &kotodict.ErrWordIDOutOfRange{ID: id}
	}
	return nil
}
