// Package dictionary holds the primitives shared by the lexicon compiler
// and the compiled-dictionary reader: part-of-speech tuples, composite
// word ids spanning the system and user namespaces, and the WordInfo
// record stored for every entry.
package dictionary

import (
	"fmt"
	"math"
	"strings"
)

// POSDepth is the number of components in a part-of-speech tuple.
const POSDepth = 6

// POS is a fixed 6-component part-of-speech tuple. The array form makes it
// usable as a map key.
type POS [POSDepth]string

// POSFromFields builds a POS from a slice of exactly POSDepth components.
func POSFromFields(fields []string) (POS, error) {
	var p POS
	if len(fields) != POSDepth {
		return p, fmt.Errorf("part of speech requires %d components, got %d", POSDepth, len(fields))
	}
	copy(p[:], fields)
	return p, nil
}

func (p POS) String() string {
	return strings.Join(p[:], ",")
}

// POSLookup resolves a POS tuple to its table id. Implementations return a
// negative id on miss; the compiler treats a miss as a validation failure.
type POSLookup interface {
	Lookup(p POS) int16
}

// POSTable assigns dense int16 ids to POS tuples in registration order.
// Its id-assignment policy belongs to the dictionary header builder, not
// to the lexicon compiler, which consumes it only through POSLookup.
type POSTable struct {
	list []POS
	ids  map[POS]int16
}

// NewPOSTable creates an empty POSTable.
func NewPOSTable() *POSTable {
	return &POSTable{
		ids: make(map[POS]int16),
	}
}

// Lookup returns the id of p, or -1 if p has not been registered.
func (t *POSTable) Lookup(p POS) int16 {
	if id, ok := t.ids[p]; ok {
		return id
	}
	return -1
}

// Register returns the id of p, assigning the next free id when p is new.
// Returns -1 when the table is full.
func (t *POSTable) Register(p POS) int16 {
	if id, ok := t.ids[p]; ok {
		return id
	}
	if len(t.list) > math.MaxInt16 {
		return -1
	}
	id := int16(len(t.list))
	t.list = append(t.list, p)
	t.ids[p] = id
	return id
}

// Size returns the number of registered tuples.
func (t *POSTable) Size() int {
	return len(t.list)
}

// At returns the tuple registered under id.
func (t *POSTable) At(id int16) (POS, bool) {
	if id < 0 || int(id) >= len(t.list) {
		return POS{}, false
	}
	return t.list[id], true
}

// Registering adapts the table to POSLookup with get-or-assign semantics,
// the policy used while building a system dictionary from scratch.
func (t *POSTable) Registering() POSLookup {
	return registeringLookup{t}
}

type registeringLookup struct {
	t *POSTable
}

func (r registeringLookup) Lookup(p POS) int16 {
	return r.t.Register(p)
}
