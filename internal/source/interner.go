package source

import (
	"fmt"
	"slices"
	"strings"
)

// StringID is a dense handle for an interned string: identifier names,
// labels, private names, decoded literal values. The zero value
// NoStringID always resolves to "".
type StringID uint32

const NoStringID StringID = 0

// Interner maps strings to dense IDs and back. Каждая сборка дерева
// владеет своим интернером, синхронизации нет.
type Interner struct {
	lookup map[string]StringID
	table  []string
}

func NewInterner() *Interner {
	return &Interner{
		lookup: map[string]StringID{"": NoStringID},
		table:  []string{""},
	}
}

// Intern returns the ID for s, allocating one on first sight.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.lookup[s]; ok {
		return id
	}
	// Клонируем, чтобы ID не удерживал чужой буфер (подстроки исходника).
	owned := strings.Clone(s)
	id := StringID(len(in.table))
	in.table = append(in.table, owned)
	in.lookup[owned] = id
	return id
}

// InternBytes interns the string form of b. On the hit path the map
// lookup does not copy b.
func (in *Interner) InternBytes(b []byte) StringID {
	if id, ok := in.lookup[string(b)]; ok {
		return id
	}
	return in.Intern(string(b))
}

// Lookup resolves id; ok is false for IDs this interner never issued.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.table) {
		return "", false
	}
	return in.table[id], true
}

// MustLookup resolves id and panics on a foreign one. Use it only where
// the ID provably came from this interner.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("interner: unknown StringID %d", id))
	}
	return s
}

// Has reports whether id was issued by this interner.
func (in *Interner) Has(id StringID) bool {
	return int(id) < len(in.table)
}

// Len counts issued IDs, including the reserved empty string.
func (in *Interner) Len() int { return len(in.table) }

// Snapshot copies the table; the result is index-addressable by StringID.
func (in *Interner) Snapshot() []string {
	return slices.Clone(in.table)
}
