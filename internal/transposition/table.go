package transposition

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/gambitchess/gambit/internal/board"
)

type Bound uint8

const (
	NoBound Bound = iota
	ExactBound
	LowerBound
	UpperBound
)

var _boundStrings = [4]string{"none", "exact", "lower", "upper"}

func (b Bound) String() string {
	return _boundStrings[b]
}

// Entry caches one searched position: the full hash for verification, the
// depth it was searched to, the score with its bound kind, and the best move
// found (usable for ordering even when the score bound is unusable).
type Entry struct {
	Hash  uint64
	Depth int
	Score float64
	Bound Bound
	Move  board.Move
	Age   int
}

// Table is a fixed-size, single-slot-per-bucket transposition table. It is
// not safe for concurrent use; search owns one instance per goroutine.
type Table struct {
	entries []Entry
	age     int

	hits   uint64
	misses uint64
	stores uint64
}

const DefaultCapacity = 1 << 20

// stale entries lose their slot-retention priority after this many ages
const maxEntryAge = 4

func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Table{entries: make([]Entry, capacity)}
}

func (t *Table) slot(hash uint64) *Entry {
	return &t.entries[hash%uint64(len(t.entries))]
}

// Get returns the cached entry for hash if one exists. A bucket collision
// with a different full hash counts as a miss.
func (t *Table) Get(hash uint64) (Entry, bool) {
	entry := t.slot(hash)
	if entry.Bound != NoBound && entry.Hash == hash {
		t.hits++
		return *entry, true
	}
	t.misses++
	return Entry{}, false
}

// Put stores an entry, replacing the bucket's occupant when the slot is
// empty, the new search is at least as deep, or the occupant has aged out.
// The depth test also applies to re-stores of the same position, so a
// shallow result never clobbers a deeper one.
func (t *Table) Put(hash uint64, depth int, score float64, bound Bound, move board.Move) {
	entry := t.slot(hash)
	if entry.Bound != NoBound &&
		depth < entry.Depth &&
		t.age-entry.Age <= maxEntryAge {
		return
	}
	*entry = Entry{
		Hash:  hash,
		Depth: depth,
		Score: score,
		Bound: bound,
		Move:  move,
		Age:   t.age,
	}
	t.stores++
}

// NextAge marks the start of a new top-level search, letting entries from
// much older searches be evicted by shallower new ones.
func (t *Table) NextAge() {
	t.age++
}

func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
	t.age = 0
	t.hits = 0
	t.misses = 0
	t.stores = 0
}

func (t *Table) Hits() uint64 {
	return t.hits
}

func (t *Table) Misses() uint64 {
	return t.misses
}

func (t *Table) StatsString() string {
	return fmt.Sprintf("tt %v hits, %v misses, %v stores, %v slots",
		humanize.Comma(int64(t.hits)),
		humanize.Comma(int64(t.misses)),
		humanize.Comma(int64(t.stores)),
		humanize.Comma(int64(len(t.entries))))
}
