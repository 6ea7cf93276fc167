// Package coverage picks the k epitopes whose recovered reads cover the most
// reads: exactly, by trying every k-subset, or approximately, by greedy
// marginal gain.
package coverage

import (
	"encoding/json"
	"math/bits"
	"sort"

	"github.com/xbh0403/CSE-282-Project/internal/recovery"
)

// Index maps each epitope to the reads annotated with it. Epitopes keep the
// order they were added in, which decides ties in both selectors.
type Index struct {
	keys  []string
	reads map[string][]int
}

// NewIndex builds an Index from a map, ordering epitopes lexicographically.
func NewIndex(m map[string][]int) *Index {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	idx := &Index{reads: make(map[string][]int, len(m))}
	for _, k := range keys {
		idx.keys = append(idx.keys, k)
		idx.reads[k] = append([]int{}, m[k]...)
	}
	return idx
}

// BuildIndex inverts recovered records into an epitope to read index. Each
// record counts under every epitope of its V and J genes. Genuine reads are
// added by ID, decoy reads by negated ID.
func BuildIndex(r *recovery.Recovered) *Index {
	idx := &Index{reads: make(map[string][]int)}

	for _, rec := range r.HighScoreOverlap {
		for _, e := range rec.Epitopes() {
			idx.Add(e, rec.ReadID)
		}
	}
	for _, rec := range r.HighScoreRandom {
		for _, e := range rec.Epitopes() {
			idx.Add(e, -rec.ReadID)
		}
	}

	return idx
}

// Add appends a read to an epitope's list
func (idx *Index) Add(epitope string, read int) {
	if idx.reads == nil {
		idx.reads = make(map[string][]int)
	}
	if _, ok := idx.reads[epitope]; !ok {
		idx.keys = append(idx.keys, epitope)
	}
	idx.reads[epitope] = append(idx.reads[epitope], read)
}

// Epitopes in index order
func (idx *Index) Epitopes() []string {
	return append([]string{}, idx.keys...)
}

// Reads annotated with the epitope, duplicates included. The slice is a copy.
func (idx *Index) Reads(epitope string) []int {
	reads, ok := idx.reads[epitope]
	if !ok {
		return nil
	}
	return append([]int{}, reads...)
}

// Len is the number of epitopes
func (idx *Index) Len() int {
	return len(idx.keys)
}

// MarshalJSON writes the index as an epitope -> reads object
func (idx *Index) MarshalJSON() ([]byte, error) {
	if idx.reads == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(idx.reads)
}

// bitset is a set of dense read positions
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << uint(i%64)
}

func (b bitset) count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// intersectCount is |b & o|
func (b bitset) intersectCount(o bitset) int {
	n := 0
	for i := range b {
		n += bits.OnesCount64(b[i] & o[i])
	}
	return n
}

// or sets b to b | o
func (b bitset) or(o bitset) {
	for i := range b {
		b[i] |= o[i]
	}
}

// andNot sets b to b &^ o
func (b bitset) andNot(o bitset) {
	for i := range b {
		b[i] &^= o[i]
	}
}

func (b bitset) reset() {
	for i := range b {
		b[i] = 0
	}
}

// sets turns each epitope's read list into a bitset over the distinct reads
// of the index. It also returns the union of all of them.
func (idx *Index) sets() (sets []bitset, all bitset) {
	position := make(map[int]int)
	for _, k := range idx.keys {
		for _, r := range idx.reads[k] {
			if _, ok := position[r]; !ok {
				position[r] = len(position)
			}
		}
	}

	all = newBitset(len(position))
	sets = make([]bitset, len(idx.keys))
	for i, k := range idx.keys {
		sets[i] = newBitset(len(position))
		for _, r := range idx.reads[k] {
			sets[i].set(position[r])
		}
		all.or(sets[i])
	}
	return sets, all
}
