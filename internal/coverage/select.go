package coverage

import (
	"errors"
	"fmt"
)

// ErrInvalidK is returned when k is negative, or larger than the number of
// epitopes for the exact search.
var ErrInvalidK = errors.New("invalid k")

// Selection is a chosen set of epitopes and the number of distinct reads they cover.
type Selection struct {
	Epitopes []string `json:"epitopes"`
	Covered  int      `json:"covered"`
}

// BruteForce tries every k-subset of the index's epitopes, in lexicographic
// order of their positions, and returns the first subset whose union covers
// the most reads. Subsets covering nothing are never selected. Only tractable
// for small indexes and k. An empty index selects nothing for any k, before k
// is checked against the number of epitopes.
func BruteForce(idx *Index, k int) (Selection, error) {
	best := Selection{Epitopes: []string{}}
	if idx.Len() == 0 {
		return best, nil
	}
	if k < 0 || k > idx.Len() {
		return best, fmt.Errorf("%w: k=%d with %d epitopes", ErrInvalidK, k, idx.Len())
	}
	if k == 0 {
		return best, nil
	}

	sets, all := idx.sets()
	union := make(bitset, len(all))

	// comb holds the positions of the current subset, ascending
	comb := make([]int, k)
	for i := range comb {
		comb[i] = i
	}
	var bestComb []int
	n := len(sets)

	for {
		union.reset()
		for _, e := range comb {
			union.or(sets[e])
		}
		if covered := union.count(); covered > best.Covered {
			best.Covered = covered
			bestComb = append(bestComb[:0], comb...)
		}

		// advance to the next combination
		i := k - 1
		for i >= 0 && comb[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}
		comb[i]++
		for j := i + 1; j < k; j++ {
			comb[j] = comb[j-1] + 1
		}
	}

	for _, e := range bestComb {
		best.Epitopes = append(best.Epitopes, idx.keys[e])
	}
	return best, nil
}

// Greedy repeatedly picks the epitope covering the most still-uncovered
// reads, up to k times. Ties keep the earliest epitope in index order. It
// stops early when no epitope adds a read.
func Greedy(idx *Index, k int) (Selection, error) {
	sel := Selection{Epitopes: []string{}}
	if k < 0 {
		return sel, fmt.Errorf("%w: k=%d", ErrInvalidK, k)
	}
	if idx.Len() == 0 {
		return sel, nil
	}

	sets, uncovered := idx.sets()
	total := uncovered.count()

	for round := 0; round < k && uncovered.count() > 0; round++ {
		bestGain, bestEpitope := 0, -1
		for e, s := range sets {
			if gain := s.intersectCount(uncovered); gain > bestGain {
				bestGain, bestEpitope = gain, e
			}
		}
		if bestEpitope < 0 {
			break
		}

		uncovered.andNot(sets[bestEpitope])
		sel.Epitopes = append(sel.Epitopes, idx.keys[bestEpitope])
	}

	sel.Covered = total - uncovered.count()
	return sel, nil
}
