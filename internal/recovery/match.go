// Package recovery finds, for each read, the V and J genes whose tail and head
// best explain the read's ends, and keeps the reads whose overlap is
// convincing enough to be recovered.
package recovery

import (
	"fmt"

	"github.com/xbh0403/CSE-282-Project/internal/align"
	"github.com/xbh0403/CSE-282-Project/internal/vdj"
)

// Params are the scores threaded through a recovery run.
type Params struct {
	// Scores are the costs of the overlap alignment itself
	Scores align.Scores

	// OverlapMatch is added for every identical position of an aligned pair
	OverlapMatch int

	// OverlapMismatch is subtracted for every differing position of an aligned pair
	OverlapMismatch int
}

// String is for logging and CSV output
func (p Params) String() string {
	return fmt.Sprintf("%s overlap-match=%d overlap-mismatch=%d", p.Scores, p.OverlapMatch, p.OverlapMismatch)
}

// overlapScore compares two aligned strings position by position. Gaps are
// compared like any other symbol, so a gap against a gap is a match.
func (p Params) overlapScore(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	score := 0
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			score += p.OverlapMatch
		} else {
			score -= p.OverlapMismatch
		}
	}
	return score
}

// Match aligns the tail of v against the head of the read and the tail of
// the read against the head of j, and scores the two overlaps.
func Match(p Params, v, j vdj.Gene, r vdj.Read) vdj.Record {
	_, vTail, readHead := align.Overlap(p.Scores, v.Seq, r.Seq)
	_, readTail, jHead := align.Overlap(p.Scores, r.Seq, j.Seq)

	return vdj.Record{
		FinalScore:      p.overlapScore(vTail, readHead) + p.overlapScore(readTail, jHead),
		ReadSeq:         r.Seq,
		ReadID:          r.ID,
		AlignedVTail:    vTail,
		AlignedReadHead: readHead,
		VEpitopes:       v.Epitopes,
		AlignedReadTail: readTail,
		AlignedJHead:    jHead,
		JEpitopes:       j.Epitopes,
	}
}

// side is one half of a pair: the aligned strings and their overlap score
type side struct {
	a, b  string
	score int
}

// BestMatch tries every (V, J) pair against the read and returns the
// highest scoring record. Ties keep the first pair in pool order. It returns
// false if either pool is empty.
//
// The V-side alignment doesn't depend on the J gene (and vice versa) so each
// gene is aligned once and the pairs are scored from the cached halves.
func BestMatch(p Params, vGenes, jGenes []vdj.Gene, r vdj.Read) (best vdj.Record, ok bool) {
	if len(vGenes) == 0 || len(jGenes) == 0 {
		return best, false
	}

	vSides := make([]side, len(vGenes))
	for i, v := range vGenes {
		_, vTail, readHead := align.Overlap(p.Scores, v.Seq, r.Seq)
		vSides[i] = side{vTail, readHead, p.overlapScore(vTail, readHead)}
	}
	jSides := make([]side, len(jGenes))
	for i, j := range jGenes {
		_, readTail, jHead := align.Overlap(p.Scores, r.Seq, j.Seq)
		jSides[i] = side{readTail, jHead, p.overlapScore(readTail, jHead)}
	}

	bestV, bestJ := 0, 0
	for vi := range vSides {
		for ji := range jSides {
			if vSides[vi].score+jSides[ji].score > vSides[bestV].score+jSides[bestJ].score {
				bestV, bestJ = vi, ji
			}
		}
	}

	vs, js := vSides[bestV], jSides[bestJ]
	return vdj.Record{
		FinalScore:      vs.score + js.score,
		ReadSeq:         r.Seq,
		ReadID:          r.ID,
		AlignedVTail:    vs.a,
		AlignedReadHead: vs.b,
		VEpitopes:       vGenes[bestV].Epitopes,
		AlignedReadTail: js.a,
		AlignedJHead:    js.b,
		JEpitopes:       jGenes[bestJ].Epitopes,
	}, true
}
