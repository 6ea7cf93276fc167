// Package align is for overlap alignment: the best alignment of all of one
// sequence against a prefix of another, where any prefix of the first
// sequence may be skipped for free.
package align

import (
	"fmt"
	"io"
	"strings"
)

// gap is written opposite a symbol that was inserted or deleted
const gap = '-'

// backtrack codes. diagonal > horizontal > vertical when scores tie
const (
	none       = 0 // only in row 0, a gap in s
	vertical   = 1 // gap in t, consumes s[i-1]
	horizontal = 2 // gap in s, consumes t[j-1]
	diagonal   = 3 // match or mismatch
)

// Scores are the costs of the alignment dynamic program.
type Scores struct {
	// Match is added for every identical pair of symbols
	Match int `json:"match_reward"`

	// Mismatch is subtracted for every non-identical pair of symbols
	Mismatch int `json:"mismatch_penalty"`

	// Indel is subtracted for every symbol aligned against a gap
	Indel int `json:"indel_penalty"`
}

// String is for logging
func (sc Scores) String() string {
	return fmt.Sprintf("match=%d mismatch=%d indel=%d", sc.Match, sc.Mismatch, sc.Indel)
}

// pair is the diagonal score of aligning a against b
func (sc Scores) pair(a, b byte) int {
	if a == b {
		return sc.Match
	}
	return -sc.Mismatch
}

// Table fills the score and backtrack matrices of s against t. Both are
// (len(s)+1) x (len(t)+1).
func Table(sc Scores, s, t string) (score, backtrack [][]int) {
	score = make([][]int, len(s)+1)
	backtrack = make([][]int, len(s)+1)
	for i := range score {
		score[i] = make([]int, len(t)+1)
		backtrack[i] = make([]int, len(t)+1)
	}

	// starting anywhere in s is free, leading symbols of t are not
	for j := range score[0] {
		score[0][j] = -j * sc.Indel
	}

	for i := 1; i <= len(s); i++ {
		for j := 1; j <= len(t); j++ {
			up := score[i-1][j] - sc.Indel
			left := score[i][j-1] - sc.Indel
			diag := score[i-1][j-1] + sc.pair(s[i-1], t[j-1])

			best := up
			if left > best {
				best = left
			}
			if diag > best {
				best = diag
			}
			score[i][j] = best

			switch best {
			case diag:
				backtrack[i][j] = diagonal
			case left:
				backtrack[i][j] = horizontal
			case up:
				backtrack[i][j] = vertical
			}
		}
	}

	return score, backtrack
}

// Overlap aligns all of s against a prefix of t. It returns the optimal score
// and the aligned suffix of s and prefix of t, with '-' for gaps.
//
// The optimum is picked in the last row only, the first (smallest j) of equal
// maxima. The unaligned prefix of s is dropped from the output. Empty
// sequences score 0 with empty alignments.
func Overlap(sc Scores, s, t string) (score int, alignedS, alignedT string) {
	if len(s) == 0 || len(t) == 0 {
		return 0, "", ""
	}

	scores, backtrack := Table(sc, s, t)

	last := scores[len(s)]
	maxJ := 1
	for j := 2; j <= len(t); j++ {
		if last[j] > last[maxJ] {
			maxJ = j
		}
	}

	// walk back, building both strings in reverse
	sOut := make([]byte, 0, len(s)+len(t))
	tOut := make([]byte, 0, len(s)+len(t))
	i, j := len(s), maxJ
	for j > 0 {
		switch backtrack[i][j] {
		case vertical:
			sOut = append(sOut, s[i-1])
			tOut = append(tOut, gap)
			i--
		case diagonal:
			sOut = append(sOut, s[i-1])
			tOut = append(tOut, t[j-1])
			i--
			j--
		default: // horizontal, and row 0
			sOut = append(sOut, gap)
			tOut = append(tOut, t[j-1])
			j--
		}
	}
	reverse(sOut)
	reverse(tOut)

	return last[maxJ], string(sOut), string(tOut)
}

func reverse(b []byte) {
	for l, r := 0, len(b)-1; l < r; l, r = l+1, r-1 {
		b[l], b[r] = b[r], b[l]
	}
}

// Print writes a matrix with one space separated row per line
func Print(w io.Writer, matrix [][]int) error {
	for _, row := range matrix {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = fmt.Sprint(v)
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	return nil
}
