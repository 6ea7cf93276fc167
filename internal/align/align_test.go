package align

import (
	"math/rand"
	"strings"
	"testing"
)

var unit = Scores{Match: 1, Mismatch: 1, Indel: 1}

func TestOverlap(t *testing.T) {
	type args struct {
		sc   Scores
		s, t string
	}
	tests := []struct {
		name      string
		args      args
		wantScore int
		wantS     string
		wantT     string
	}{
		{
			"golden overlap with a skipped prefix of s",
			args{unit, "ATNNNGC", "GCATYYYYY"},
			2,
			"GC",
			"GC",
		},
		{
			"gap in s",
			args{unit, "AC", "AGC"},
			1,
			"A-C",
			"AGC",
		},
		{
			"gap in t",
			args{unit, "AGC", "AC"},
			1,
			"AGC",
			"A-C",
		},
		{
			"suffix of the read matches a J head",
			args{unit, "GCATYYYYY", "YY"},
			2,
			"YY",
			"YY",
		},
		{
			"no shared sequence keeps the first maximum",
			args{unit, "AAAA", "CCC"},
			-1,
			"A",
			"C",
		},
		{
			"empty s",
			args{unit, "", "ACGT"},
			0,
			"",
			"",
		},
		{
			"empty t",
			args{unit, "ACGT", ""},
			0,
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, gotS, gotT := Overlap(tt.args.sc, tt.args.s, tt.args.t)
			if score != tt.wantScore || gotS != tt.wantS || gotT != tt.wantT {
				t.Errorf("Overlap() = (%d, %q, %q), want (%d, %q, %q)", score, gotS, gotT, tt.wantScore, tt.wantS, tt.wantT)
			}
		})
	}
}

func TestTable(t *testing.T) {
	score, backtrack := Table(unit, "AC", "AGC")

	wantScore := [][]int{
		{0, -1, -2, -3},
		{0, 1, 0, -1},
		{0, 0, 0, 1},
	}
	wantBacktrack := [][]int{
		{0, 0, 0, 0},
		{0, diagonal, horizontal, horizontal},
		{0, vertical, diagonal, diagonal},
	}

	for i := range wantScore {
		for j := range wantScore[i] {
			if score[i][j] != wantScore[i][j] {
				t.Errorf("Table() score[%d][%d] = %d, want %d", i, j, score[i][j], wantScore[i][j])
			}
			if backtrack[i][j] != wantBacktrack[i][j] {
				t.Errorf("Table() backtrack[%d][%d] = %d, want %d", i, j, backtrack[i][j], wantBacktrack[i][j])
			}
		}
	}

	var b strings.Builder
	if err := Print(&b, score); err != nil {
		t.Fatal(err)
	}
	if want := "0 -1 -2 -3\n0 1 0 -1\n0 0 0 1\n"; b.String() != want {
		t.Errorf("Print() = %q, want %q", b.String(), want)
	}
}

func randomSeq(rng *rand.Rand, n int) string {
	const nts = "ACGTN"
	b := make([]byte, n)
	for i := range b {
		b[i] = nts[rng.Intn(len(nts))]
	}
	return string(b)
}

func TestOverlap_properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	weights := []Scores{
		unit,
		{Match: 2, Mismatch: 4, Indel: 3},
		{Match: 5, Mismatch: 1, Indel: 2},
	}

	for n := 0; n < 200; n++ {
		sc := weights[n%len(weights)]
		s := randomSeq(rng, 1+rng.Intn(30))
		tt := randomSeq(rng, 1+rng.Intn(30))

		score, gotS, gotT := Overlap(sc, s, tt)

		if score < -len(tt)*sc.Indel {
			t.Errorf("Overlap(%q, %q) score %d below the all-gap bound %d", s, tt, score, -len(tt)*sc.Indel)
		}
		if len(gotS) != len(gotT) {
			t.Errorf("Overlap(%q, %q) aligned lengths differ: %q %q", s, tt, gotS, gotT)
		}
		if stripped := strings.ReplaceAll(gotS, "-", ""); !strings.HasSuffix(s, stripped) {
			t.Errorf("Overlap(%q, %q) aligned s %q is not a suffix", s, tt, gotS)
		}
		if stripped := strings.ReplaceAll(gotT, "-", ""); !strings.HasPrefix(tt, stripped) || stripped == "" {
			t.Errorf("Overlap(%q, %q) aligned t %q is not a non-empty prefix", s, tt, gotT)
		}

		again, againS, againT := Overlap(sc, s, tt)
		if again != score || againS != gotS || againT != gotT {
			t.Errorf("Overlap(%q, %q) is not deterministic", s, tt)
		}

		// the score is reproducible from the alignment itself
		rescored := 0
		for i := 0; i < len(gotS); i++ {
			switch {
			case gotS[i] == '-' || gotT[i] == '-':
				rescored -= sc.Indel
			case gotS[i] == gotT[i]:
				rescored += sc.Match
			default:
				rescored -= sc.Mismatch
			}
		}
		if rescored != score {
			t.Errorf("Overlap(%q, %q) = %d but its alignment %q/%q scores %d", s, tt, score, gotS, gotT, rescored)
		}
	}
}
