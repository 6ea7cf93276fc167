package recovery

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cheggaaa/pb/v3"

	"github.com/xbh0403/CSE-282-Project/internal/align"
	"github.com/xbh0403/CSE-282-Project/internal/vdj"
)

// Grid is the set of values tried for each parameter of a recovery run.
type Grid struct {
	Match           []int
	Mismatch        []int
	Indel           []int
	OverlapMatch    []int
	OverlapMismatch []int
	Threshold       []int
}

// Size is the number of trials in the grid
func (g Grid) Size() int {
	return g.alignments() * len(g.Threshold)
}

// alignments is the number of distinct alignment runs in the grid
func (g Grid) alignments() int {
	return len(g.Match) * len(g.Mismatch) * len(g.Indel) * len(g.OverlapMatch) * len(g.OverlapMismatch)
}

// Trial is the outcome of one point of the grid.
type Trial struct {
	Params    Params
	Threshold int
	Metrics   Metrics
}

// GridSearch runs recovery at every point of the grid and scores each against
// the dataset's known genuine and decoy reads. Reads are aligned once per
// score combination; every threshold is filtered from that alignment.
// Trials are ordered as the grid's nested loops, threshold innermost.
func GridSearch(ctx context.Context, ds *vdj.Dataset, g Grid, opts Options) ([]Trial, error) {
	if g.Size() == 0 {
		return nil, fmt.Errorf("failed to search an empty grid: every parameter needs at least one value")
	}

	var bar *pb.ProgressBar
	if opts.Progress {
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		bar = pb.Full.New(g.alignments()).SetWriter(out).Start()
		defer bar.Finish()
	}
	inner := opts
	inner.Progress = false

	trials := make([]Trial, 0, g.Size())
	for _, match := range g.Match {
		for _, mismatch := range g.Mismatch {
			for _, indel := range g.Indel {
				for _, om := range g.OverlapMatch {
					for _, omm := range g.OverlapMismatch {
						p := Params{
							Scores:          align.Scores{Match: match, Mismatch: mismatch, Indel: indel},
							OverlapMatch:    om,
							OverlapMismatch: omm,
						}

						a, err := AlignAll(ctx, p, ds, inner)
						if err != nil {
							return nil, fmt.Errorf("failed to align with %s: %w", p, err)
						}

						for _, threshold := range g.Threshold {
							trials = append(trials, Trial{
								Params:    p,
								Threshold: threshold,
								Metrics:   Evaluate(Filter(a, threshold), len(ds.OverlapReads), len(ds.RandomReads)),
							})
						}

						if bar != nil {
							bar.Increment()
						}
					}
				}
			}
		}
	}

	return trials, nil
}

// Best returns the trial with the highest F1, the first of equals.
func Best(trials []Trial) (best Trial, ok bool) {
	for _, t := range trials {
		if !ok || t.Metrics.F1 > best.Metrics.F1 {
			best = t
			ok = true
		}
	}
	return best, ok
}

// trialHeader names the CSV columns written by WriteTrialsCSV
var trialHeader = []string{
	"match_reward",
	"mismatch_penalty",
	"indel_penalty",
	"overlap_match_score",
	"overlap_mismatch_score",
	"threshold",
	"true_positives",
	"false_positives",
	"true_negatives",
	"false_negatives",
	"precision",
	"recall",
	"f1",
}

// WriteTrialsCSV writes one row per trial, with a header
func WriteTrialsCSV(w io.Writer, trials []Trial) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trialHeader); err != nil {
		return err
	}

	itoa := strconv.Itoa
	ftoa := func(f float64) string { return strconv.FormatFloat(f, 'f', 4, 64) }
	for _, t := range trials {
		row := []string{
			itoa(t.Params.Scores.Match),
			itoa(t.Params.Scores.Mismatch),
			itoa(t.Params.Scores.Indel),
			itoa(t.Params.OverlapMatch),
			itoa(t.Params.OverlapMismatch),
			itoa(t.Threshold),
			itoa(t.Metrics.TruePositives),
			itoa(t.Metrics.FalsePositives),
			itoa(t.Metrics.TrueNegatives),
			itoa(t.Metrics.FalseNegatives),
			ftoa(t.Metrics.Precision),
			ftoa(t.Metrics.Recall),
			ftoa(t.Metrics.F1),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
