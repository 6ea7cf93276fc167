package recovery

import (
	"context"

	"github.com/xbh0403/CSE-282-Project/internal/vdj"
)

// Recovered are the records whose score beat the threshold, plus the
// epitopes and genes they were aligned against.
type Recovered struct {
	HighScoreOverlap []vdj.Record `json:"high_score_overlap"`
	HighScoreRandom  []vdj.Record `json:"high_score_random"`
	AllEpitopes      []string     `json:"all_epitopes"`
	AllVGenes        []vdj.Gene   `json:"all_v_genes"`
	AllJGenes        []vdj.Gene   `json:"all_j_genes"`
}

// Filter keeps the records scoring strictly above threshold. Records are
// shared with the input, never modified.
func Filter(a *Alignments, threshold int) *Recovered {
	return &Recovered{
		HighScoreOverlap: keep(a.Overlap, threshold),
		HighScoreRandom:  keep(a.Random, threshold),
		AllEpitopes:      a.Epitopes,
		AllVGenes:        a.VGenes,
		AllJGenes:        a.JGenes,
	}
}

func keep(records []vdj.Record, threshold int) []vdj.Record {
	kept := []vdj.Record{}
	for _, r := range records {
		if r.FinalScore > threshold {
			kept = append(kept, r)
		}
	}
	return kept
}

// Alignments turns recovered records back into Alignments so they can be
// filtered again.
func (r *Recovered) Alignments() *Alignments {
	return &Alignments{
		Overlap:  r.HighScoreOverlap,
		Random:   r.HighScoreRandom,
		Epitopes: r.AllEpitopes,
		VGenes:   r.AllVGenes,
		JGenes:   r.AllJGenes,
	}
}

// Total is the number of recovered reads, genuine and decoy
func (r *Recovered) Total() int {
	return len(r.HighScoreOverlap) + len(r.HighScoreRandom)
}

// Recover aligns every read in the dataset and keeps those scoring above threshold.
func Recover(ctx context.Context, p Params, threshold int, ds *vdj.Dataset, opts Options) (*Recovered, error) {
	a, err := AlignAll(ctx, p, ds, opts)
	if err != nil {
		return nil, err
	}
	return Filter(a, threshold), nil
}

// ReadRecovered loads a Recovered JSON file
func ReadRecovered(filename string) (*Recovered, error) {
	r := &Recovered{}
	if err := vdj.ReadJSON(filename, r); err != nil {
		return nil, err
	}
	return r, nil
}
