package recovery

import (
	"context"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/exascience/pargo/parallel"

	"github.com/xbh0403/CSE-282-Project/internal/vdj"
)

// Options control how a batch of reads is aligned.
type Options struct {
	// Workers is the number of batches the reads are split into (0 = pargo's default)
	Workers int

	// Progress shows a progress bar on Output while aligning
	Progress bool

	// Output is where the progress bar is written (os.Stderr if nil)
	Output io.Writer
}

// Alignments are the best-assignment records of every read in a dataset,
// in input order, plus the dataset's epitopes and genes.
type Alignments struct {
	Overlap  []vdj.Record `json:"overlap"`
	Random   []vdj.Record `json:"random"`
	Epitopes []string     `json:"all_epitopes"`
	VGenes   []vdj.Gene   `json:"all_v_genes"`
	JGenes   []vdj.Gene   `json:"all_j_genes"`
}

// AlignAll finds the best V/J assignment for every overlap and random read in
// the dataset. Reads are aligned independently and in parallel; each record
// is stored at its read's index so the output order matches the input.
func AlignAll(ctx context.Context, p Params, ds *vdj.Dataset, opts Options) (*Alignments, error) {
	var bar *pb.ProgressBar
	if opts.Progress {
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		bar = pb.Full.New(ds.ReadCount()).SetWriter(out).Start()
		defer bar.Finish()
	}

	overlap, err := alignReads(ctx, p, ds, ds.OverlapReads, opts.Workers, bar)
	if err != nil {
		return nil, err
	}
	random, err := alignReads(ctx, p, ds, ds.RandomReads, opts.Workers, bar)
	if err != nil {
		return nil, err
	}

	return &Alignments{
		Overlap:  overlap,
		Random:   random,
		Epitopes: ds.Epitopes,
		VGenes:   ds.VGenes,
		JGenes:   ds.JGenes,
	}, nil
}

// alignReads runs BestMatch over reads in parallel batches
func alignReads(ctx context.Context, p Params, ds *vdj.Dataset, reads []vdj.Read, workers int, bar *pb.ProgressBar) ([]vdj.Record, error) {
	records := make([]vdj.Record, len(reads))
	if len(reads) == 0 {
		return records, nil
	}
	if workers < 0 {
		workers = 0
	}

	parallel.Range(0, len(reads), workers, func(low, high int) {
		for i := low; i < high; i++ {
			if ctx.Err() != nil {
				return
			}

			// an empty pool leaves a zero record carrying only the read
			rec, ok := BestMatch(p, ds.VGenes, ds.JGenes, reads[i])
			if !ok {
				rec = vdj.Record{
					ReadSeq:   reads[i].Seq,
					ReadID:    reads[i].ID,
					VEpitopes: []string{},
					JEpitopes: []string{},
				}
			}
			records[i] = rec

			if bar != nil {
				bar.Increment()
			}
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
