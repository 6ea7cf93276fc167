package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xbh0403/CSE-282-Project/config"
	"github.com/xbh0403/CSE-282-Project/internal/align"
	"github.com/xbh0403/CSE-282-Project/internal/recovery"
	"github.com/xbh0403/CSE-282-Project/internal/vdj"
)

// recoverCmd is for aligning a dataset's reads and keeping the high scoring ones
var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Assign reads their best V/J genes and keep those scoring above a threshold",
	Long: `Assign every read in a dataset the V and J gene whose overlaps with the
read's ends agree best, and keep the reads whose final score is strictly
above the threshold.

The head of each read is aligned against the tail of each V gene and the tail
of each read against the head of each J gene. The final score of a V/J pair
compares the two aligned overlaps position by position.`,
	Example:                    "  junkread recover -i dataset.json -o recovered.json --threshold 25",
	Run:                        runRecover,
	SuggestionsMinimumDistance: 3,
}

func runRecover(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	debugRead, _ := cmd.Flags().GetInt("debug-read")
	c := settings()

	ds, err := vdj.ReadDataset(in)
	if err != nil {
		stderr.Fatal(err)
	}

	if debugRead > 0 {
		if err = debugTables(cmd.OutOrStdout(), c.Params().Scores, ds, debugRead); err != nil {
			stderr.Fatal(err)
		}
	}

	start := time.Now()
	r, err := recoverDataset(cmd, c, ds)
	if err != nil {
		stderr.Fatal(err)
	}
	if err = vdj.WriteJSON(out, r); err != nil {
		stderr.Fatal(err)
	}

	m := recovery.Evaluate(r, len(ds.OverlapReads), len(ds.RandomReads))
	stderr.Printf("recovered %s of %s reads in %s (%s)",
		humanize.Comma(int64(r.Total())),
		humanize.Comma(int64(ds.ReadCount())),
		time.Since(start).Round(time.Millisecond),
		c.Params())
	stderr.Printf("precision %.3f, recall %.3f, f1 %.3f", m.Precision, m.Recall, m.F1)
}

// recoverDataset runs recovery over ds with the settings in c
func recoverDataset(cmd *cobra.Command, c *config.Config, ds *vdj.Dataset) (*recovery.Recovered, error) {
	opts := recovery.Options{
		Workers:  c.Workers,
		Progress: c.Progress,
		Output:   cmd.ErrOrStderr(),
	}
	return recovery.Recover(cmd.Context(), c.Params(), c.Threshold, ds, opts)
}

// debugTables prints the score and backtrack tables of the first V gene's
// alignment against a read
func debugTables(w io.Writer, sc align.Scores, ds *vdj.Dataset, id int) error {
	if len(ds.VGenes) == 0 {
		return fmt.Errorf("failed to debug read %d: no V genes", id)
	}

	var read *vdj.Read
	for _, reads := range [][]vdj.Read{ds.OverlapReads, ds.RandomReads} {
		for i := range reads {
			if reads[i].ID == id && read == nil {
				read = &reads[i]
			}
		}
	}
	if read == nil {
		return fmt.Errorf("failed to debug read %d: no read with that id", id)
	}

	v := ds.VGenes[0]
	score, backtrack := align.Table(sc, v.Seq, read.Seq)

	fmt.Fprintf(w, "V gene %q against read %d\nscore:\n", v.Name, id)
	if err := align.Print(w, score); err != nil {
		return err
	}
	fmt.Fprintln(w, "backtrack:")
	return align.Print(w, backtrack)
}

// set flags
func init() {
	f := recoverCmd.Flags()

	f.StringP("in", "i", "", "input dataset <JSON>")
	f.StringP("out", "o", "", "output file name <JSON>")
	f.Int("match", 1, "aligner reward for identical bases")
	f.Int("mismatch", 1, "aligner penalty for different bases")
	f.Int("indel", 1, "aligner penalty for a base against a gap")
	f.Int("overlap-match", 1, "reward per agreeing position of two overlaps")
	f.Int("overlap-mismatch", 1, "penalty per disagreeing position of two overlaps")
	f.IntP("threshold", "t", config.DefaultThreshold, "final score a read has to beat to be recovered")
	f.Int("debug-read", 0, "print the alignment tables of the first V gene against the read with this id")
	must(recoverCmd.MarkFlagRequired("in"))
	must(recoverCmd.MarkFlagRequired("out"))

	for flag, key := range map[string]string{
		"match":            "align.match",
		"mismatch":         "align.mismatch",
		"indel":            "align.indel",
		"overlap-match":    "overlap.match",
		"overlap-mismatch": "overlap.mismatch",
		"threshold":        "threshold",
	} {
		must(viper.BindPFlag(key, f.Lookup(flag)))
	}

	RootCmd.AddCommand(recoverCmd)
}
