package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/xbh0403/CSE-282-Project/config"
	"github.com/xbh0403/CSE-282-Project/internal/recovery"
	"github.com/xbh0403/CSE-282-Project/internal/vdj"
)

// gridCmd is for searching for the recovery scores that best separate genuine and decoy reads
var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Search a grid of scores and thresholds for the best recovery F1",
	Long: `Run recovery at every combination of the given scores and thresholds, and
score each against the dataset's known overlap (genuine) and random (decoy)
reads. Reads are aligned once per score combination.

Every trial is written as a row of a CSV file and the trial with the best F1
is logged.`,
	Example:                    "  junkread grid -i sim.json -o trials.csv --indel 1,2,3 --threshold 10,20,30",
	Run:                        runGrid,
	SuggestionsMinimumDistance: 3,
}

func runGrid(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	c := settings()

	g := recovery.Grid{}
	for flag, values := range map[string]*[]int{
		"match":            &g.Match,
		"mismatch":         &g.Mismatch,
		"indel":            &g.Indel,
		"overlap-match":    &g.OverlapMatch,
		"overlap-mismatch": &g.OverlapMismatch,
		"threshold":        &g.Threshold,
	} {
		*values, _ = cmd.Flags().GetIntSlice(flag)
	}

	ds, err := vdj.ReadDataset(in)
	if err != nil {
		stderr.Fatal(err)
	}

	start := time.Now()
	trials, err := recovery.GridSearch(cmd.Context(), ds, g, recovery.Options{
		Workers:  c.Workers,
		Progress: c.Progress,
		Output:   cmd.ErrOrStderr(),
	})
	if err != nil {
		stderr.Fatal(err)
	}
	if err = writeTrials(out, trials); err != nil {
		stderr.Fatal(err)
	}

	stderr.Printf("ran %s trials over %s reads in %s",
		humanize.Comma(int64(len(trials))),
		humanize.Comma(int64(ds.ReadCount())),
		time.Since(start).Round(time.Millisecond))
	if best, ok := recovery.Best(trials); ok {
		stderr.Printf("best: %s threshold=%d f1=%.3f precision=%.3f recall=%.3f",
			best.Params, best.Threshold, best.Metrics.F1, best.Metrics.Precision, best.Metrics.Recall)
	}
}

// writeTrials writes the trials as CSV to filename
func writeTrials(filename string, trials []recovery.Trial) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err = recovery.WriteTrialsCSV(f, trials); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// set flags
func init() {
	f := gridCmd.Flags()

	f.StringP("in", "i", "", "input dataset with overlap and random reads <JSON>")
	f.StringP("out", "o", "trials.csv", "output file name <CSV>")
	f.IntSlice("match", []int{1}, "aligner rewards for identical bases")
	f.IntSlice("mismatch", []int{1}, "aligner penalties for different bases")
	f.IntSlice("indel", []int{1}, "aligner penalties for a base against a gap")
	f.IntSlice("overlap-match", []int{1}, "rewards per agreeing position of two overlaps")
	f.IntSlice("overlap-mismatch", []int{1}, "penalties per disagreeing position of two overlaps")
	f.IntSliceP("threshold", "t", []int{config.DefaultThreshold}, "final scores a read has to beat to be recovered")
	must(gridCmd.MarkFlagRequired("in"))

	RootCmd.AddCommand(gridCmd)
}
