package cmd

import (
	"errors"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/xbh0403/CSE-282-Project/internal/coverage"
)

// coverCmd is for selecting the epitopes that cover the most recovered reads
var coverCmd = &cobra.Command{
	Use:   "cover [recovered.json] ... [recoveredN.json]",
	Short: "Select the k epitopes covering the most recovered reads",
	Long: `Select the k epitopes whose recovered reads cover the most distinct reads,
both exactly (every k-subset) and greedily (largest marginal gain first).

A report is written for every input file and k, ex: "sim.json" with k=2 is
written to "<out>/sim_k2_result.json". Decoy reads count toward coverage
separately from genuine reads with the same id.`,
	Example:                    "  junkread cover recovered.json -k 1,2,3 -o reports",
	Args:                       cobra.MinimumNArgs(1),
	Run:                        runCover,
	SuggestionsMinimumDistance: 3,
}

func runCover(cmd *cobra.Command, args []string) {
	ks, _ := cmd.Flags().GetIntSlice("k")
	out, _ := cmd.Flags().GetString("out")
	c := settings()

	if len(ks) == 0 {
		ks = []int{c.K}
	}

	var progress = cmd.ErrOrStderr()
	if !c.Progress {
		progress = nil
	}

	start := time.Now()
	results, err := coverage.EvaluateFiles(cmd.Context(), args, ks, out, c.Workers, progress)
	if err != nil {
		stderr.Fatal(err)
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			stderr.Printf("%s k=%d: %v", res.Input, res.K, res.Err)
			continue
		}
		stderr.Printf("%s k=%d: exact %s covers %s reads in %s, greedy %s covers %s reads in %s",
			res.Input, res.K,
			strings.Join(res.Report.BruteForceResult, ","),
			humanize.Comma(int64(res.Report.BruteForceNumCovered)),
			humanize.FtoaWithDigits(res.Report.TimeBruteForce, 4)+"s",
			strings.Join(res.Report.GreedyResult, ","),
			humanize.Comma(int64(res.Report.GreedyNumRecovered)),
			humanize.FtoaWithDigits(res.Report.TimeGreedy, 4)+"s")
	}

	stderr.Printf("wrote %d reports to %s in %s", len(results)-failed, out, time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		stderr.Fatal(errors.New("some coverage jobs failed"))
	}
}

// set flags
func init() {
	coverCmd.Flags().IntSliceP("k", "k", nil, "numbers of epitopes to select (default is the k setting)")
	coverCmd.Flags().StringP("out", "o", ".", "output directory for the reports")

	RootCmd.AddCommand(coverCmd)
}
