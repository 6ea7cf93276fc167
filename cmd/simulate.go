package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/xbh0403/CSE-282-Project/internal/simulate"
	"github.com/xbh0403/CSE-282-Project/internal/vdj"
)

// simulateCmd is for writing a random dataset with known genuine and decoy reads
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a dataset of V/J genes, junction reads and decoy reads",
	Long: `Simulate a dataset of epitopes, V and J genes annotated with them, reads
spanning a V/D/J junction and random decoy reads.

Overlap reads are a V-gene suffix, a random D segment and a J-gene prefix,
and carry the epitopes of both genes. Decoy reads are random nucleotides.
The same seed always gives the same dataset.`,
	Example:                    "  junkread simulate --overlap-reads 100 --random-reads 100 -o sim.json",
	Run:                        runSimulate,
	SuggestionsMinimumDistance: 3,
}

func runSimulate(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")
	opts := simulate.DefaultOptions()
	opts.Epitopes, _ = cmd.Flags().GetInt("epitopes")
	opts.VGenes, _ = cmd.Flags().GetInt("v-genes")
	opts.JGenes, _ = cmd.Flags().GetInt("j-genes")
	opts.GeneLength, _ = cmd.Flags().GetInt("gene-length")
	opts.OverlapReads, _ = cmd.Flags().GetInt("overlap-reads")
	opts.RandomReads, _ = cmd.Flags().GetInt("random-reads")
	opts.ReadLength, _ = cmd.Flags().GetInt("read-length")
	opts.Seed, _ = cmd.Flags().GetInt64("seed")

	ds, err := simulate.Dataset(opts)
	if err != nil {
		stderr.Fatalf("failed to simulate a dataset: %v", err)
	}
	if err = vdj.WriteJSON(out, ds); err != nil {
		stderr.Fatal(err)
	}

	stderr.Printf("wrote %s reads (%s overlap, %s random) to %s",
		humanize.Comma(int64(ds.ReadCount())),
		humanize.Comma(int64(len(ds.OverlapReads))),
		humanize.Comma(int64(len(ds.RandomReads))),
		out)
}

// set flags
func init() {
	d := simulate.DefaultOptions()

	simulateCmd.Flags().StringP("out", "o", "", "output file name <JSON>")
	simulateCmd.Flags().Int("epitopes", d.Epitopes, "number of epitopes")
	simulateCmd.Flags().Int("v-genes", d.VGenes, "number of V genes")
	simulateCmd.Flags().Int("j-genes", d.JGenes, "number of J genes")
	simulateCmd.Flags().Int("gene-length", d.GeneLength, "length of every gene (bp)")
	simulateCmd.Flags().Int("overlap-reads", d.OverlapReads, "number of reads spanning a junction")
	simulateCmd.Flags().Int("random-reads", d.RandomReads, "number of random decoy reads")
	simulateCmd.Flags().Int("read-length", d.ReadLength, "length of every read (bp)")
	simulateCmd.Flags().Int64("seed", d.Seed, "random seed")
	must(simulateCmd.MarkFlagRequired("out"))

	RootCmd.AddCommand(simulateCmd)
}
