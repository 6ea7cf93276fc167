package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/xbh0403/CSE-282-Project/internal/vdj"
)

// importCmd is for building a dataset from FASTA files
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Build a dataset from FASTA files of genes and reads",
	Long: `Build a dataset from FASTA files of V genes, J genes and reads.

Gene epitopes are read from an "epitopes=" token in each record's
description, ex:

  >IGHV1-2 epitopes=GILGFVFTL,NLVPMVATV
  ACGT...

Reads are numbered from 1 in file order. The epitope universe is every
epitope carried by a gene.`,
	Example:                    "  junkread import --v v.fa --j j.fa --reads reads.fa -o dataset.json",
	Run:                        runImport,
	SuggestionsMinimumDistance: 3,
}

func runImport(cmd *cobra.Command, args []string) {
	vPath, _ := cmd.Flags().GetString("v")
	jPath, _ := cmd.Flags().GetString("j")
	readsPath, _ := cmd.Flags().GetString("reads")
	decoysPath, _ := cmd.Flags().GetString("decoys")
	out, _ := cmd.Flags().GetString("out")

	ds, err := importFASTA(vPath, jPath, readsPath, decoysPath)
	if err != nil {
		stderr.Fatal(err)
	}
	if err = vdj.WriteJSON(out, ds); err != nil {
		stderr.Fatal(err)
	}

	stderr.Printf("imported %s V genes, %s J genes and %s reads to %s",
		humanize.Comma(int64(len(ds.VGenes))),
		humanize.Comma(int64(len(ds.JGenes))),
		humanize.Comma(int64(ds.ReadCount())),
		out)
}

// importFASTA reads each FASTA file and normalizes them into a Dataset.
// decoysPath is optional.
func importFASTA(vPath, jPath, readsPath, decoysPath string) (*vdj.Dataset, error) {
	vGenes, err := vdj.ReadGenesFASTA(vPath, vdj.V)
	if err != nil {
		return nil, err
	}
	jGenes, err := vdj.ReadGenesFASTA(jPath, vdj.J)
	if err != nil {
		return nil, err
	}
	reads, err := vdj.ReadReadsFASTA(readsPath)
	if err != nil {
		return nil, err
	}

	decoys := []vdj.Read{}
	if decoysPath != "" {
		if decoys, err = vdj.ReadReadsFASTA(decoysPath); err != nil {
			return nil, err
		}
	}

	return vdj.NewDataset(vdj.EpitopeUniverse(vGenes, jGenes), vGenes, jGenes, reads, decoys)
}

// set flags
func init() {
	importCmd.Flags().String("v", "", "V genes <FASTA>")
	importCmd.Flags().String("j", "", "J genes <FASTA>")
	importCmd.Flags().StringP("reads", "r", "", "reads to recover <FASTA>")
	importCmd.Flags().StringP("decoys", "d", "", "known decoy reads, optional <FASTA>")
	importCmd.Flags().StringP("out", "o", "", "output file name <JSON>")
	for _, f := range []string{"v", "j", "reads", "out"} {
		must(importCmd.MarkFlagRequired(f))
	}

	RootCmd.AddCommand(importCmd)
}
