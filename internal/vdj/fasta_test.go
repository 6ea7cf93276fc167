package vdj

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadGenesFASTA(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "v.fa")
	fa := ">IGHV1 epitopes=GILGFVFTL,NLVPMVATV\nacgtacgt\nAACC\n>IGHV2 no labels\nTTTTNNGG\n"
	if err := os.WriteFile(in, []byte(fa), 0644); err != nil {
		t.Fatal(err)
	}

	genes, err := ReadGenesFASTA(in, V)
	if err != nil {
		t.Fatal(err)
	}

	want := []Gene{
		{Name: "IGHV1", Seq: "ACGTACGTAACC", Type: V, Epitopes: []string{"GILGFVFTL", "NLVPMVATV"}},
		{Name: "IGHV2", Seq: "TTTTNNGG", Type: V, Epitopes: []string{}},
	}
	if !reflect.DeepEqual(genes, want) {
		t.Errorf("ReadGenesFASTA() = %+v, want %+v", genes, want)
	}

	if got := EpitopeUniverse(genes, []Gene{{Epitopes: []string{"NLVPMVATV", "KLGGALQAK"}}}); !reflect.DeepEqual(got, []string{"GILGFVFTL", "NLVPMVATV", "KLGGALQAK"}) {
		t.Errorf("EpitopeUniverse() = %v", got)
	}
}

func TestReadReadsFASTA(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "reads.fa")
	if err := os.WriteFile(in, []byte(">r1\nACGT\n>r2\nGGCC\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reads, err := ReadReadsFASTA(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(reads) != 2 || reads[0].ID != 1 || reads[1].ID != 2 || reads[1].Seq != "GGCC" {
		t.Errorf("ReadReadsFASTA() = %+v", reads)
	}

	if _, err := ReadReadsFASTA(filepath.Join(dir, "missing.fa")); err == nil {
		t.Error("ReadReadsFASTA() expected an error for a missing file")
	}
}
