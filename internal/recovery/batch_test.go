package recovery

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/xbh0403/CSE-282-Project/internal/simulate"
	"github.com/xbh0403/CSE-282-Project/internal/vdj"
)

func smallDataset(t *testing.T, seed int64) *vdj.Dataset {
	t.Helper()

	opts := simulate.DefaultOptions()
	opts.VGenes = 5
	opts.JGenes = 5
	opts.GeneLength = 40
	opts.ReadLength = 40
	opts.OverlapReads = 25
	opts.RandomReads = 25
	opts.Seed = seed

	ds, err := simulate.Dataset(opts)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestAlignAll(t *testing.T) {
	ds := smallDataset(t, 5)

	var progress bytes.Buffer
	a, err := AlignAll(context.Background(), unitParams, ds, Options{Workers: 8, Progress: true, Output: &progress})
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Overlap) != len(ds.OverlapReads) || len(a.Random) != len(ds.RandomReads) {
		t.Fatalf("AlignAll() = %d overlap, %d random records", len(a.Overlap), len(a.Random))
	}

	// records are in input order and equal to aligning each read alone
	for i, r := range ds.OverlapReads {
		want, _ := BestMatch(unitParams, ds.VGenes, ds.JGenes, r)
		if !reflect.DeepEqual(a.Overlap[i], want) {
			t.Errorf("AlignAll() overlap record %d = %+v, want %+v", i, a.Overlap[i], want)
		}
	}
	for i, r := range ds.RandomReads {
		if a.Random[i].ReadID != r.ID || a.Random[i].ReadSeq != r.Seq {
			t.Errorf("AlignAll() random record %d is for read %d", i, a.Random[i].ReadID)
		}
	}

	if !reflect.DeepEqual(a.Epitopes, ds.Epitopes) || len(a.VGenes) != len(ds.VGenes) || len(a.JGenes) != len(ds.JGenes) {
		t.Error("AlignAll() didn't pass the epitopes and genes through")
	}

	// a single batch gives the same answer
	serial, err := AlignAll(context.Background(), unitParams, ds, Options{Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(serial, a) {
		t.Error("AlignAll() differs between 1 and 8 batches")
	}
}

func TestAlignAll_emptyPools(t *testing.T) {
	ds := &vdj.Dataset{
		OverlapReads: []vdj.Read{{ID: 1, Seq: "ACGT"}},
		RandomReads:  []vdj.Read{},
	}

	a, err := AlignAll(context.Background(), unitParams, ds, Options{})
	if err != nil {
		t.Fatal(err)
	}

	want := vdj.Record{ReadSeq: "ACGT", ReadID: 1, VEpitopes: []string{}, JEpitopes: []string{}}
	if len(a.Overlap) != 1 || !reflect.DeepEqual(a.Overlap[0], want) {
		t.Errorf("AlignAll() = %+v, want a single zero record", a.Overlap)
	}
	if len(a.Random) != 0 {
		t.Errorf("AlignAll() random = %+v, want none", a.Random)
	}
}

func TestAlignAll_cancelled(t *testing.T) {
	ds := smallDataset(t, 6)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := AlignAll(ctx, unitParams, ds, Options{}); err != context.Canceled {
		t.Errorf("AlignAll() error = %v, want context.Canceled", err)
	}
}
