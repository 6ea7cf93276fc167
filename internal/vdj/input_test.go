package vdj

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNewDataset(t *testing.T) {
	typed := []Gene{{Seq: "ACGT", Epitopes: []string{"E1"}}}

	tests := []struct {
		name       string
		vGenes     interface{}
		reads      interface{}
		wantVGenes []Gene
		wantReads  []Read
	}{
		{
			"typed genes and reads",
			typed,
			[]Read{{ID: 4, Seq: "AAAA"}, {ID: 7, Seq: "CCCC"}},
			[]Gene{{Seq: "ACGT", Type: V, Epitopes: []string{"E1"}}},
			[]Read{
				{ID: 4, Seq: "AAAA", Epitopes: []string{}},
				{ID: 7, Seq: "CCCC", Epitopes: []string{}},
			},
		},
		{
			"pointers",
			[]*Gene{{Seq: "ACGT", Type: J}},
			[]*Read{{ID: 3, Seq: "GG", Epitopes: []string{"E2"}}},
			[]Gene{{Seq: "ACGT", Type: J, Epitopes: []string{}}},
			[]Read{{ID: 3, Seq: "GG", Epitopes: []string{"E2"}}},
		},
		{
			"raw records",
			[]interface{}{
				map[string]interface{}{"seq": "TTTT", "gene_type": "V", "epitopes": []interface{}{"E1", "E2"}},
			},
			[]interface{}{
				map[string]interface{}{"seq": "ACG", "v_gene": "AC", "d_gene": "G", "j_gene": nil, "epitopes": []interface{}{"E1"}},
				map[string]interface{}{"id": float64(9), "seq": "TTT"},
			},
			[]Gene{{Seq: "TTTT", Type: V, Epitopes: []string{"E1", "E2"}}},
			[]Read{
				{ID: 1, Seq: "ACG", VGene: "AC", DGene: "G", Epitopes: []string{"E1"}},
				{ID: 2, Seq: "TTT", Epitopes: []string{}},
			},
		},
		{
			"zero-based ids are renumbered from 1",
			typed,
			[]interface{}{
				map[string]interface{}{"id": float64(0), "seq": "AA"},
				map[string]interface{}{"id": float64(1), "seq": "CC"},
				map[string]interface{}{"id": float64(2), "seq": "GG"},
			},
			[]Gene{{Seq: "ACGT", Type: V, Epitopes: []string{"E1"}}},
			[]Read{
				{ID: 1, Seq: "AA", Epitopes: []string{}},
				{ID: 2, Seq: "CC", Epitopes: []string{}},
				{ID: 3, Seq: "GG", Epitopes: []string{}},
			},
		},
		{
			"missing id next to an explicit one",
			typed,
			[]Read{{Seq: "AA"}, {ID: 1, Seq: "CC"}},
			[]Gene{{Seq: "ACGT", Type: V, Epitopes: []string{"E1"}}},
			[]Read{
				{ID: 1, Seq: "AA", Epitopes: []string{}},
				{ID: 2, Seq: "CC", Epitopes: []string{}},
			},
		},
		{
			"integer keyed objects",
			map[string]interface{}{
				"10": map[string]interface{}{"seq": "CC"},
				"2":  map[string]interface{}{"seq": "AA"},
			},
			nil,
			[]Gene{
				{Seq: "AA", Type: V, Epitopes: []string{}},
				{Seq: "CC", Type: V, Epitopes: []string{}},
			},
			[]Read{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewDataset([]string{"E1"}, tt.vGenes, nil, tt.reads, nil)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(ds.VGenes, tt.wantVGenes) {
				t.Errorf("NewDataset() VGenes = %+v, want %+v", ds.VGenes, tt.wantVGenes)
			}
			if !reflect.DeepEqual(ds.OverlapReads, tt.wantReads) {
				t.Errorf("NewDataset() OverlapReads = %+v, want %+v", ds.OverlapReads, tt.wantReads)
			}
			seen := make(map[int]bool)
			for _, r := range ds.OverlapReads {
				if r.ID <= 0 || seen[r.ID] {
					t.Errorf("NewDataset() read id %d is not positive and distinct", r.ID)
				}
				seen[r.ID] = true
			}
			if len(ds.JGenes) != 0 || len(ds.RandomReads) != 0 {
				t.Errorf("NewDataset() expected empty J genes and random reads")
			}
		})
	}
}

func TestNewDataset_malformed(t *testing.T) {
	tests := []struct {
		name   string
		vGenes interface{}
		reads  interface{}
	}{
		{"string pool", "ACGT", nil},
		{"missing seq", []interface{}{map[string]interface{}{"epitopes": []interface{}{}}}, nil},
		{"unknown field", []interface{}{map[string]interface{}{"seq": "A", "color": "red"}}, nil},
		{"epitope not a string", []interface{}{map[string]interface{}{"seq": "A", "epitopes": []interface{}{1.0}}}, nil},
		{"nested provenance", nil, []interface{}{map[string]interface{}{"seq": "A", "v_gene": map[string]interface{}{"gene": "A"}}}},
		{"fractional id", nil, []interface{}{map[string]interface{}{"seq": "A", "id": 1.5}}},
		{"nil read", nil, []*Read{nil}},
		{"repeated id", nil, []Read{{ID: 3, Seq: "A"}, {ID: 3, Seq: "C"}}},
		{"negative id", nil, []interface{}{map[string]interface{}{"seq": "A", "id": -2.0}}},
		{"non-integer key", map[string]interface{}{"a": map[string]interface{}{"seq": "A"}}, nil},
		{"number in list", nil, []interface{}{3.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDataset(nil, tt.vGenes, nil, tt.reads, nil)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("NewDataset() error = %v, want ErrMalformedRecord", err)
			}
		})
	}
}

func TestDecodeDataset(t *testing.T) {
	doc := `{
		"epitopes": ["GILGFVFTL"],
		"v_genes": [{"seq": "ACGTACGT", "gene_type": "V", "epitopes": ["GILGFVFTL"]}],
		"j_genes": [{"seq": "TTGGCC", "gene_type": "J", "epitopes": []}],
		"overlap_reads": [{"seq": "ACGTTTGG", "v_gene": "ACGT", "d_gene": "T", "j_gene": "TTGG", "epitopes": ["GILGFVFTL"]}],
		"random_reads": [{"seq": "NNNN", "v_gene": "", "d_gene": "", "j_gene": "", "epitopes": []}]
	}`

	ds, err := DecodeDataset(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if ds.ReadCount() != 2 {
		t.Errorf("ReadCount() = %d, want 2", ds.ReadCount())
	}
	if ds.OverlapReads[0].ID != 1 || ds.RandomReads[0].ID != 1 {
		t.Errorf("DecodeDataset() read ids = %d, %d, want 1, 1", ds.OverlapReads[0].ID, ds.RandomReads[0].ID)
	}
	if ds.JGenes[0].Type != J {
		t.Errorf("DecodeDataset() J gene type = %q", ds.JGenes[0].Type)
	}

	if _, err := DecodeDataset(strings.NewReader("{")); err == nil {
		t.Error("DecodeDataset() expected an error for truncated JSON")
	}
}

func TestRecord_Epitopes(t *testing.T) {
	r := Record{
		VEpitopes: []string{"E2", "E1", "E2"},
		JEpitopes: []string{"E3", "E1"},
	}

	want := []string{"E2", "E1", "E3"}
	if got := r.Epitopes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Record.Epitopes() = %v, want %v", got, want)
	}
}
