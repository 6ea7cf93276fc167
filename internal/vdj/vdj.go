// Package vdj holds the reference genes, sequencing reads and per-read
// alignment records shared by the recovery and coverage stages.
package vdj

// GeneType is the segment pool a Gene belongs to
type GeneType string

const (
	// V is a variable segment. Its tail overlaps the head of a read
	V GeneType = "V"

	// J is a joining segment. Its head overlaps the tail of a read
	J GeneType = "J"
)

// Gene is a reference V or J segment and the epitopes it is annotated with.
type Gene struct {
	// Name is an optional label (from a FASTA header, for example)
	Name string `json:"name,omitempty"`

	// Seq is the nucleotide sequence
	Seq string `json:"seq"`

	// Type is the pool the gene belongs to
	Type GeneType `json:"gene_type"`

	// Epitopes recognized by receptors carrying this gene
	Epitopes []string `json:"epitopes"`
}

// Read is a sequencing read. The V, D and J fields are provenance from
// simulation and are never used during alignment.
type Read struct {
	// ID identifies the read within its collection
	ID int `json:"id"`

	// Seq is the read's nucleotide sequence
	Seq string `json:"seq"`

	// VGene is the V fragment the read was built from
	VGene string `json:"v_gene"`

	// DGene is the random junction fill
	DGene string `json:"d_gene"`

	// JGene is the J fragment the read was built from
	JGene string `json:"j_gene"`

	// Epitopes the read is known to carry (empty for decoys)
	Epitopes []string `json:"epitopes"`
}

// Record is the best V/J assignment found for a single read.
type Record struct {
	// FinalScore is the sum of the V-side and J-side overlap scores
	FinalScore int `json:"final_score"`

	ReadSeq string `json:"read_sequence"`
	ReadID  int    `json:"read_identifier"`

	// AlignedVTail and AlignedReadHead are the aligned V-gene/read-head pair
	AlignedVTail    string   `json:"aligned_v_tail"`
	AlignedReadHead string   `json:"aligned_read_head"`
	VEpitopes       []string `json:"v_gene_epitopes"`

	// AlignedReadTail and AlignedJHead are the aligned read-tail/J-gene pair
	AlignedReadTail string   `json:"aligned_read_tail"`
	AlignedJHead    string   `json:"aligned_j_head"`
	JEpitopes       []string `json:"j_gene_epitopes"`
}

// Epitopes returns the union of the record's V and J epitope labels
func (r Record) Epitopes() []string {
	return Union(r.VEpitopes, r.JEpitopes)
}

// Union merges label lists keeping the first occurrence of each label, in order.
func Union(lists ...[]string) []string {
	seen := make(map[string]bool)
	union := []string{}
	for _, labels := range lists {
		for _, e := range labels {
			if seen[e] {
				continue
			}
			seen[e] = true
			union = append(union, e)
		}
	}
	return union
}

// Dataset is the input to recovery: the epitope universe, both gene pools,
// the genuine (overlap) reads and the decoy (random) reads.
type Dataset struct {
	Epitopes     []string `json:"epitopes"`
	VGenes       []Gene   `json:"v_genes"`
	JGenes       []Gene   `json:"j_genes"`
	OverlapReads []Read   `json:"overlap_reads"`
	RandomReads  []Read   `json:"random_reads"`
}

// ReadCount is the number of genuine plus decoy reads in the dataset
func (d *Dataset) ReadCount() int {
	return len(d.OverlapReads) + len(d.RandomReads)
}
