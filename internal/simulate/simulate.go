// Package simulate generates synthetic epitopes, V/J genes and reads: overlap
// reads stitched from a V tail, a random D fill and a J head, and random
// decoy reads.
package simulate

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/xbh0403/CSE-282-Project/internal/vdj"
)

// nucleotides and their sampling weights. N is rare
var (
	nucleotides = []byte("ACGTN")
	ntWeights   = []float64{0.245, 0.245, 0.245, 0.245, 0.02}
)

// aminoAcids is the 20 letter protein alphabet epitopes are drawn from
const aminoAcids = "ACDEFGHIKLMNPQRSTVWY"

const (
	// epitope lengths are drawn from [minEpitopeLen, maxEpitopeLen]
	minEpitopeLen = 8
	maxEpitopeLen = 11

	// genes carry between 1 and maxGeneEpitopes epitopes
	maxGeneEpitopes = 10

	// D fills are between 1 and maxDLen-1 nucleotides
	maxDLen = 12

	// maxAttempts bounds the rejection sampling of overlap reads
	maxAttempts = 1000000
)

// Options size a simulated dataset.
type Options struct {
	Epitopes     int   `json:"epitopes"`
	VGenes       int   `json:"v_genes"`
	JGenes       int   `json:"j_genes"`
	GeneLength   int   `json:"gene_length"`
	OverlapReads int   `json:"overlap_reads"`
	RandomReads  int   `json:"random_reads"`
	ReadLength   int   `json:"read_length"`
	Seed         int64 `json:"seed"`
}

// DefaultOptions are the sizes of the small default simulation
func DefaultOptions() Options {
	return Options{
		Epitopes:     10,
		VGenes:       10,
		JGenes:       10,
		GeneLength:   75,
		OverlapReads: 10,
		RandomReads:  10,
		ReadLength:   75,
		Seed:         1,
	}
}

// Simulator draws sequences from a seeded source. It is not safe for
// concurrent use.
type Simulator struct {
	rng *rand.Rand
}

// New returns a Simulator seeded with seed
func New(seed int64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

// Nucleotides returns a random nucleotide sequence of length n
func (s *Simulator) Nucleotides(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(nucleotides[s.weighted()])
	}
	return sb.String()
}

// weighted picks an index of ntWeights
func (s *Simulator) weighted() int {
	r := s.rng.Float64()
	for i, w := range ntWeights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(ntWeights) - 1
}

// Epitopes returns n random amino acid epitopes. All share one length, drawn
// once per call.
func (s *Simulator) Epitopes(n int) []string {
	length := minEpitopeLen + s.rng.Intn(maxEpitopeLen-minEpitopeLen+1)

	epitopes := make([]string, n)
	for i := range epitopes {
		b := make([]byte, length)
		for j := range b {
			b[j] = aminoAcids[s.rng.Intn(len(aminoAcids))]
		}
		epitopes[i] = string(b)
	}
	return epitopes
}

// Genes returns n genes of type t, each of the given length and carrying
// 1 to 10 distinct epitopes from the pool.
func (s *Simulator) Genes(n, length int, t vdj.GeneType, pool []string) []vdj.Gene {
	genes := make([]vdj.Gene, n)
	for i := range genes {
		count := 0
		if len(pool) > 0 {
			limit := maxGeneEpitopes
			if len(pool) < limit {
				limit = len(pool)
			}
			count = 1 + s.rng.Intn(limit)
		}

		epitopes := make([]string, count)
		for j, k := range s.rng.Perm(len(pool))[:count] {
			epitopes[j] = pool[k]
		}

		genes[i] = vdj.Gene{
			Name:     fmt.Sprintf("%s%d", t, i+1),
			Seq:      s.Nucleotides(length),
			Type:     t,
			Epitopes: epitopes,
		}
	}
	return genes
}

// OverlapReads returns n reads of the given length, each the tail of a random
// V gene, a random D fill of 1 to 11 nucleotides and the head of a random J
// gene. A read inherits the union of its genes' epitopes.
func (s *Simulator) OverlapReads(n, length int, vGenes, jGenes []vdj.Gene) ([]vdj.Read, error) {
	if n == 0 {
		return []vdj.Read{}, nil
	}
	if len(vGenes) == 0 || len(jGenes) == 0 {
		return nil, fmt.Errorf("failed to simulate overlap reads: empty V or J gene pool")
	}
	if length < 1 {
		return nil, fmt.Errorf("failed to simulate overlap reads: read length %d", length)
	}

	reads := make([]vdj.Read, 0, n)
	for attempt := 0; len(reads) < n; attempt++ {
		if attempt >= maxAttempts {
			return nil, fmt.Errorf("failed to simulate overlap reads: no valid V/D/J split after %d attempts", maxAttempts)
		}

		v := vGenes[s.rng.Intn(len(vGenes))]
		j := jGenes[s.rng.Intn(len(jGenes))]

		vLen := s.rng.Intn(min(length, len(v.Seq)) + 1)
		jLen := s.rng.Intn(min(length-vLen, len(j.Seq)) + 1)
		dLen := length - vLen - jLen
		if dLen <= 0 || dLen >= maxDLen {
			continue
		}

		vFrag := v.Seq[len(v.Seq)-vLen:]
		dFrag := s.Nucleotides(dLen)
		jFrag := j.Seq[:jLen]

		reads = append(reads, vdj.Read{
			ID:       len(reads) + 1,
			Seq:      vFrag + dFrag + jFrag,
			VGene:    vFrag,
			DGene:    dFrag,
			JGene:    jFrag,
			Epitopes: vdj.Union(v.Epitopes, j.Epitopes),
		})
	}
	return reads, nil
}

// RandomReads returns n decoy reads of pure noise
func (s *Simulator) RandomReads(n, length int) []vdj.Read {
	reads := make([]vdj.Read, n)
	for i := range reads {
		reads[i] = vdj.Read{ID: i + 1, Seq: s.Nucleotides(length), Epitopes: []string{}}
	}
	return reads
}

// Dataset simulates a complete dataset
func Dataset(opts Options) (*vdj.Dataset, error) {
	s := New(opts.Seed)

	epitopes := s.Epitopes(opts.Epitopes)
	vGenes := s.Genes(opts.VGenes, opts.GeneLength, vdj.V, epitopes)
	jGenes := s.Genes(opts.JGenes, opts.GeneLength, vdj.J, epitopes)

	overlap, err := s.OverlapReads(opts.OverlapReads, opts.ReadLength, vGenes, jGenes)
	if err != nil {
		return nil, err
	}

	return &vdj.Dataset{
		Epitopes:     epitopes,
		VGenes:       vGenes,
		JGenes:       jGenes,
		OverlapReads: overlap,
		RandomReads:  s.RandomReads(opts.RandomReads, opts.ReadLength),
	}, nil
}
