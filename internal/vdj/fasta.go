package vdj

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// epitopeTag marks the epitope list in a FASTA description, ex:
// >IGHV1-2*01 epitopes=GILGFVFTL,NLVPMVATV
const epitopeTag = "epitopes="

// entry is a single FASTA record
type entry struct {
	id       string
	seq      string
	epitopes []string
}

// readFASTA parses every record in a FASTA stream
func readFASTA(r io.Reader) ([]entry, error) {
	var entries []entry

	reader := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant))
	for {
		s, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to parse FASTA: %w", err)
		}

		l := s.(*linear.Seq)
		b := make([]byte, len(l.Seq))
		for i, c := range l.Seq {
			b[i] = byte(c)
		}

		entries = append(entries, entry{
			id:       l.ID,
			seq:      strings.ToUpper(string(b)),
			epitopes: parseEpitopes(l.Desc),
		})
	}

	return entries, nil
}

// parseEpitopes finds the epitopes= token in a FASTA description
func parseEpitopes(desc string) []string {
	epitopes := []string{}
	for _, field := range strings.Fields(desc) {
		if !strings.HasPrefix(field, epitopeTag) {
			continue
		}
		for _, e := range strings.Split(strings.TrimPrefix(field, epitopeTag), ",") {
			if e = strings.TrimSpace(e); e != "" {
				epitopes = append(epitopes, e)
			}
		}
	}
	return epitopes
}

func openFASTA(filename string) ([]entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	entries, err := readFASTA(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return entries, nil
}

// ReadGenesFASTA reads a pool of genes of type t from a FASTA file
func ReadGenesFASTA(filename string, t GeneType) ([]Gene, error) {
	entries, err := openFASTA(filename)
	if err != nil {
		return nil, err
	}

	genes := make([]Gene, 0, len(entries))
	for _, e := range entries {
		genes = append(genes, Gene{Name: e.id, Seq: e.seq, Type: t, Epitopes: e.epitopes})
	}
	return genes, nil
}

// ReadReadsFASTA reads a collection of reads from a FASTA file, numbering them from 1
func ReadReadsFASTA(filename string) ([]Read, error) {
	entries, err := openFASTA(filename)
	if err != nil {
		return nil, err
	}

	reads := make([]Read, 0, len(entries))
	for i, e := range entries {
		reads = append(reads, Read{ID: i + 1, Seq: e.seq, Epitopes: e.epitopes})
	}
	return reads, nil
}

// EpitopeUniverse is every epitope carried by the genes, in first-seen order
func EpitopeUniverse(pools ...[]Gene) []string {
	var lists [][]string
	for _, pool := range pools {
		for _, g := range pool {
			lists = append(lists, g.Epitopes)
		}
	}
	return Union(lists...)
}
