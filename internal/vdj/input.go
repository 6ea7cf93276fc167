package vdj

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
)

// ErrMalformedRecord is returned when a gene or read can't be normalized
// into a Gene or Read.
var ErrMalformedRecord = errors.New("malformed record")

// rawDataset is a dataset document before its pools are normalized
type rawDataset struct {
	Epitopes     []string    `json:"epitopes"`
	VGenes       interface{} `json:"v_genes"`
	JGenes       interface{} `json:"j_genes"`
	OverlapReads interface{} `json:"overlap_reads"`
	RandomReads  interface{} `json:"random_reads"`
}

// NewDataset normalizes gene pools and read collections into a Dataset.
//
// Each collection may be a typed slice ([]Gene, []*Gene, []Read, []*Read) or
// raw decoded JSON: a []interface{} of objects, or an object keyed by integer
// strings. Anything else fails with ErrMalformedRecord. Reads without an ID
// (or with ID 0) are numbered from 1 by their position in the collection so
// that a negated ID never collides with a genuine one.
func NewDataset(epitopes []string, vGenes, jGenes, overlapReads, randomReads interface{}) (*Dataset, error) {
	var err error
	ds := &Dataset{Epitopes: epitopes}
	if ds.Epitopes == nil {
		ds.Epitopes = []string{}
	}

	if ds.VGenes, err = normalizeGenes(vGenes, V, "v_genes"); err != nil {
		return nil, err
	}
	if ds.JGenes, err = normalizeGenes(jGenes, J, "j_genes"); err != nil {
		return nil, err
	}
	if ds.OverlapReads, err = normalizeReads(overlapReads, "overlap_reads"); err != nil {
		return nil, err
	}
	if ds.RandomReads, err = normalizeReads(randomReads, "random_reads"); err != nil {
		return nil, err
	}

	return ds, nil
}

// DecodeDataset reads a dataset JSON document.
func DecodeDataset(r io.Reader) (*Dataset, error) {
	var raw rawDataset
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return NewDataset(raw.Epitopes, raw.VGenes, raw.JGenes, raw.OverlapReads, raw.RandomReads)
}

// ReadDataset reads and normalizes a dataset JSON file.
func ReadDataset(filename string) (*Dataset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", filename, err)
	}
	defer f.Close()

	ds, err := DecodeDataset(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ds, nil
}

// malformed wraps ErrMalformedRecord with the collection and position of the bad record
func malformed(collection string, i int, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s[%d]: %s", ErrMalformedRecord, collection, i, fmt.Sprintf(format, args...))
}

// items turns a raw JSON array or integer-keyed object into an ordered slice
func items(raw interface{}, collection string) ([]interface{}, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		return v, nil
	case map[string]interface{}:
		keys := make([]int, 0, len(v))
		for k := range v {
			n, err := strconv.Atoi(k)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: non-integer key %q", ErrMalformedRecord, collection, k)
			}
			keys = append(keys, n)
		}
		sort.Ints(keys)

		ordered := make([]interface{}, len(keys))
		for i, k := range keys {
			ordered[i] = v[strconv.Itoa(k)]
		}
		return ordered, nil
	default:
		return nil, fmt.Errorf("%w: %s: unsupported collection type %T", ErrMalformedRecord, collection, raw)
	}
}

func normalizeGenes(raw interface{}, t GeneType, collection string) ([]Gene, error) {
	genes := []Gene{}

	switch v := raw.(type) {
	case []Gene:
		genes = append(genes, v...)
	case []*Gene:
		for i, g := range v {
			if g == nil {
				return nil, malformed(collection, i, "nil gene")
			}
			genes = append(genes, *g)
		}
	default:
		elems, err := items(raw, collection)
		if err != nil {
			return nil, err
		}
		for i, e := range elems {
			switch g := e.(type) {
			case Gene:
				genes = append(genes, g)
			case *Gene:
				if g == nil {
					return nil, malformed(collection, i, "nil gene")
				}
				genes = append(genes, *g)
			case map[string]interface{}:
				gene, err := geneFromMap(g, collection, i)
				if err != nil {
					return nil, err
				}
				genes = append(genes, gene)
			default:
				return nil, malformed(collection, i, "unsupported gene type %T", e)
			}
		}
	}

	for i := range genes {
		if genes[i].Type == "" {
			genes[i].Type = t
		}
		if genes[i].Epitopes == nil {
			genes[i].Epitopes = []string{}
		}
	}
	return genes, nil
}

func normalizeReads(raw interface{}, collection string) ([]Read, error) {
	reads := []Read{}

	switch v := raw.(type) {
	case []Read:
		reads = append(reads, v...)
	case []*Read:
		for i, r := range v {
			if r == nil {
				return nil, malformed(collection, i, "nil read")
			}
			reads = append(reads, *r)
		}
	default:
		elems, err := items(raw, collection)
		if err != nil {
			return nil, err
		}
		for i, e := range elems {
			switch r := e.(type) {
			case Read:
				reads = append(reads, r)
			case *Read:
				if r == nil {
					return nil, malformed(collection, i, "nil read")
				}
				reads = append(reads, *r)
			case map[string]interface{}:
				read, err := readFromMap(r, collection, i)
				if err != nil {
					return nil, err
				}
				reads = append(reads, read)
			default:
				return nil, malformed(collection, i, "unsupported read type %T", e)
			}
		}
	}

	if err := numberReads(reads, collection); err != nil {
		return nil, err
	}
	for i := range reads {
		if reads[i].Epitopes == nil {
			reads[i].Epitopes = []string{}
		}
	}
	return reads, nil
}

// numberReads makes read IDs distinct and positive. If any read has no ID
// (or ID 0) the whole collection is numbered 1..n by position, so a decoy's
// negated ID can't collide with a genuine read's. Otherwise IDs are kept and
// must be unique.
func numberReads(reads []Read, collection string) error {
	renumber := false
	for i, r := range reads {
		if r.ID < 0 {
			return malformed(collection, i, "negative id %d", r.ID)
		}
		if r.ID == 0 {
			renumber = true
		}
	}

	if renumber {
		for i := range reads {
			reads[i].ID = i + 1
		}
		return nil
	}

	seen := make(map[int]int, len(reads))
	for i, r := range reads {
		if first, ok := seen[r.ID]; ok {
			return malformed(collection, i, "id %d repeats the id of record %d", r.ID, first)
		}
		seen[r.ID] = i
	}
	return nil
}

func geneFromMap(m map[string]interface{}, collection string, i int) (g Gene, err error) {
	for k, v := range m {
		switch k {
		case "seq":
			g.Seq, err = stringField(v, k)
		case "name":
			g.Name, err = stringField(v, k)
		case "gene_type":
			var t string
			t, err = stringField(v, k)
			g.Type = GeneType(t)
		case "epitopes":
			g.Epitopes, err = stringsField(v, k)
		default:
			err = fmt.Errorf("unexpected field %q", k)
		}
		if err != nil {
			return g, malformed(collection, i, "%v", err)
		}
	}

	if _, ok := m["seq"]; !ok {
		return g, malformed(collection, i, "missing field \"seq\"")
	}
	return g, nil
}

func readFromMap(m map[string]interface{}, collection string, i int) (r Read, err error) {
	for k, v := range m {
		switch k {
		case "id":
			r.ID, err = intField(v, k)
		case "seq":
			r.Seq, err = stringField(v, k)
		case "v_gene":
			r.VGene, err = stringField(v, k)
		case "d_gene":
			r.DGene, err = stringField(v, k)
		case "j_gene":
			r.JGene, err = stringField(v, k)
		case "epitopes":
			r.Epitopes, err = stringsField(v, k)
		default:
			err = fmt.Errorf("unexpected field %q", k)
		}
		if err != nil {
			return r, malformed(collection, i, "%v", err)
		}
	}

	if _, ok := m["seq"]; !ok {
		return r, malformed(collection, i, "missing field \"seq\"")
	}
	return r, nil
}

func stringField(v interface{}, name string) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return "", fmt.Errorf("field %q is %T, not a string", name, v)
	}
}

func stringsField(v interface{}, name string) ([]string, error) {
	switch l := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return l, nil
	case []interface{}:
		out := make([]string, 0, len(l))
		for _, e := range l {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("field %q holds %T, not a string", name, e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("field %q is %T, not a list", name, v)
	}
}

func intField(v interface{}, name string) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("field %q is not an integer: %v", name, n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("field %q is not an integer: %v", name, n)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("field %q is %T, not a number", name, v)
	}
}
