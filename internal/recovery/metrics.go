package recovery

// Metrics measure how well a threshold separates genuine reads from decoys.
type Metrics struct {
	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`

	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Evaluate scores a recovery run against the number of genuine (overlap)
// and decoy (random) reads that went into it. Undefined ratios are 0.
func Evaluate(r *Recovered, numOverlap, numRandom int) Metrics {
	m := Metrics{
		TruePositives:  len(r.HighScoreOverlap),
		FalsePositives: len(r.HighScoreRandom),
	}
	m.TrueNegatives = numRandom - m.FalsePositives
	m.FalseNegatives = numOverlap - m.TruePositives

	m.Precision = ratio(m.TruePositives, m.TruePositives+m.FalsePositives)
	m.Recall = ratio(m.TruePositives, m.TruePositives+m.FalseNegatives)
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	return m
}

func ratio(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}
