package coverage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/xbh0403/CSE-282-Project/internal/recovery"
	"github.com/xbh0403/CSE-282-Project/internal/vdj"
)

// Report compares the exact and greedy selections for one recovered file and k.
type Report struct {
	BruteForceResult     []string `json:"brute_force_result"`
	GreedyResult         []string `json:"greedy_result"`
	BruteForceNumCovered int      `json:"brute_force_num_covered"`
	GreedyNumRecovered   int      `json:"greedy_num_recovered"`

	// TimeBruteForce and TimeGreedy are wall-clock seconds
	TimeBruteForce float64 `json:"time_brute_force"`
	TimeGreedy     float64 `json:"time_greedy"`

	// TotalReads is every recovered read, genuine and decoy
	TotalReads int `json:"total_reads"`
}

// Evaluate runs both selectors over the index built from r.
func Evaluate(r *recovery.Recovered, k int) (*Report, error) {
	idx := BuildIndex(r)

	start := time.Now()
	exact, err := BruteForce(idx, k)
	if err != nil {
		return nil, err
	}
	exactTime := time.Since(start).Seconds()

	start = time.Now()
	greedy, err := Greedy(idx, k)
	if err != nil {
		return nil, err
	}
	greedyTime := time.Since(start).Seconds()

	return &Report{
		BruteForceResult:     exact.Epitopes,
		GreedyResult:         greedy.Epitopes,
		BruteForceNumCovered: exact.Covered,
		GreedyNumRecovered:   greedy.Covered,
		TimeBruteForce:       exactTime,
		TimeGreedy:           greedyTime,
		TotalReads:           r.Total(),
	}, nil
}

// Job is one selector run: a recovered file, a k and where to write the report.
type Job struct {
	Input  string
	K      int
	Output string
}

// Result is a finished Job. Err is set if the job failed.
type Result struct {
	Job
	Report *Report
	Err    error
}

// Jobs pairs every input with every k. Reports are named after their input,
// ex: "sim_3.json" and k=2 is written to "<outDir>/sim_3_k2_result.json".
func Jobs(inputs []string, ks []int, outDir string) []Job {
	var jobs []Job
	for _, in := range inputs {
		base := filepath.Base(in)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		for _, k := range ks {
			jobs = append(jobs, Job{
				Input:  in,
				K:      k,
				Output: filepath.Join(outDir, fmt.Sprintf("%s_k%d_result.json", base, k)),
			})
		}
	}
	return jobs
}

// run evaluates a single job and writes its report
func (j Job) run() (*Report, error) {
	r, err := recovery.ReadRecovered(j.Input)
	if err != nil {
		return nil, err
	}

	report, err := Evaluate(r, j.K)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %s with k=%d: %w", j.Input, j.K, err)
	}

	if j.Output != "" {
		if err = vdj.WriteJSON(j.Output, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// RunJobs runs jobs on a pool of workers, one whole selector run per job.
// Results are returned in job order whatever order they finish in. A failed
// job doesn't stop the others.
func RunJobs(ctx context.Context, jobs []Job, workers int, progress io.Writer) []Result {
	if workers < 1 {
		workers = 1
	}

	var bar *mpb.Bar
	var p *mpb.Progress
	if progress != nil && len(jobs) > 0 {
		p = mpb.New(mpb.WithWidth(40), mpb.WithOutput(progress))
		bar = p.AddBar(int64(len(jobs)),
			mpb.PrependDecorators(
				decor.Name("coverage jobs: ", decor.WC{W: len("coverage jobs: "), C: decor.DindentRight}),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Elapsed(decor.ET_STYLE_GO),
				decor.OnComplete(decor.Name(""), ". done"),
			),
		)
	}

	type indexed struct {
		i int
		Result
	}
	work := make(chan int, workers*2)
	done := make(chan indexed, workers*2)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range work {
				res := Result{Job: jobs[i]}
				if err := ctx.Err(); err != nil {
					res.Err = err
				} else {
					res.Report, res.Err = jobs[i].run()
				}
				done <- indexed{i, res}
			}
		}()
	}

	go func() {
		for i := range jobs {
			work <- i
		}
		close(work)
		wg.Wait()
		close(done)
	}()

	results := make([]Result, len(jobs))
	for d := range done {
		results[d.i] = d.Result
		if bar != nil {
			bar.Increment()
		}
	}

	if p != nil {
		p.Wait()
	}
	return results
}

// ensureDir makes the report directory if it's missing
func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// EvaluateFiles evaluates every (input, k) pair, writing reports to outDir.
func EvaluateFiles(ctx context.Context, inputs []string, ks []int, outDir string, workers int, progress io.Writer) ([]Result, error) {
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}
	return RunJobs(ctx, Jobs(inputs, ks, outDir), workers, progress), nil
}
