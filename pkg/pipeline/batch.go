package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chartkit/pkg/chart"
)

// Job is one entry of a batch compilation.
type Job struct {
	Name string
	Spec *chart.Spec
}

// Result is the outcome of one [Job]. Err is per job; one failing spec does
// not abort the batch.
type Result struct {
	Name     string
	Artifact Artifact
	Err      error
}

// CompileAll compiles jobs concurrently, at most limit at a time (GOMAXPROCS
// when limit <= 0). Results are returned in job order. The returned error is
// non-nil only when ctx is cancelled.
func (r *Runner) CompileAll(ctx context.Context, jobs []Job, opts Options, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			art, err := r.Execute(ctx, job.Spec, opts)
			results[i] = Result{Name: job.Name, Artifact: art, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
