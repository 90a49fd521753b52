package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/exprcst/pkg/check"
)

// Runner checks many files with a check.Pipeline.
type Runner struct {
	// Pipeline checks a single file.
	Pipeline *check.Pipeline
}

// New creates a Runner with the given pipeline.
func New(pipeline *check.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files and checks them with a bounded worker pool. Outcomes
// are returned in discovery order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan int)
	outcomes := make([]*FileOutcome, len(files))

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				outcome := r.process(ctx, files[idx])
				outcomes[idx] = &outcome
			}
		}()
	}

feed:
	for idx := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- idx:
		}
	}
	close(workCh)
	wg.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) process(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}
	res, err := r.Pipeline.ProcessFile(ctx, path)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Result = res
	}
	return outcome
}
