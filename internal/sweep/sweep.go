// Package sweep runs many independent axial solves concurrently. Each
// solve is pure given its inputs, so jobs share nothing but read-only data
// and a failed job never aborts the rest: callers inspect per-job outcomes
// and carry on.
package sweep

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/trapmodes/internal/axial"
	"github.com/san-kum/trapmodes/internal/potential"
)

// Job is one solve in a sweep. Exactly one of Pot (analytic) or Z/V
// (sampled) should be set.
type Job struct {
	Name string
	Pot  potential.Potential
	Z, V []float64
	Req  axial.Request
}

// Outcome pairs a job with its result or failure.
type Outcome struct {
	Name   string
	Result *axial.Result
	Err    error
}

func (j Job) run() (*axial.Result, error) {
	if j.Pot != nil {
		return axial.SolveAnalytic(j.Pot, j.Req)
	}
	return axial.SolveSampled(j.Z, j.V, j.Req)
}

// Run executes the jobs over a bounded worker pool and returns outcomes in
// job order. workers <= 0 uses GOMAXPROCS. Context cancellation stops
// dispatch; already-dispatched jobs run to completion and cancelled jobs
// report ctx.Err().
func Run(ctx context.Context, jobs []Job, workers int) []Outcome {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	outcomes := make([]Outcome, len(jobs))
	idx := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				res, err := jobs[i].run()
				outcomes[i] = Outcome{Name: jobs[i].Name, Result: res, Err: err}
			}
		}()
	}

dispatch:
	for i := range jobs {
		select {
		case <-ctx.Done():
			for j := i; j < len(jobs); j++ {
				outcomes[j] = Outcome{Name: jobs[j].Name, Err: ctx.Err()}
			}
			break dispatch
		case idx <- i:
		}
	}
	close(idx)
	wg.Wait()

	return outcomes
}
