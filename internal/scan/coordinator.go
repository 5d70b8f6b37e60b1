// Package scan fans candidate files out to a bounded worker pool running the
// keyword matcher and collects the matches.
package scan

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ataylor/dirsnap/internal/matcher"
	"github.com/ataylor/dirsnap/internal/progress"
	"github.com/ataylor/dirsnap/internal/walker"
)

// Headroom added to the CPU count when the caller does not bound the pool.
// The work is I/O-heavy, so a little oversubscription helps.
const workerHeadroom = 2

// Coordinator runs the matcher over candidate files concurrently.
type Coordinator struct {
	// Workers bounds the pool; <= 0 means available parallelism plus
	// headroom.
	Workers  int
	Keywords []string
	Opts     matcher.Options
	Reporter progress.Reporter
	Activity *Activity
}

// Summary accounts for every submitted candidate. Matched + Unmatched always
// equals Submitted: a worker failure contributes an unmatched result, never
// a silent drop.
type Summary struct {
	Submitted int
	Matched   int
	Unmatched int
}

type result struct {
	cand    walker.Candidate
	matched bool
}

// Run scans all candidates and returns the matched subset, unordered as
// produced by the workers. Callers sort before any output-facing use.
func (c *Coordinator) Run(ctx context.Context, candidates []walker.Candidate) ([]walker.Candidate, Summary) {
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() + workerHeadroom
	}
	reporter := c.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	slog.Debug("Starting concurrent scan.",
		"candidates", len(candidates), "workers", workers)
	reporter.Start(len(candidates), "Scanning")

	// Worker identities come from a fixed pool so the activity map stays
	// bounded by the worker count.
	ids := make(chan int, workers)
	for i := 0; i < workers; i++ {
		ids <- i
	}

	results := make(chan result, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, cand := range candidates {
		cand := cand
		g.Go(func() error {
			id := <-ids
			defer func() { ids <- id }()

			if c.Activity != nil {
				c.Activity.Set(id, cand.RelPath)
				defer c.Activity.Clear(id)
			}

			matched := false
			select {
			case <-ctx.Done():
				// Still accounted for, just never scanned.
			default:
				matched = matcher.Match(cand.AbsPath, c.Keywords, c.Opts)
			}
			results <- result{cand: cand, matched: matched}
			// The display tracks whichever file the activity map reports as
			// in flight, not necessarily the one just finished.
			if c.Activity != nil {
				if current, ok := c.Activity.Current(); ok {
					reporter.SetDescription("Scanning " + current)
				}
			}
			reporter.Advance(1)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; per-file failures are no-matches
	close(results)
	reporter.Finish()

	summary := Summary{Submitted: len(candidates)}
	var matched []walker.Candidate
	for r := range results {
		if r.matched {
			matched = append(matched, r.cand)
			summary.Matched++
		} else {
			summary.Unmatched++
		}
	}
	slog.Debug("Concurrent scan finished.",
		"matched", summary.Matched, "unmatched", summary.Unmatched)
	return matched, summary
}
