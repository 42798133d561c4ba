package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/errorck/errorck/internal/astsrc"
	"github.com/errorck/errorck/internal/classify"
	"github.com/errorck/errorck/internal/compdb"
	"github.com/errorck/errorck/internal/config"
)

// tuJob is one translation unit's worth of work: parse it, walk it with a
// fresh classify.Engine, and hand the records back. Adapted from the
// teacher's Job interface, but there is exactly one concrete job kind here -
// every compilation database entry runs the same parse-then-classify step,
// so there is no detector-pool-per-worker machinery to carry over.
type tuJob struct {
	entry compdb.Entry
	reg   *config.Registry
}

// tuResult is one job's outcome: either a batch of classified records, or
// the error that prevented producing any (a read failure, a parse failure,
// or a panic recovered from a malformed translation unit).
type tuResult struct {
	file    string
	records []classify.Record
	err     error
}

// runJob parses and classifies one translation unit, recovering from any
// panic in the tree-sitter frontend or the classifier so that one malformed
// file never aborts the run for its siblings - the batch driver's isolation
// invariant, the Go analogue of the original tool's one-process-per-TU
// fault boundary.
func runJob(readFile func(path string) ([]byte, error), j tuJob) (res tuResult) {
	res.file = j.entry.AbsPath()
	defer func() {
		if r := recover(); r != nil {
			res.err = errRecovered(r)
		}
	}()

	source, err := readFile(res.file)
	if err != nil {
		res.err = err
		return res
	}

	opts := astsrc.Options{Includes: j.entry.Includes, Defines: j.entry.Defines}
	tree, err := astsrc.ParseSourceWithOptions(res.file, source, astsrc.LanguageForPath(res.file), opts)
	if err != nil {
		res.err = err
		return res
	}

	eng := classify.NewEngine(j.reg)
	eng.Run(tree.Root())
	res.records = eng.Records()
	return res
}

// batchStats mirrors the teacher's PoolStats: atomic counters a caller can
// poll while the pool is still draining, used here only for the run's final
// submitted/failed summary line.
type batchStats struct {
	submitted int64
	failed    int64
}

// runBatch fans entries out across workers goroutines, each running tuJob
// jobs from a shared channel, and streams every job's tuResult back to the
// caller through the returned channel. The channel is closed once every
// worker has stopped; each entry produces exactly one result unless ctx is
// cancelled, in which case workers stop taking jobs and the entries not yet
// taken produce none. Adapted from the teacher's
// WorkerPool.Start/worker/Submit/GetResults, specialized to a single,
// fixed-size batch of jobs known up front rather than an open-ended queue.
func runBatch(ctx context.Context, entries []compdb.Entry, reg *config.Registry, workers int, readFile func(path string) ([]byte, error)) (<-chan tuResult, *batchStats) {
	jobs := make(chan tuJob, len(entries))
	for _, e := range entries {
		jobs <- tuJob{entry: e, reg: reg}
	}
	close(jobs)

	results := make(chan tuResult, len(entries))
	stats := &batchStats{}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				atomic.AddInt64(&stats.submitted, 1)
				res := runJob(readFile, job)
				if res.err != nil {
					atomic.AddInt64(&stats.failed, 1)
					glog.Warningf("worker %d: %s: %v", workerID, res.file, res.err)
				}
				results <- res
			}
		}(w)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results, stats
}

type recoveredError struct {
	v interface{}
}

func (e recoveredError) Error() string {
	return fmt.Sprintf("recovered panic while analyzing translation unit: %v", e.v)
}

func errRecovered(v interface{}) error {
	return recoveredError{v: v}
}
