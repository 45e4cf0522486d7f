package prioritize

import (
	"runtime"
	"sync"

	"github.com/lcvar/varprio/internal/tsv"
)

// workItem holds a surviving row ready for scoring.
type workItem struct {
	seq int
	rec tsv.Record
}

// workResult holds the evaluation output for a single row.
type workResult struct {
	seq int
	res RowResult
}

// evaluateParallel scores work items using a pool of workers. Results are
// sent to the returned channel in arrival order (not sequence order); use
// orderedCollect to consume them in sequence-number order. If workers is 0,
// runtime.NumCPU() is used.
func evaluateParallel(items <-chan workItem, workers int, eval func(tsv.Record) RowResult) <-chan workResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan workResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				res := eval(item.rec)
				res.Index = item.seq
				results <- workResult{seq: item.seq, res: res}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// orderedCollect calls fn for each result in sequence-number order. It
// buffers out-of-order results in a pending map and emits them as soon as
// the next expected sequence number is available. Blocks until the results
// channel is closed.
func orderedCollect(results <-chan workResult, fn func(workResult)) {
	pending := make(map[int]workResult)
	nextSeq := 0

	for r := range results {
		pending[r.seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			fn(rr)
		}
	}
}
