// Package batch drives pair processing in memory-bounded chunks, optionally
// fanning work out over a fixed worker pool.
package batch

import (
	"context"
	"runtime"

	"github.com/speechforge/denoiseprep/internal/processor"
)

// ChunkSize is how many pairs are processed and written before their
// results are released. It bounds peak memory regardless of corpus size.
const ChunkSize = 100

// DebugPairLimit caps the corpus in debug runs so a full pipeline pass
// stays quick.
const DebugPairLimit = 100

// Workers returns the pool size for parallel runs. A few cores are left
// free so the machine stays responsive while a large corpus churns.
func Workers() int {
	n := runtime.NumCPU() - 3
	if n < 1 {
		return 1
	}
	return n
}

// Progress describes one completed pair for progress reporting.
type Progress struct {
	Pair     processor.FilePair
	Index    int // position within the full run
	Total    int
	Segments int
	Written  int
	Skipped  int
}

// Orchestrator processes a paired corpus chunk by chunk. Each chunk is
// fully processed, written and released before the next begins. Within a
// chunk, pairs run either sequentially or on a worker pool; writes always
// happen on the orchestrator goroutine, in submission order.
type Orchestrator struct {
	Config   processor.Config
	Parallel bool
	Debug    bool

	// Write persists one processed pair. Required.
	Write func(*processor.PairResult) (written, skipped int, err error)

	// Process computes one pair. Defaults to processor.ProcessPair.
	Process func(processor.FilePair, processor.Config) (*processor.PairResult, error)

	// OnProgress, when set, is called after each pair is written.
	OnProgress func(Progress)
}

type result struct {
	res *processor.PairResult
	err error
}

func (o *Orchestrator) processPair(pair processor.FilePair) (*processor.PairResult, error) {
	if o.Process != nil {
		return o.Process(pair, o.Config)
	}
	return processor.ProcessPair(pair, o.Config)
}

// Run processes every pair. The first failing pair, in submission order,
// aborts the run; pairs already written stay on disk. In debug mode the
// corpus is truncated to DebugPairLimit pairs.
func (o *Orchestrator) Run(ctx context.Context, pairs []processor.FilePair) error {
	if o.Debug && len(pairs) > DebugPairLimit {
		pairs = pairs[:DebugPairLimit]
	}
	total := len(pairs)

	for start := 0; start < total; start += ChunkSize {
		end := start + ChunkSize
		if end > total {
			end = total
		}
		chunk := pairs[start:end]

		var results []result
		if o.Parallel {
			results = o.runParallel(ctx, chunk)
		} else {
			results = o.runSequential(ctx, chunk)
		}

		for i, r := range results {
			if r.err != nil {
				return r.err
			}
			written, skipped, err := o.Write(r.res)
			if err != nil {
				return err
			}
			if o.OnProgress != nil {
				o.OnProgress(Progress{
					Pair:     chunk[i],
					Index:    start + i,
					Total:    total,
					Segments: r.res.Segments(),
					Written:  written,
					Skipped:  skipped,
				})
			}
			results[i].res = nil
		}
	}
	return nil
}

func (o *Orchestrator) runSequential(ctx context.Context, chunk []processor.FilePair) []result {
	results := make([]result, len(chunk))
	for i, pair := range chunk {
		if err := ctx.Err(); err != nil {
			results[i].err = err
			return results
		}
		res, err := o.processPair(pair)
		results[i] = result{res: res, err: err}
		if err != nil {
			return results
		}
	}
	return results
}

func (o *Orchestrator) runParallel(ctx context.Context, chunk []processor.FilePair) []result {
	workers := Workers()
	if workers > len(chunk) {
		workers = len(chunk)
	}

	results := make([]result, len(chunk))
	jobs := make(chan int)
	done := make(chan struct{})

	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i].err = err
					done <- struct{}{}
					continue
				}
				res, err := o.processPair(chunk[i])
				results[i] = result{res: res, err: err}
				done <- struct{}{}
			}
		}()
	}

	go func() {
		for i := range chunk {
			jobs <- i
		}
		close(jobs)
	}()

	for range chunk {
		<-done
	}
	return results
}
