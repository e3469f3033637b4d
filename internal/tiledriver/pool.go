package tiledriver

import (
	"context"
	"sync"

	"github.com/openwebglobe/terrain/internal/tilestore"
)

// RunWorkerPool drains queue in batches of amount, dispatching one
// goroutine-pool worker per tile (spec.md §5 "the driver dispatches
// one tile per task"). Each worker owns process for the duration of
// one tile; the pool itself holds no triangulation state. It stops at
// the first queue-fetch error or when ctx is canceled; per-tile
// process errors are collected and returned together without aborting
// sibling tiles, per spec.md §7 item 5 ("per-tile errors never poison
// neighbor tiles").
func RunWorkerPool(ctx context.Context, numThreads, amount int, queue *tilestore.Queue, process func(tilestore.JobRecord) error) ([]TileError, error) {
	if numThreads < 1 {
		numThreads = 1
	}

	jobs := make(chan tilestore.JobRecord)
	var errs []TileError
	var errsMu sync.Mutex

	var workers sync.WaitGroup
	for i := 0; i < numThreads; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for job := range jobs {
				if err := process(job); err != nil {
					errsMu.Lock()
					errs = append(errs, TileError{Job: job, Err: err})
					errsMu.Unlock()
				}
			}
		}()
	}

	var fetchErr error
feed:
	for {
		select {
		case <-ctx.Done():
			fetchErr = ctx.Err()
			break feed
		default:
		}

		batch, err := queue.Fetch(amount)
		if err != nil {
			fetchErr = err
			break feed
		}
		if len(batch) == 0 {
			break feed
		}
		for _, job := range batch {
			select {
			case jobs <- job:
			case <-ctx.Done():
				fetchErr = ctx.Err()
				break feed
			}
		}
	}
	close(jobs)
	workers.Wait()

	return errs, fetchErr
}

// TileError records a single tile's processing failure within a
// worker-pool run.
type TileError struct {
	Job tilestore.JobRecord
	Err error
}

func (e TileError) Error() string {
	return e.Err.Error()
}
