package kernel

import (
	"runtime"
	"sync"

	"github.com/san-kum/halokit/internal/status"
)

// vectorChunk is the smallest slice of a vector call handed to one goroutine.
const vectorChunk = 64

// Threads reports how many goroutines a vector call may use.
func Threads() int {
	return runtime.GOMAXPROCS(0)
}

// ParallelFor executes fn in parallel over the range [0, n).
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := Threads()
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// vectorize evaluates f over xs[:n] in parallel.
func vectorize(c *Cosmology, fn string, xs []float64, n int, st *int, f func(x float64, st *int) float64) []float64 {
	if !checkLength(c, fn, xs, n, st) {
		return nil
	}
	return parallelEval(n, st, func(i int, st *int) float64 {
		return f(xs[i], st)
	})
}

// parallelEval fills an n-element result with f(i). The first failing
// element of any chunk stops that chunk; the call then reports a failure
// and the output must be discarded.
func parallelEval(n int, st *int, f func(i int, st *int) float64) []float64 {
	out := make([]float64, n)

	var mu sync.Mutex
	ParallelFor(n, vectorChunk, func(start, end int) {
		local := 0
		for i := start; i < end; i++ {
			out[i] = f(i, &local)
			if local != 0 {
				break
			}
		}
		if local != 0 {
			mu.Lock()
			if *st == 0 {
				*st = local
			}
			mu.Unlock()
		}
	})
	return out
}

func checkLength(c *Cosmology, fn string, xs []float64, n int, st *int) bool {
	if n < 0 || len(xs) < n {
		c.raise(st, status.Parameters, "%s: %d values supplied for a count of %d", fn, len(xs), n)
		return false
	}
	return true
}
