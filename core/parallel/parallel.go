// Package parallel splits index ranges across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides [0, items) into one contiguous range per CPU core and
// calls fn for each range concurrently. It returns once every call finished.
func Parallelize(items int, fn func(start, end int)) {
	ranges := split(items, runtime.NumCPU())
	var wg sync.WaitGroup
	for _, r := range ranges {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(r[0], r[1])
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// items does not exceed threshold, and behaves like Parallelize otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}

// Reduce computes fn over ranges of [0, items) in parallel, as
// ParallelizeWithThreshold does, and folds the partial results with merge in
// range order.
func Reduce[T any](items, threshold int, fn func(start, end int) T, merge func(acc, part T) T) T {
	var zero T
	if items <= 0 {
		return zero
	}
	if items <= threshold {
		return fn(0, items)
	}

	ranges := split(items, runtime.NumCPU())
	parts := make([]T, len(ranges))
	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(i, s, e int) {
			defer wg.Done()
			parts[i] = fn(s, e)
		}(i, r[0], r[1])
	}
	wg.Wait()

	acc := parts[0]
	for _, p := range parts[1:] {
		acc = merge(acc, p)
	}
	return acc
}

// split returns at most workers non-empty [start, end) ranges covering
// [0, items).
func split(items, workers int) [][2]int {
	if items <= 0 {
		return nil
	}
	if workers > items {
		workers = items
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (items + workers - 1) / workers
	ranges := make([][2]int, 0, workers)
	for start := 0; start < items; start += chunk {
		end := start + chunk
		if end > items {
			end = items
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}
