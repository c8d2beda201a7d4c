package workerpool

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// PoolLike abstracts over an internally-owned concurrency limit (created
// for, and released at the end of, a single bulk call) and a caller-owned
// *Pool whose current worker count bounds concurrency but which is never
// shut down by the call; the bulk convenience ops tolerate either.
type PoolLike struct {
	pool  *Pool
	limit int
}

// NewPoolLike configures a bulk op to cap concurrency at threads, for the
// duration of the call only; no Pool is created or shut down.
func NewPoolLike(threads int) PoolLike {
	return PoolLike{limit: threads}
}

// ExistingPool configures a bulk op to cap concurrency at p's current
// worker count; p is used only to read that count, never started or shut
// down by the op.
func ExistingPool(p *Pool) PoolLike {
	return PoolLike{pool: p}
}

func (pl PoolLike) limitFor(itemCount int) int {
	limit := pl.limit
	if pl.pool != nil {
		limit = pl.pool.Size()
	}
	if limit <= 0 || limit > itemCount {
		limit = itemCount
	}
	if limit <= 0 {
		limit = 1
	}
	return limit
}

// SeqWork submits every item in items to pl, running fn(item) with at most
// pl's concurrency limit in flight, and blocks until every call has
// completed, returning the first error encountered (if any).
func SeqWork[T any](pl PoolLike, items []T, fn func(T) error) error {
	var g errgroup.Group
	g.SetLimit(pl.limitFor(len(items)))
	for _, item := range items {
		item := item
		g.Go(func() error { return fn(item) })
	}
	return g.Wait()
}

// MapWork runs fn(item) for every item in items, bounded by pl's
// concurrency limit, collecting results in input order. It returns the
// first error encountered, if any.
func MapWork[T, R any](pl PoolLike, items []T, fn func(T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	var g errgroup.Group
	g.SetLimit(pl.limitFor(len(items)))
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			r, err := fn(item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FilterWork runs pred(item) for every item in items, bounded by pl's
// concurrency limit, returning the subset for which pred returned true,
// preserving input order.
func FilterWork[T any](pl PoolLike, items []T, pred func(T) (bool, error)) ([]T, error) {
	keep := make([]bool, len(items))
	var g errgroup.Group
	g.SetLimit(pl.limitFor(len(items)))
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			ok, err := pred(item)
			if err != nil {
				return err
			}
			keep[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]T, 0, len(items))
	for i, item := range items {
		if keep[i] {
			results = append(results, item)
		}
	}
	return results, nil
}

// DoWork fires fn(item) for every item in items, bounded by pl's
// concurrency limit, and blocks until all have completed (a latch
// counting completions), discarding results but returning the first
// error.
func DoWork[T any](pl PoolLike, items []T, fn func(T) error) error {
	return SeqWork(pl, items, fn)
}

// ReduceWork folds every item in items into acc via combine(acc, item),
// bounded by pl's concurrency limit, with each combine call made under a
// mutex (a thread-safe accumulator applied by workers).
func ReduceWork[T, A any](pl PoolLike, items []T, acc A, combine func(A, T) (A, error)) (A, error) {
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(pl.limitFor(len(items)))
	for _, item := range items {
		item := item
		g.Go(func() error {
			mu.Lock()
			defer mu.Unlock()
			next, err := combine(acc, item)
			if err != nil {
				return err
			}
			acc = next
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return acc, err
	}
	return acc, nil
}

