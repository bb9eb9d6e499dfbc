package engine

import (
	"fmt"
	"math"
	"sync"
)

// vectorizeConcurrency bounds the per-batch fan-out. Vectorizing one
// item is pure CPU work with no shared state, so a small pool is enough.
const vectorizeConcurrency = 8

// candidate pairs an item with its vector while it moves through the
// pipeline.
type candidate struct {
	item   Item
	vector Vector
}

// marketAverage computes the mean positive price of a batch. Batches
// without any usable price fall back to the configured reference.
func marketAverage(items []Item, fallback float64) float64 {
	var sum float64
	var n int
	for _, it := range items {
		if p := it.Meta().Price; p > 0 {
			sum += p
			n++
		}
	}
	if n == 0 {
		return fallback
	}
	return sum / float64(n)
}

// PriceLevel maps a price onto the budget axis relative to the market
// average, through a four-segment curve:
//
//	below 0.5x average:  linear 0.0 - 0.3
//	0.5x - 1.5x:         linear 0.3 - 0.7
//	1.5x - 3x:           linear 0.7 - 0.9
//	above 3x:            logarithmic approach to 1.0
//
// The flat-ish tail keeps extreme prices from dominating the dimension.
func PriceLevel(price, reference float64) float64 {
	if price <= 0 {
		return 0
	}
	if reference <= 0 {
		return 0.5
	}

	ratio := price / reference
	switch {
	case ratio < 0.5:
		return 0.3 * (ratio / 0.5)
	case ratio <= 1.5:
		return 0.3 + 0.4*(ratio-0.5)
	case ratio <= 3.0:
		return 0.7 + 0.2*(ratio-1.5)/1.5
	default:
		// Asymptotic: never reaches 1.0 for finite input.
		return 1.0 - 0.1/(1.0+math.Log(ratio/3.0))
	}
}

// vectorizeBatch maps every item into the preference space. The market
// average is computed once per call and passed down explicitly; the
// shared config is never mutated. A malformed item goes to the error
// side channel and the batch continues.
func (e *Engine) vectorizeBatch(items []Item) ([]candidate, []ItemError) {
	reference := marketAverage(items, e.cfg.Vectorization.ReferencePrice)

	vectors := make([]Vector, len(items))
	itemErrs := make([]error, len(items))

	var wg sync.WaitGroup
	sem := make(chan struct{}, vectorizeConcurrency)

	for i, it := range items {
		wg.Add(1)
		go func(idx int, item Item) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			vec, err := e.safeVectorize(item, reference)
			if err != nil {
				itemErrs[idx] = err
				return
			}
			if err := vec.Validate(); err != nil {
				itemErrs[idx] = fmt.Errorf("adapter produced invalid vector: %w", err)
				return
			}
			vectors[idx] = vec
		}(i, it)
	}
	wg.Wait()

	out := make([]candidate, 0, len(items))
	var errs []ItemError
	for i, it := range items {
		if itemErrs[i] != nil {
			errs = append(errs, ItemError{ItemID: it.Meta().ID, Stage: StageVectorizing, Err: itemErrs[i]})
			continue
		}
		out = append(out, candidate{item: it, vector: vectors[i]})
	}
	return out, errs
}

// safeVectorize shields the batch from a panicking adapter.
func (e *Engine) safeVectorize(item Item, reference float64) (vec Vector, err error) {
	defer func() {
		if r := recover(); r != nil {
			vec, err = nil, fmt.Errorf("vectorize panic: %v", r)
		}
	}()
	return e.adapter.Vectorize(item, e.cfg.Vectorization, reference)
}
