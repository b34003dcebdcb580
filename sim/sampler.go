package sim

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// EmpiricalSampler draws an index from a discrete probability vector
// using inverse CDF via binary search.
type EmpiricalSampler struct {
	cdf  []float64 // cumulative probabilities in index order, last entry exactly 1.0
	last int       // highest index with positive probability
}

// NewEmpiricalSampler builds a sampler over probs, which must be
// non-negative and sum to 1 within tolerance.
func NewEmpiricalSampler(probs []float64) (*EmpiricalSampler, error) {
	if len(probs) == 0 {
		return nil, errors.New("empirical sampler: empty probability vector")
	}
	cdf := make([]float64, len(probs))
	cumulative := 0.0
	for i, p := range probs {
		if p < 0 || math.IsNaN(p) {
			return nil, fmt.Errorf("empirical sampler: probability %d is %f, want >= 0", i, p)
		}
		cumulative += p
		cdf[i] = cumulative
	}
	if cumulative < 1-rowSumTolerance || cumulative > 1+rowSumTolerance {
		return nil, fmt.Errorf("empirical sampler: probabilities sum to %g, want 1", cumulative)
	}
	// Pin the tail to 1.0 so u in [0,1) can never run past the last
	// entry with positive mass. Trailing zero-probability entries keep the
	// value of their predecessor and stay unreachable.
	last := len(cdf) - 1
	for last > 0 && probs[last] == 0 {
		last--
	}
	for i := last; i < len(cdf); i++ {
		cdf[i] = 1.0
	}
	return &EmpiricalSampler{cdf: cdf, last: last}, nil
}

// Sample returns an index in [0, Len()). Index i is returned iff
// cdf[i-1] <= u < cdf[i], so zero-probability indices are never selected.
func (s *EmpiricalSampler) Sample(src DrawSource) int {
	u := src.Float64()
	idx := sort.Search(len(s.cdf), func(i int) bool { return s.cdf[i] > u })
	if idx > s.last {
		idx = s.last
	}
	return idx
}

// Len returns the number of outcomes.
func (s *EmpiricalSampler) Len() int {
	return len(s.cdf)
}
