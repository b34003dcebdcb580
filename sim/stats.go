package sim

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a two-sided interval estimate.
type Interval struct {
	Lower float64
	Upper float64
}

// Contains reports whether v lies in [Lower, Upper].
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

// SummaryStat captures the point estimate and dispersion of one outcome list.
type SummaryStat struct {
	Name  string
	Count int
	Mean  float64
	StDev float64 // sample standard deviation (n-1 denominator)
	StErr float64
	Min   float64
	Max   float64

	sorted []float64
}

// NewSummaryStat computes a SummaryStat from raw values.
// Returns a zero-valued stat (apart from Name) for empty input.
func NewSummaryStat(name string, values []float64) SummaryStat {
	s := SummaryStat{Name: name, Count: len(values)}
	if len(values) == 0 {
		return s
	}
	s.sorted = make([]float64, len(values))
	copy(s.sorted, values)
	sort.Float64s(s.sorted)

	s.Min = s.sorted[0]
	s.Max = s.sorted[len(s.sorted)-1]
	if len(values) == 1 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.StDev = stat.MeanStdDev(s.sorted, nil)
	s.StErr = s.StDev / math.Sqrt(float64(s.Count))
	return s
}

// TConfidenceInterval returns the Student-t confidence interval of the mean
// at significance level alpha. With fewer than two observations the
// interval collapses onto the mean.
func (s SummaryStat) TConfidenceInterval(alpha float64) Interval {
	if s.Count < 2 {
		return Interval{Lower: s.Mean, Upper: s.Mean}
	}
	half := TQuantile(1-alpha/2, float64(s.Count-1)) * s.StErr
	return Interval{Lower: s.Mean - half, Upper: s.Mean + half}
}

// PercentileInterval returns the empirical [alpha/2, 1-alpha/2] quantiles
// of the observations, i.e. the range holding 100(1-alpha)% of them.
func (s SummaryStat) PercentileInterval(alpha float64) Interval {
	if s.Count == 0 {
		return Interval{}
	}
	return Interval{
		Lower: stat.Quantile(alpha/2, stat.Empirical, s.sorted, nil),
		Upper: stat.Quantile(1-alpha/2, stat.Empirical, s.sorted, nil),
	}
}

// TQuantile returns the p-quantile of Student's t with nu degrees of freedom.
func TQuantile(p, nu float64) float64 {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}.Quantile(p)
}
