package econ

import (
	"fmt"
	"math"

	"github.com/therapy-sim/therapy-sim/sim"
)

// NMBPoint is the incremental net monetary benefit at one willingness-to-pay value.
type NMBPoint struct {
	WTP      float64
	Mean     float64 // WTP*DeltaUtility - DeltaCost
	Interval sim.Interval
}

// CBAResult is the incremental net monetary benefit of Alt over Base
// across a range of willingness-to-pay values.
type CBAResult struct {
	Base   string
	Alt    string
	Alpha  float64
	Points []NMBPoint
}

// WTPRange returns min, min+step, ... up to and including max.
func WTPRange(min, max, step float64) ([]float64, error) {
	if step <= 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("wtp step must be positive, got %f", step)
	}
	if max < min {
		return nil, fmt.Errorf("wtp max %f is below min %f", max, min)
	}
	n := int(math.Floor((max-min)/step+1e-9)) + 1
	wtps := make([]float64, n)
	for i := range wtps {
		wtps[i] = min + float64(i)*step
	}
	return wtps, nil
}

// CBA evaluates the incremental NMB of alt over base at every wtp.
// Per-patient NMB is wtp*utility - cost; arms are independent samples.
func CBA(base, alt Strategy, wtps []float64, alpha float64) (*CBAResult, error) {
	if err := base.validate(); err != nil {
		return nil, err
	}
	if err := alt.validate(); err != nil {
		return nil, err
	}
	res := &CBAResult{Base: base.Name, Alt: alt.Name, Alpha: alpha, Points: make([]NMBPoint, 0, len(wtps))}
	for _, w := range wtps {
		d := NewDifferenceStat(fmt.Sprintf("NMB at %g", w), netMonetaryBenefit(alt, w), netMonetaryBenefit(base, w))
		res.Points = append(res.Points, NMBPoint{WTP: w, Mean: d.Mean, Interval: d.ConfidenceInterval(alpha)})
	}
	return res, nil
}

// BreakEvenWTP returns the smallest evaluated WTP at which the incremental
// NMB is non-negative. ok is false if it never is.
func (r *CBAResult) BreakEvenWTP() (wtp float64, ok bool) {
	for _, p := range r.Points {
		if p.Mean >= 0 {
			return p.WTP, true
		}
	}
	return 0, false
}

func netMonetaryBenefit(s Strategy, wtp float64) []float64 {
	nmb := make([]float64, len(s.Costs))
	for i := range nmb {
		nmb[i] = wtp*s.Utilities[i] - s.Costs[i]
	}
	return nmb
}
