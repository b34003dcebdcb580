// Package econ compares two simulated therapy arms: incremental outcomes,
// cost-effectiveness (ICER) and cost-benefit (net monetary benefit).
//
// Everything here consumes read-only sim.CohortOutcomes; nothing feeds
// back into the simulation.
package econ

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/therapy-sim/therapy-sim/sim"
)

// DifferenceStat summarizes mean(x) - mean(y) for two independent samples.
type DifferenceStat struct {
	Name  string
	Mean  float64 // mean(x) - mean(y)
	StErr float64 // sqrt(var(x)/nx + var(y)/ny)
	DF    float64 // Welch-Satterthwaite degrees of freedom
	NX    int
	NY    int
}

// NewDifferenceStat computes the difference of means of x and y.
// Either sample may be empty, in which case the stat carries no dispersion.
func NewDifferenceStat(name string, x, y []float64) DifferenceStat {
	d := DifferenceStat{Name: name, NX: len(x), NY: len(y)}
	if len(x) == 0 || len(y) == 0 {
		return d
	}
	mx, vx := meanVariance(x)
	my, vy := meanVariance(y)
	d.Mean = mx - my

	ax := vx / float64(len(x))
	ay := vy / float64(len(y))
	d.StErr = math.Sqrt(ax + ay)
	if len(x) > 1 && len(y) > 1 && ax+ay > 0 {
		d.DF = (ax + ay) * (ax + ay) / (ax*ax/float64(len(x)-1) + ay*ay/float64(len(y)-1))
	}
	return d
}

// ConfidenceInterval returns the Welch t interval of the difference at
// significance level alpha. Without dispersion it collapses onto the mean.
func (d DifferenceStat) ConfidenceInterval(alpha float64) sim.Interval {
	if d.DF <= 0 || d.StErr == 0 {
		return sim.Interval{Lower: d.Mean, Upper: d.Mean}
	}
	half := sim.TQuantile(1-alpha/2, d.DF) * d.StErr
	return sim.Interval{Lower: d.Mean - half, Upper: d.Mean + half}
}

func meanVariance(x []float64) (mean, variance float64) {
	if len(x) == 1 {
		return x[0], 0
	}
	return stat.MeanVariance(x, nil)
}

// Comparison holds the incremental outcomes of alt relative to base.
type Comparison struct {
	Base         sim.Therapy
	Alt          sim.Therapy
	Alpha        float64
	SurvivalTime DifferenceStat
	Cost         DifferenceStat
	Utility      DifferenceStat
}

// Compare computes alt - base for survival time, discounted cost and
// discounted utility.
func Compare(base, alt *sim.CohortOutcomes, alpha float64) Comparison {
	return Comparison{
		Base:         base.Therapy(),
		Alt:          alt.Therapy(),
		Alpha:        alpha,
		SurvivalTime: NewDifferenceStat("Increase in time to infection free", alt.SurvivalTimes(), base.SurvivalTimes()),
		Cost:         NewDifferenceStat("Increase in discounted cost", alt.Costs(), base.Costs()),
		Utility:      NewDifferenceStat("Increase in discounted utility", alt.Utilities(), base.Utilities()),
	}
}
