package sim

import (
	"sort"
)

// CurvePoint is one corner of a step-function curve.
type CurvePoint struct {
	Time  float64
	Value int
}

// SurvivalCurve counts the population not yet well over time. It starts at
// the initial population size and drops by one at every recorded survival
// time. Updates are batched and ordered by time when the curve is read.
type SurvivalCurve struct {
	initial int
	changes map[float64]int
}

// NewSurvivalCurve creates a curve for a population of size initial.
func NewSurvivalCurve(initial int) *SurvivalCurve {
	return &SurvivalCurve{initial: initial, changes: make(map[float64]int)}
}

// record adds delta to the population at time t.
func (c *SurvivalCurve) record(t float64, delta int) {
	c.changes[t] += delta
}

// Initial returns the starting population size.
func (c *SurvivalCurve) Initial() int { return c.initial }

// Points returns the curve as (time, population) corners in increasing
// time, starting with (0, initial).
func (c *SurvivalCurve) Points() []CurvePoint {
	times := make([]float64, 0, len(c.changes))
	for t := range c.changes {
		times = append(times, t)
	}
	sort.Float64s(times)

	points := make([]CurvePoint, 0, len(times)+1)
	points = append(points, CurvePoint{Time: 0, Value: c.initial})
	value := c.initial
	for _, t := range times {
		value += c.changes[t]
		points = append(points, CurvePoint{Time: t, Value: value})
	}
	return points
}

// ValueAt returns the population at time t (right-continuous).
func (c *SurvivalCurve) ValueAt(t float64) int {
	value := c.initial
	for ct, delta := range c.changes {
		if ct <= t {
			value += delta
		}
	}
	return value
}

// CohortOutcomes is the read-only result of simulating a cohort.
type CohortOutcomes struct {
	cohortID      int
	therapy       Therapy
	alpha         float64
	popSize       int
	survivalTimes []float64
	costs         []float64
	utilities     []float64
	curve         *SurvivalCurve

	survivalStat SummaryStat
	costStat     SummaryStat
	utilityStat  SummaryStat
}

// NewCohortOutcomes extracts outcomes from simulated patients. Patients that
// never reached StateWell are left out of the survival statistics but still
// contribute cost and utility.
func NewCohortOutcomes(cohortID int, params *Parameters, patients []*Patient) *CohortOutcomes {
	o := &CohortOutcomes{
		cohortID:  cohortID,
		therapy:   params.Therapy(),
		alpha:     params.Alpha(),
		popSize:   len(patients),
		costs:     make([]float64, 0, len(patients)),
		utilities: make([]float64, 0, len(patients)),
		curve:     NewSurvivalCurve(len(patients)),
	}
	for _, p := range patients {
		if t, ok := p.SurvivalTime(); ok {
			o.survivalTimes = append(o.survivalTimes, t)
			o.curve.record(t, -1)
		}
		o.costs = append(o.costs, p.TotalDiscountedCost())
		o.utilities = append(o.utilities, p.TotalDiscountedUtility())
	}

	o.survivalStat = NewSummaryStat("Patient time to infection free", o.survivalTimes)
	o.costStat = NewSummaryStat("Patient discounted cost", o.costs)
	o.utilityStat = NewSummaryStat("Patient discounted utility", o.utilities)
	return o
}

// CohortID returns the id of the cohort the outcomes came from.
func (o *CohortOutcomes) CohortID() int { return o.cohortID }

// Therapy returns the arm of the cohort.
func (o *CohortOutcomes) Therapy() Therapy { return o.therapy }

// Alpha returns the scenario's significance level.
func (o *CohortOutcomes) Alpha() float64 { return o.alpha }

// PopulationSize returns the number of simulated patients.
func (o *CohortOutcomes) PopulationSize() int { return o.popSize }

// CensoredCount returns how many patients never reached StateWell.
func (o *CohortOutcomes) CensoredCount() int { return o.popSize - len(o.survivalTimes) }

// SurvivalTimes returns defined survival times in patient order.
func (o *CohortOutcomes) SurvivalTimes() []float64 { return cloneFloats(o.survivalTimes) }

// Costs returns every patient's total discounted cost in patient order.
func (o *CohortOutcomes) Costs() []float64 { return cloneFloats(o.costs) }

// Utilities returns every patient's total discounted utility in patient order.
func (o *CohortOutcomes) Utilities() []float64 { return cloneFloats(o.utilities) }

// SurvivalTimeStat summarizes SurvivalTimes.
func (o *CohortOutcomes) SurvivalTimeStat() SummaryStat { return o.survivalStat }

// CostStat summarizes Costs.
func (o *CohortOutcomes) CostStat() SummaryStat { return o.costStat }

// UtilityStat summarizes Utilities.
func (o *CohortOutcomes) UtilityStat() SummaryStat { return o.utilityStat }

// SurvivalCurve returns the population-over-time curve.
func (o *CohortOutcomes) SurvivalCurve() *SurvivalCurve { return o.curve }

func cloneFloats(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
