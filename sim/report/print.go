// Package report renders cohort outcomes and economic comparisons as text
// tables and PNG charts.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/shopspring/decimal"

	"github.com/therapy-sim/therapy-sim/sim"
	"github.com/therapy-sim/therapy-sim/sim/econ"
	"github.com/therapy-sim/therapy-sim/sim/trace"
)

// money formats v with two decimals. Non-finite values are printed as-is.
func money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%v", v)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func moneyInterval(i sim.Interval) string {
	return fmt.Sprintf("(%s, %s)", money(i.Lower), money(i.Upper))
}

func plainInterval(i sim.Interval) string {
	return fmt.Sprintf("(%.2f, %.2f)", i.Lower, i.Upper)
}

func confidence(alpha float64) string {
	return fmt.Sprintf("%g%%", math.Round((1-alpha)*1000)/10)
}

// PrintOutcomes writes the mean and confidence interval of survival time,
// discounted cost and discounted utility of one cohort.
func PrintOutcomes(w io.Writer, label string, o *sim.CohortOutcomes) {
	alpha := o.Alpha()
	ci := confidence(alpha)
	surv, cost, util := o.SurvivalTimeStat(), o.CostStat(), o.UtilityStat()

	fmt.Fprintf(w, "=== %s ===\n", label)
	fmt.Fprintf(w, "Patients                         : %d\n", o.PopulationSize())
	if n := o.CensoredCount(); n > 0 {
		fmt.Fprintf(w, "Not infection free at horizon    : %d\n", n)
	}
	fmt.Fprintf(w, "Mean time to infection free, %s CI : %.2f %s\n",
		ci, surv.Mean, plainInterval(surv.TConfidenceInterval(alpha)))
	fmt.Fprintf(w, "Mean discounted cost, %s CI       : %s %s\n",
		ci, money(cost.Mean), moneyInterval(cost.TConfidenceInterval(alpha)))
	u := util.TConfidenceInterval(alpha)
	fmt.Fprintf(w, "Mean discounted utility, %s CI    : %.4f (%.4f, %.4f)\n", ci, util.Mean, u.Lower, u.Upper)
	fmt.Fprintln(w)
}

// PrintComparative writes the incremental outcomes of cmp.Alt over cmp.Base.
func PrintComparative(w io.Writer, cmp econ.Comparison) {
	ci := confidence(cmp.Alpha)
	fmt.Fprintf(w, "=== %s vs %s ===\n", cmp.Alt, cmp.Base)
	fmt.Fprintf(w, "%s, %s CI : %.2f %s\n",
		cmp.SurvivalTime.Name, ci, cmp.SurvivalTime.Mean, plainInterval(cmp.SurvivalTime.ConfidenceInterval(cmp.Alpha)))
	fmt.Fprintf(w, "%s, %s CI : %s %s\n",
		cmp.Cost.Name, ci, money(cmp.Cost.Mean), moneyInterval(cmp.Cost.ConfidenceInterval(cmp.Alpha)))
	u := cmp.Utility.ConfidenceInterval(cmp.Alpha)
	fmt.Fprintf(w, "%s, %s CI : %.4f (%.4f, %.4f)\n",
		cmp.Utility.Name, ci, cmp.Utility.Mean, u.Lower, u.Upper)
	fmt.Fprintln(w)
}

// PrintCEA writes the cost-effectiveness table.
func PrintCEA(w io.Writer, r *econ.CEAResult, alpha float64) {
	fmt.Fprintf(w, "=== Cost-effectiveness: %s vs %s ===\n", r.Alt, r.Base)
	fmt.Fprintf(w, "Incremental cost    : %s\n", money(r.DeltaCost))
	fmt.Fprintf(w, "Incremental utility : %.4f\n", r.DeltaUtility)
	switch r.Outcome {
	case econ.OutcomeTradeoff:
		fmt.Fprintf(w, "ICER                : %s per unit utility\n", money(r.ICER))
		if r.Resamples > 0 {
			fmt.Fprintf(w, "ICER %s interval  : %s (%d resamples)\n",
				confidence(alpha), moneyInterval(r.ICERInterval), r.Resamples)
		}
	default:
		fmt.Fprintf(w, "Result              : %s is %s\n", r.Alt, r.Outcome)
	}
	fmt.Fprintln(w)
}

// PrintCBA writes the incremental net monetary benefit at every evaluated
// willingness-to-pay value.
func PrintCBA(w io.Writer, r *econ.CBAResult) {
	fmt.Fprintf(w, "=== Net monetary benefit: %s vs %s ===\n", r.Alt, r.Base)
	fmt.Fprintf(w, "%12s %14s %32s\n", "WTP", "NMB", confidence(r.Alpha)+" CI")
	for _, p := range r.Points {
		fmt.Fprintf(w, "%12s %14s %32s\n", money(p.WTP), money(p.Mean), moneyInterval(p.Interval))
	}
	if wtp, ok := r.BreakEvenWTP(); ok {
		fmt.Fprintf(w, "%s breaks even at WTP %s\n", r.Alt, money(wtp))
	} else {
		fmt.Fprintf(w, "%s does not break even in the evaluated WTP range\n", r.Alt)
	}
	fmt.Fprintln(w)
}

// PrintTraceSummary writes observed transition frequencies next to the
// configured probabilities of params.
func PrintTraceSummary(w io.Writer, s *trace.TraceSummary, params *sim.Parameters) {
	fmt.Fprintf(w, "=== Transition trace: %s ===\n", s.Therapy)
	fmt.Fprintf(w, "Patients traced     : %d\n", s.Patients)
	fmt.Fprintf(w, "Transitions         : %d (%.2f per patient)\n", s.TotalTransitions, s.MeanSteps)
	fmt.Fprintf(w, "%-14s %-14s %8s %10s %10s\n", "from", "to", "count", "observed", "expected")
	for from := sim.HealthState(0); from < sim.NumHealthStates; from++ {
		row := params.TransitionRow(from)
		for to := sim.HealthState(0); to < sim.NumHealthStates; to++ {
			freq, _, ok := s.Frequency(from, to)
			if !ok || s.Counts[from][to] == 0 {
				continue
			}
			fmt.Fprintf(w, "%-14s %-14s %8d %10.4f %10.4f\n", from, to, s.Counts[from][to], freq, row[to])
		}
	}
	fmt.Fprintln(w)
}
