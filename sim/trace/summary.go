package trace

import "github.com/therapy-sim/therapy-sim/sim"

// TraceSummary aggregates statistics from a CohortTrace.
type TraceSummary struct {
	Therapy          sim.Therapy
	Patients         int
	TotalTransitions int
	MeanSteps        float64 // transitions per patient
	Counts           [sim.NumHealthStates][sim.NumHealthStates]int
}

// Summarize computes aggregate statistics from a CohortTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(ct *CohortTrace) *TraceSummary {
	summary := &TraceSummary{}
	if ct == nil {
		return summary
	}
	summary.Therapy = ct.Therapy
	summary.Patients = ct.Patients
	summary.TotalTransitions = len(ct.Transitions)
	for _, r := range ct.Transitions {
		summary.Counts[r.From][r.To]++
	}
	if ct.Patients > 0 {
		summary.MeanSteps = float64(summary.TotalTransitions) / float64(ct.Patients)
	}
	return summary
}

// Frequency returns the observed share of transitions out of from that went
// to to, and the number of transitions out of from. ok is false when from
// was never left.
func (s *TraceSummary) Frequency(from, to sim.HealthState) (freq float64, n int, ok bool) {
	for _, c := range s.Counts[from] {
		n += c
	}
	if n == 0 {
		return 0, 0, false
	}
	return float64(s.Counts[from][to]) / float64(n), n, true
}
