// Package trace records the state transitions sampled for a cohort and
// summarizes them as empirical transition frequencies.
package trace

import (
	"github.com/therapy-sim/therapy-sim/sim"
)

// TraceLevel controls the verbosity of transition tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTransitions captures every sampled transition.
	TraceLevelTransitions TraceLevel = "transitions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelTransitions: true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TransitionRecord is one sampled move of one patient.
type TransitionRecord struct {
	PatientID sim.PatientID
	K         int
	From      sim.HealthState
	To        sim.HealthState
}

// CohortTrace collects transition records for one therapy arm.
type CohortTrace struct {
	Therapy     sim.Therapy
	Level       TraceLevel
	Patients    int
	Transitions []TransitionRecord
}

// NewCohortTrace creates a CohortTrace ready for recording.
func NewCohortTrace(therapy sim.Therapy, level TraceLevel) *CohortTrace {
	return &CohortTrace{
		Therapy:     therapy,
		Level:       level,
		Transitions: make([]TransitionRecord, 0),
	}
}

// Enabled reports whether records are kept.
func (ct *CohortTrace) Enabled() bool {
	return ct != nil && ct.Level == TraceLevelTransitions
}

// RecordTransition appends a transition record.
func (ct *CohortTrace) RecordTransition(record TransitionRecord) {
	if !ct.Enabled() {
		return
	}
	ct.Transitions = append(ct.Transitions, record)
}

// RecordPatient appends every step of a simulated patient's trajectory.
func (ct *CohortTrace) RecordPatient(p *sim.Patient) {
	if !ct.Enabled() {
		return
	}
	ct.Patients++
	for _, s := range p.Trajectory() {
		ct.RecordTransition(TransitionRecord{PatientID: p.ID(), K: s.K, From: s.From, To: s.To})
	}
}
