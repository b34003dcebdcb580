package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therapy-sim/therapy-sim/sim"
)

func TestIsValidTraceLevel(t *testing.T) {
	assert.True(t, IsValidTraceLevel("none"))
	assert.True(t, IsValidTraceLevel("transitions"))
	assert.True(t, IsValidTraceLevel(""))
	assert.False(t, IsValidTraceLevel("decisions"))
}

func TestCohortTrace_LevelNoneRecordsNothing(t *testing.T) {
	// GIVEN a disabled trace
	ct := NewCohortTrace(sim.TherapyStandard, TraceLevelNone)

	// WHEN a transition is recorded
	ct.RecordTransition(TransitionRecord{PatientID: 1, K: 0, From: sim.StateSick, To: sim.StateWell})

	// THEN it is dropped
	assert.Empty(t, ct.Transitions)
	assert.False(t, ct.Enabled())
}

func TestCohortTrace_RecordPatient(t *testing.T) {
	// GIVEN a simulated patient
	params, err := sim.NewParameters(sim.ScenarioED(), sim.TherapyStandard)
	require.NoError(t, err)
	p := sim.NewPatient(7, params)
	require.NoError(t, p.Simulate())

	// WHEN its trajectory is recorded
	ct := NewCohortTrace(sim.TherapyStandard, TraceLevelTransitions)
	ct.RecordPatient(p)

	// THEN every step appears in order and the last one reaches WELL
	traj := p.Trajectory()
	require.Len(t, ct.Transitions, len(traj))
	for i, s := range traj {
		assert.Equal(t, TransitionRecord{PatientID: 7, K: s.K, From: s.From, To: s.To}, ct.Transitions[i])
	}
	assert.Equal(t, 1, ct.Patients)
	if _, ok := p.SurvivalTime(); ok {
		assert.Equal(t, sim.StateWell, ct.Transitions[len(ct.Transitions)-1].To)
	}
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	summary := Summarize(NewCohortTrace(sim.TherapyCombination, TraceLevelTransitions))

	assert.Equal(t, 0, summary.TotalTransitions)
	assert.Equal(t, 0.0, summary.MeanSteps)
	_, _, ok := summary.Frequency(sim.StateSick, sim.StateWell)
	assert.False(t, ok)

	assert.Equal(t, 0, Summarize(nil).TotalTransitions)
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN two patients with known transitions
	ct := NewCohortTrace(sim.TherapyStandard, TraceLevelTransitions)
	ct.Patients = 2
	ct.RecordTransition(TransitionRecord{PatientID: 0, K: 0, From: sim.StateSick, To: sim.StateOnTreatment})
	ct.RecordTransition(TransitionRecord{PatientID: 0, K: 1, From: sim.StateOnTreatment, To: sim.StateWell})
	ct.RecordTransition(TransitionRecord{PatientID: 1, K: 0, From: sim.StateSick, To: sim.StateWell})

	// WHEN summarized
	summary := Summarize(ct)

	// THEN counts and frequencies match
	assert.Equal(t, 3, summary.TotalTransitions)
	assert.Equal(t, 1.5, summary.MeanSteps)
	assert.Equal(t, 1, summary.Counts[sim.StateSick][sim.StateWell])
	freq, n, ok := summary.Frequency(sim.StateSick, sim.StateWell)
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0.5, freq)
}

func TestSummarize_FrequenciesApproachMatrix(t *testing.T) {
	// GIVEN a traced cohort of 2000 standard patients
	params, err := sim.NewParameters(sim.ScenarioED(), sim.TherapyStandard)
	require.NoError(t, err)
	c, err := sim.NewCohort(1, 2000, params)
	require.NoError(t, err)
	_, err = c.Simulate(t.Context(), 4)
	require.NoError(t, err)
	ct := NewCohortTrace(sim.TherapyStandard, TraceLevelTransitions)
	for _, p := range c.Patients() {
		ct.RecordPatient(p)
	}

	// THEN observed SICK exits match the configured row
	summary := Summarize(ct)
	row := params.TransitionRow(sim.StateSick)
	for to := sim.HealthState(0); to < sim.NumHealthStates; to++ {
		freq, n, ok := summary.Frequency(sim.StateSick, to)
		require.True(t, ok)
		assert.Equal(t, 2000, n)
		assert.InDelta(t, row[to], freq, 0.04, "SICK -> %s", to)
	}
}
