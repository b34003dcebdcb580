// Package sim provides the individual-patient Markov microsimulation engine
// that compares combination therapy with standard antibiotics.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - patient.go: the per-patient step loop (SICK until WELL or the horizon)
//   - monitor.go: state bookkeeping, survival time, and half-cycle-corrected
//     cost/utility accrual
//   - cohort.go: fan-out over independent patients and the join before
//     outcome extraction
//
// # Architecture
//
// Data flows one way:
//
//	Scenario -> Parameters -> Patient (EmpiricalSampler + PatientRNG)
//	         -> StateMonitor/CostUtilityMonitor -> Cohort -> CohortOutcomes
//
// Scenarios come from YAML (LoadScenario) or the built-in presets
// (BuiltinScenario). Downstream consumers live in sub-packages:
//   - sim/econ/: incremental outcomes, cost-effectiveness and cost-benefit analysis
//   - sim/report/: printed summaries and PNG plots
//   - sim/trace/: sampled transitions and their observed frequencies
//
// # Determinism
//
// Every patient owns a PatientRNG seeded with its PatientID, which is
// derived from the cohort id and the patient's index. A cohort therefore
// produces bit-identical outcomes whatever the worker count.
package sim
