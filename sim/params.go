package sim

import (
	"fmt"
)

// TransitionMatrix is indexed [from][to] and is row-stochastic.
type TransitionMatrix [NumHealthStates][NumHealthStates]float64

// StateValues holds one annual amount (cost or utility) per health state.
type StateValues [NumHealthStates]float64

// Parameters resolves a scenario and a therapy into the immutable lookups a
// patient needs. One Parameters value is shared read-only by every patient
// of a cohort.
type Parameters struct {
	scenario    string
	therapy     Therapy
	horizon     float64
	deltaT      float64
	adjDiscount float64
	alpha       float64
	matrix      TransitionMatrix
	costs       StateValues
	utilities   StateValues
	samplers    [NumHealthStates]*EmpiricalSampler
}

// NewParameters validates sc and selects the tables of the given therapy.
// A malformed scenario is reported here so no simulation ever starts with it.
func NewParameters(sc *Scenario, therapy Therapy) (*Parameters, error) {
	if sc == nil {
		return nil, fmt.Errorf("nil scenario")
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", sc.Name, err)
	}
	arm, err := sc.Arm(therapy)
	if err != nil {
		return nil, err
	}

	p := &Parameters{
		scenario:    sc.Name,
		therapy:     therapy,
		horizon:     sc.Horizon,
		deltaT:      sc.DeltaT,
		adjDiscount: sc.Discount * sc.DeltaT,
		alpha:       sc.Alpha,
	}
	for i := 0; i < NumHealthStates; i++ {
		copy(p.matrix[i][:], arm.TransitionMatrix[i])
		p.costs[i] = arm.StateCost[i]
		p.utilities[i] = sc.StateUtility[i]
		sampler, err := NewEmpiricalSampler(p.matrix[i][:])
		if err != nil {
			return nil, fmt.Errorf("therapies.%s.transition_matrix[%d]: %w", therapy, i, err)
		}
		p.samplers[i] = sampler
	}
	return p, nil
}

// InitialState is the state every patient starts in.
func (p *Parameters) InitialState() HealthState { return StateSick }

// Therapy returns the arm these parameters describe.
func (p *Parameters) Therapy() Therapy { return p.therapy }

// ScenarioName returns the name of the source scenario.
func (p *Parameters) ScenarioName() string { return p.scenario }

// DeltaT is the time-step length in years.
func (p *Parameters) DeltaT() float64 { return p.deltaT }

// Horizon is the simulation length in years.
func (p *Parameters) Horizon() float64 { return p.horizon }

// AdjDiscountRate is the annual discount rate scaled to one time step.
func (p *Parameters) AdjDiscountRate() float64 { return p.adjDiscount }

// Alpha is the significance level for confidence intervals.
func (p *Parameters) Alpha() float64 { return p.alpha }

// TransitionRow returns a copy of the outgoing probabilities of state.
// The row of StateWell is the absorbing row; the simulation never asks for it.
func (p *Parameters) TransitionRow(state HealthState) []float64 {
	row := make([]float64, NumHealthStates)
	copy(row, p.matrix[state][:])
	return row
}

// AnnualStateCost returns the yearly cost of being in state under this therapy.
func (p *Parameters) AnnualStateCost(state HealthState) float64 { return p.costs[state] }

// AnnualStateUtility returns the yearly quality weight of state.
func (p *Parameters) AnnualStateUtility(state HealthState) float64 { return p.utilities[state] }

func (p *Parameters) sampler(state HealthState) *EmpiricalSampler { return p.samplers[state] }
