package sim

// Step is one recorded transition of a patient trajectory.
type Step struct {
	K       int         // time step index
	From    HealthState // state during the step
	To      HealthState // sampled next state
	Cost    float64     // discounted cost accrued by this step
	Utility float64     // discounted utility accrued by this step, including any cure bonus
}

// CostUtilityMonitor accumulates discounted cost and utility for one patient.
// Totals only ever grow by per-step contributions.
type CostUtilityMonitor struct {
	params       *Parameters
	totalCost    float64
	totalUtility float64
}

// NewCostUtilityMonitor creates an empty accumulator.
func NewCostUtilityMonitor(params *Parameters) *CostUtilityMonitor {
	return &CostUtilityMonitor{params: params}
}

// Update accrues the cost and utility of spending step k in current before
// moving to next, and returns the discounted amounts added.
//
// A transition into StateWell earns a one-time utility bonus of
// 1 * (horizon - k) for the unlived remainder of the horizon. Cost gets no
// matching bonus. k counts steps, not years, so with DeltaT < 1 a late cure
// (k > horizon) earns a negative bonus.
func (m *CostUtilityMonitor) Update(k int, current, next HealthState) (cost, utility float64) {
	dt := m.params.DeltaT()
	stepCost := m.params.AnnualStateCost(current) * dt
	stepUtility := m.params.AnnualStateUtility(current) * dt
	if next == StateWell {
		stepUtility += 1 * (m.params.Horizon() - float64(k))
	}

	rate := m.params.AdjDiscountRate()
	cost = HalfCyclePresentValue(stepCost, rate, k)
	utility = HalfCyclePresentValue(stepUtility, rate, k)
	m.totalCost += cost
	m.totalUtility += utility
	return cost, utility
}

// TotalDiscountedCost returns the accumulated discounted cost.
func (m *CostUtilityMonitor) TotalDiscountedCost() float64 { return m.totalCost }

// TotalDiscountedUtility returns the accumulated discounted utility.
func (m *CostUtilityMonitor) TotalDiscountedUtility() float64 { return m.totalUtility }

// StateMonitor tracks the health state and outcomes of one patient.
// It is owned by that patient and mutated only by its simulation loop.
type StateMonitor struct {
	params       *Parameters
	current      HealthState
	survivalTime float64
	costUtility  *CostUtilityMonitor
	trajectory   []Step
}

// NewStateMonitor starts a monitor in the initial health state.
func NewStateMonitor(params *Parameters) *StateMonitor {
	return &StateMonitor{
		params:      params,
		current:     params.InitialState(),
		costUtility: NewCostUtilityMonitor(params),
	}
}

// Update records the transition sampled at step k. Once the patient is
// well every further update is a no-op.
func (m *StateMonitor) Update(k int, next HealthState) {
	if !m.Alive() {
		return
	}

	// A cure at k == 0 happens before any time elapses.
	if next == StateWell && k == 0 {
		m.survivalTime = 0
	} else {
		m.survivalTime = float64(k-1) * m.params.DeltaT()
	}

	cost, utility := m.costUtility.Update(k, m.current, next)
	m.trajectory = append(m.trajectory, Step{K: k, From: m.current, To: next, Cost: cost, Utility: utility})

	m.current = next
}

// Alive reports whether the patient has not yet reached StateWell.
func (m *StateMonitor) Alive() bool {
	return !m.current.Terminal()
}

// CurrentState returns the state the patient is in now.
func (m *StateMonitor) CurrentState() HealthState {
	return m.current
}

// SurvivalTime returns the time to reaching StateWell. ok is false while the
// patient is still alive; the value is then meaningless.
func (m *StateMonitor) SurvivalTime() (t float64, ok bool) {
	if m.Alive() {
		return 0, false
	}
	return m.survivalTime, true
}

// TotalDiscountedCost returns the patient's accumulated discounted cost.
func (m *StateMonitor) TotalDiscountedCost() float64 {
	return m.costUtility.TotalDiscountedCost()
}

// TotalDiscountedUtility returns the patient's accumulated discounted utility.
func (m *StateMonitor) TotalDiscountedUtility() float64 {
	return m.costUtility.TotalDiscountedUtility()
}

// Trajectory returns the recorded steps in order. The slice must not be modified.
func (m *StateMonitor) Trajectory() []Step {
	return m.trajectory
}
