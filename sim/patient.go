package sim

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrAlreadySimulated is returned when a patient or cohort is run twice.
var ErrAlreadySimulated = errors.New("already simulated")

// Patient is one simulated individual. It owns its random stream and its
// state monitor; nothing is shared with other patients except the
// read-only Parameters.
type Patient struct {
	id        PatientID
	params    *Parameters
	draws     DrawSource
	monitor   *StateMonitor
	simulated bool
}

// NewPatient creates a patient whose draw source is seeded by id.
func NewPatient(id PatientID, params *Parameters) *Patient {
	return NewPatientWithDraws(id, params, NewPatientRNG(id))
}

// NewPatientWithDraws creates a patient that consumes draws from src
// instead of its own seeded stream.
func NewPatientWithDraws(id PatientID, params *Parameters, src DrawSource) *Patient {
	return &Patient{
		id:      id,
		params:  params,
		draws:   src,
		monitor: NewStateMonitor(params),
	}
}

// Simulate runs the patient until it reaches StateWell or the horizon is
// exhausted. The loop is bounded by horizon/DeltaT steps.
func (p *Patient) Simulate() error {
	if p.simulated {
		return ErrAlreadySimulated
	}
	p.simulated = true

	dt := p.params.DeltaT()
	horizon := p.params.Horizon()
	for k := 0; p.monitor.Alive() && float64(k)*dt < horizon; k++ {
		sampler := p.params.sampler(p.monitor.CurrentState())
		next := HealthState(sampler.Sample(p.draws))
		p.monitor.Update(k, next)
	}

	if t, ok := p.monitor.SurvivalTime(); ok {
		logrus.Debugf("patient %d (%s): well after %.2f years", p.id, p.params.Therapy(), t)
	} else {
		logrus.Debugf("patient %d (%s): not well within horizon %.2f", p.id, p.params.Therapy(), horizon)
	}
	return nil
}

// ID returns the patient's identity (and seed).
func (p *Patient) ID() PatientID { return p.id }

// State returns the patient's current health state.
func (p *Patient) State() HealthState { return p.monitor.CurrentState() }

// SurvivalTime returns the time to StateWell; ok is false if the patient
// never reached it.
func (p *Patient) SurvivalTime() (float64, bool) { return p.monitor.SurvivalTime() }

// TotalDiscountedCost returns the patient's discounted lifetime cost.
func (p *Patient) TotalDiscountedCost() float64 { return p.monitor.TotalDiscountedCost() }

// TotalDiscountedUtility returns the patient's discounted lifetime utility.
func (p *Patient) TotalDiscountedUtility() float64 { return p.monitor.TotalDiscountedUtility() }

// Trajectory returns the recorded steps of the patient's simulation.
func (p *Patient) Trajectory() []Step { return p.monitor.Trajectory() }
