package sim

import (
	"math/rand"
)

// === PatientID ===

// PatientID uniquely identifies a patient across all cohorts of a run and
// doubles as the seed of the patient's draw source. Two patients with the
// same PatientID and identical parameters MUST produce bit-for-bit
// identical trajectories.
type PatientID int64

// DerivePatientID computes the id of the index-th patient of a cohort.
// Cohorts of equal size never collide: cohort c owns [c*size, (c+1)*size).
func DerivePatientID(cohortID, popSize, index int) PatientID {
	return PatientID(int64(cohortID)*int64(popSize) + int64(index))
}

// === DrawSource ===

// DrawSource produces uniform draws in [0, 1) for the empirical sampler.
type DrawSource interface {
	Float64() float64
}

// PatientRNG is the private random stream of one patient.
//
// Derivation: the patient id is used as the seed directly, so a patient's
// stream does not depend on which other patients exist or in what order
// they run.
//
// Thread-safety: NOT thread-safe. Owned by exactly one patient.
type PatientRNG struct {
	id  PatientID
	rng *rand.Rand
}

// NewPatientRNG creates the stream for the given patient.
func NewPatientRNG(id PatientID) *PatientRNG {
	return &PatientRNG{
		id:  id,
		rng: rand.New(rand.NewSource(int64(id))),
	}
}

// Float64 returns the next draw in [0, 1).
func (p *PatientRNG) Float64() float64 {
	return p.rng.Float64()
}

// ID returns the PatientID used to seed this stream.
func (p *PatientRNG) ID() PatientID {
	return p.id
}
