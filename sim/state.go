package sim

import (
	"fmt"
	"strings"
)

// HealthState is a mutually exclusive clinical state of a patient.
// Values double as indices into transition rows and per-state tables.
type HealthState int

const (
	StateSick        HealthState = iota // untreated infection
	StateOnTreatment                    // receiving antibiotics
	StateSideEffect                     // treatment side effect
	StateWell                           // cured; the only absorbing state
)

// NumHealthStates is the size of every transition row and per-state table.
const NumHealthStates = 4

var healthStateNames = [NumHealthStates]string{"SICK", "ON_TREATMENT", "SIDE_EFFECT", "WELL"}

func (s HealthState) String() string {
	if !s.Valid() {
		return fmt.Sprintf("HealthState(%d)", int(s))
	}
	return healthStateNames[s]
}

// Valid reports whether s is one of the four defined states.
func (s HealthState) Valid() bool {
	return s >= StateSick && s <= StateWell
}

// Terminal reports whether s is the absorbing state.
func (s HealthState) Terminal() bool {
	return s == StateWell
}

// Therapy selects the transition matrix and cost table for a patient.
type Therapy int

const (
	TherapyCombination Therapy = iota
	TherapyStandard
)

// Therapies lists both arms in cohort-id order.
var Therapies = []Therapy{TherapyCombination, TherapyStandard}

func (t Therapy) String() string {
	switch t {
	case TherapyCombination:
		return "combination"
	case TherapyStandard:
		return "standard"
	default:
		return fmt.Sprintf("Therapy(%d)", int(t))
	}
}

// ParseTherapy maps a CLI or YAML name onto a Therapy.
// "pct" and "antibiotics" are accepted as aliases.
func ParseTherapy(name string) (Therapy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "combination", "pct":
		return TherapyCombination, nil
	case "standard", "antibiotics":
		return TherapyStandard, nil
	default:
		return 0, fmt.Errorf("unknown therapy %q; valid: combination, standard", name)
	}
}
