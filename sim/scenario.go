package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// rowSumTolerance bounds how far a transition row may drift from 1.0.
const rowSumTolerance = 1e-6

// Scenario is one named set of model inputs. Several scenarios may coexist;
// the engine is parameterized by whichever one is selected.
// Loaded from YAML via LoadScenario(path) or taken from BuiltinScenario(name).
type Scenario struct {
	Name         string      `yaml:"name"`
	Horizon      float64     `yaml:"horizon"`  // years
	DeltaT       float64     `yaml:"delta_t"`  // years per time step
	Discount     float64     `yaml:"discount"` // annual discount rate
	Alpha        float64     `yaml:"alpha"`    // significance level for confidence intervals
	StateUtility []float64   `yaml:"state_utility"`
	Therapies    TherapySpec `yaml:"therapies"`
}

// TherapySpec holds the per-arm tables.
type TherapySpec struct {
	Combination ArmSpec `yaml:"combination"`
	Standard    ArmSpec `yaml:"standard"`
}

// ArmSpec is the transition matrix and annual state costs of one therapy.
type ArmSpec struct {
	TransitionMatrix [][]float64 `yaml:"transition_matrix"`
	StateCost        []float64   `yaml:"state_cost"`
}

// Arm returns the tables for the given therapy.
func (s *Scenario) Arm(t Therapy) (*ArmSpec, error) {
	switch t {
	case TherapyCombination:
		return &s.Therapies.Combination, nil
	case TherapyStandard:
		return &s.Therapies.Standard, nil
	default:
		return nil, fmt.Errorf("unknown therapy %v", t)
	}
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", sc.Name, err)
	}
	return &sc, nil
}

// MarshalScenario renders a scenario back to YAML.
func MarshalScenario(sc *Scenario) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return nil, fmt.Errorf("encoding scenario: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding scenario: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks that every field of the scenario is usable by the engine.
func (s *Scenario) Validate() error {
	if err := validateFinitePositive("horizon", s.Horizon); err != nil {
		return err
	}
	if err := validateFinitePositive("delta_t", s.DeltaT); err != nil {
		return err
	}
	if math.IsNaN(s.Discount) || math.IsInf(s.Discount, 0) || s.Discount < 0 {
		return fmt.Errorf("discount must be a finite non-negative number, got %f", s.Discount)
	}
	if !(s.Alpha > 0 && s.Alpha < 1) {
		return fmt.Errorf("alpha must be in (0, 1), got %f", s.Alpha)
	}
	if err := validateStateValues("state_utility", s.StateUtility); err != nil {
		return err
	}
	for _, t := range Therapies {
		arm, _ := s.Arm(t)
		if err := arm.validate("therapies." + t.String()); err != nil {
			return err
		}
	}
	return nil
}

func (a *ArmSpec) validate(prefix string) error {
	if len(a.TransitionMatrix) != NumHealthStates {
		return fmt.Errorf("%s.transition_matrix: want %d rows, got %d", prefix, NumHealthStates, len(a.TransitionMatrix))
	}
	for i, row := range a.TransitionMatrix {
		if err := validateRow(row); err != nil {
			return fmt.Errorf("%s.transition_matrix[%d]: %w", prefix, i, err)
		}
	}
	well := a.TransitionMatrix[StateWell]
	if well[StateWell] != 1 {
		return fmt.Errorf("%s.transition_matrix[%d]: %v must be absorbing, got %v", prefix, int(StateWell), StateWell, well)
	}
	return validateStateValues(prefix+".state_cost", a.StateCost)
}

// validateRow enforces the row-stochastic invariant on one probability row.
func validateRow(row []float64) error {
	if len(row) != NumHealthStates {
		return fmt.Errorf("want %d entries, got %d", NumHealthStates, len(row))
	}
	sum := 0.0
	for j, p := range row {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("entry %d must be a probability in [0, 1], got %f", j, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > rowSumTolerance {
		return fmt.Errorf("row sums to %g, want 1", sum)
	}
	return nil
}

func validateStateValues(name string, values []float64) error {
	if len(values) != NumHealthStates {
		return fmt.Errorf("%s: want %d entries, got %d", name, NumHealthStates, len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s[%d] must be a finite number, got %f", name, i, v)
		}
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
