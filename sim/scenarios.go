package sim

import (
	"fmt"
	"sort"
)

// Built-in scenario presets. Each call returns a fresh, valid Scenario that
// the caller may modify freely.

// DefaultScenarioName is used when no scenario is selected.
const DefaultScenarioName = "ed"

var builtinScenarios = map[string]func() *Scenario{
	"base": ScenarioBase,
	"ed":   ScenarioED,
}

// ScenarioBase is the baseline trial parameterization: combination therapy
// cures most patients directly from SICK.
func ScenarioBase() *Scenario {
	return &Scenario{
		Name: "base", Horizon: 40, DeltaT: 1, Discount: 0.03, Alpha: 0.05,
		StateUtility: []float64{0.7, 0.7, 0.6, 1.0},
		Therapies: TherapySpec{
			Combination: ArmSpec{
				TransitionMatrix: [][]float64{
					{0, 0.229, 0, 0.771},
					{0, 0.857, 0.029, 0.114},
					{0, 0, 0.833, 0.167},
					{0, 0, 0, 1.0},
				},
				StateCost: []float64{40, 33, 33, 0},
			},
			Standard: ArmSpec{
				TransitionMatrix: [][]float64{
					{0, 0.631, 0, 0.369},
					{0, 0.849, 0.037, 0.114},
					{0, 0, 0.833, 0.167},
					{0, 0, 0, 1.0},
				},
				StateCost: []float64{0, 33, 33, 0},
			},
		},
	}
}

// ScenarioED is the emergency-department parameterization with higher
// treatment costs under combination therapy.
func ScenarioED() *Scenario {
	return &Scenario{
		Name: "ed", Horizon: 40, DeltaT: 1, Discount: 0.03, Alpha: 0.05,
		StateUtility: []float64{0.7, 0.7, 0.6, 1.0},
		Therapies: TherapySpec{
			Combination: ArmSpec{
				TransitionMatrix: [][]float64{
					{0, 0.713, 0, 0.287},
					{0, 0.8699, 0.0195, 0.1106},
					{0, 0, 0.8532, 0.1468},
					{0, 0, 0, 1.0},
				},
				StateCost: []float64{40, 73, 73, 0},
			},
			Standard: ArmSpec{
				TransitionMatrix: [][]float64{
					{0, 0.832, 0, 0.168},
					{0, 0.9014, 0.0205, 0.0781},
					{0, 0, 0.8926, 0.1074},
					{0, 0, 0, 1.0},
				},
				StateCost: []float64{0, 33, 33, 0},
			},
		},
	}
}

// BuiltinScenario returns a fresh copy of the named preset.
func BuiltinScenario(name string) (*Scenario, error) {
	ctor, ok := builtinScenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q; valid: %v", name, BuiltinScenarioNames())
	}
	return ctor(), nil
}

// BuiltinScenarioNames lists the presets in sorted order.
func BuiltinScenarioNames() []string {
	names := make([]string, 0, len(builtinScenarios))
	for name := range builtinScenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
