package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/therapy-sim/therapy-sim/sim"
)

// resolveScenario returns the built-in scenario named ref, or loads ref as a
// scenario YAML file when no built-in has that name.
func resolveScenario(ref string) (*sim.Scenario, error) {
	if sc, err := sim.BuiltinScenario(ref); err == nil {
		logrus.Debugf("using built-in scenario %q", ref)
		return sc, nil
	}
	if _, err := os.Stat(ref); err != nil {
		return nil, fmt.Errorf("scenario %q is neither a built-in (%v) nor a readable file: %w",
			ref, sim.BuiltinScenarioNames(), err)
	}
	logrus.Debugf("loading scenario from %s", ref)
	return sim.LoadScenario(ref)
}
