package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therapy-sim/therapy-sim/sim"
)

func TestResolveScenario_Builtin(t *testing.T) {
	for _, name := range sim.BuiltinScenarioNames() {
		sc, err := resolveScenario(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, sc.Name)
	}
}

func TestResolveScenario_FromFile(t *testing.T) {
	// GIVEN the base scenario dumped to YAML under a new name
	sc := sim.ScenarioBase()
	sc.Name = "custom"
	sc.Horizon = 20
	data, err := sim.MarshalScenario(sc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	// WHEN resolved by path
	got, err := resolveScenario(path)

	// THEN the file contents are loaded
	require.NoError(t, err)
	assert.Equal(t, "custom", got.Name)
	assert.Equal(t, 20.0, got.Horizon)
}

func TestResolveScenario_Unknown(t *testing.T) {
	_, err := resolveScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither a built-in")
}

func TestResolveScenario_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: bad\nhorizon: -1\n"), 0o644))

	_, err := resolveScenario(path)
	assert.Error(t, err)
}

func TestScenariosCommands(t *testing.T) {
	// WHEN scenarios list runs
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"scenarios", "list"})
	require.NoError(t, rootCmd.Execute())

	// THEN every built-in is listed and the default is marked
	assert.Contains(t, out.String(), "base\n")
	assert.Contains(t, out.String(), sim.DefaultScenarioName+" (default)\n")

	// WHEN scenarios show prints the default
	out.Reset()
	rootCmd.SetArgs([]string{"scenarios", "show", sim.DefaultScenarioName})
	require.NoError(t, rootCmd.Execute())

	// THEN the YAML parses back into an equivalent scenario
	sc, err := sim.ParseScenario(out.Bytes())
	require.NoError(t, err)
	want, err := sim.BuiltinScenario(sim.DefaultScenarioName)
	require.NoError(t, err)
	assert.Equal(t, want, sc)
}
