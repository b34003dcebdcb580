package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/therapy-sim/therapy-sim/sim"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Inspect built-in scenarios",
}

var scenariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in scenario names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range sim.BuiltinScenarioNames() {
			marker := ""
			if name == sim.DefaultScenarioName {
				marker = " (default)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", name, marker)
		}
		return nil
	},
}

var scenariosShowCmd = &cobra.Command{
	Use:   "show NAME|PATH",
	Short: "Print a scenario as YAML",
	Long:  "Print a built-in scenario, or a validated scenario file, as YAML. The output can be edited and passed back to run --scenario.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := resolveScenario(args[0])
		if err != nil {
			return err
		}
		data, err := sim.MarshalScenario(sc)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	scenariosCmd.AddCommand(scenariosListCmd, scenariosShowCmd)
	rootCmd.AddCommand(scenariosCmd)
}
