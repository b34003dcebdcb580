package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/therapy-sim/therapy-sim/sim"
	"github.com/therapy-sim/therapy-sim/sim/econ"
	"github.com/therapy-sim/therapy-sim/sim/report"
	"github.com/therapy-sim/therapy-sim/sim/trace"
)

var (
	// CLI flags for the run command
	scenarioRef   string  // Built-in scenario name or path to a scenario YAML
	popSize       int     // Patients per therapy arm
	workers       int     // Concurrent patients per cohort
	logLevel      string  // Log verbosity level
	plotDir       string  // Directory for PNG charts; empty disables plotting
	wtpMin        float64 // Lowest willingness-to-pay evaluated
	wtpMax        float64 // Highest willingness-to-pay evaluated
	wtpStep       float64 // Willingness-to-pay increment
	bootstrapRuns int     // ICER bootstrap resamples
	seed          int64   // Seed for the ICER bootstrap
	traceLevel    string  // Transition trace verbosity
)

// Cohort ids per arm. Combination runs first so its patients take ids
// 0..popSize-1.
const (
	combinationCohortID = 0
	standardCohortID    = 1
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "therapy-sim",
	Short: "Markov microsimulation comparing two HIV therapies",
}

// runConfig is the resolved input of one run.
type runConfig struct {
	Scenario  *sim.Scenario
	PopSize   int
	Workers   int
	PlotDir   string
	WTPs      []float64
	Bootstrap int
	Seed      int64
	Trace     trace.TraceLevel
}

// armResult is one simulated therapy arm.
type armResult struct {
	therapy  sim.Therapy
	params   *sim.Parameters
	outcomes *sim.CohortOutcomes
	trace    *trace.CohortTrace
}

// simulate builds and runs the arm's cohort, tracing transitions at level.
func (a *armResult) simulate(ctx context.Context, sc *sim.Scenario, cohortID, popSize, workers int, level trace.TraceLevel) error {
	params, err := sim.NewParameters(sc, a.therapy)
	if err != nil {
		return err
	}
	cohort, err := sim.NewCohort(cohortID, popSize, params)
	if err != nil {
		return err
	}
	outcomes, err := cohort.Simulate(ctx, workers)
	if err != nil {
		return err
	}
	a.params, a.outcomes = params, outcomes
	a.trace = trace.NewCohortTrace(a.therapy, level)
	if a.trace.Enabled() {
		for _, p := range cohort.Patients() {
			a.trace.RecordPatient(p)
		}
	}
	return nil
}

// runTherapies simulates both arms concurrently and writes every report to out.
func runTherapies(ctx context.Context, out io.Writer, cfg runConfig) error {
	arms := []armResult{
		{therapy: sim.TherapyCombination},
		{therapy: sim.TherapyStandard},
	}
	cohortIDs := map[sim.Therapy]int{
		sim.TherapyCombination: combinationCohortID,
		sim.TherapyStandard:    standardCohortID,
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range arms {
		arm := &arms[i]
		g.Go(func() error {
			if err := arm.simulate(gctx, cfg.Scenario, cohortIDs[arm.therapy], cfg.PopSize, cfg.Workers, cfg.Trace); err != nil {
				return fmt.Errorf("simulating %s: %w", arm.therapy, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	combo, std := arms[0].outcomes, arms[1].outcomes

	report.PrintOutcomes(out, "Standard treatment", std)
	report.PrintOutcomes(out, "Combination therapy", combo)

	alpha := cfg.Scenario.Alpha
	report.PrintComparative(out, econ.Compare(std, combo, alpha))

	base := econ.NewStrategy(sim.TherapyStandard.String(), std)
	alt := econ.NewStrategy(sim.TherapyCombination.String(), combo)
	cea, err := econ.CEA(base, alt, econ.CEAOptions{Alpha: alpha, Resamples: cfg.Bootstrap, Seed: cfg.Seed})
	if err != nil {
		return fmt.Errorf("cost-effectiveness analysis: %w", err)
	}
	report.PrintCEA(out, cea, alpha)

	cba, err := econ.CBA(base, alt, cfg.WTPs, alpha)
	if err != nil {
		return fmt.Errorf("cost-benefit analysis: %w", err)
	}
	report.PrintCBA(out, cba)

	for _, arm := range arms {
		if arm.trace.Enabled() {
			report.PrintTraceSummary(out, trace.Summarize(arm.trace), arm.params)
		}
	}

	if cfg.PlotDir != "" {
		if err := report.WritePlots(cfg.PlotDir, cfg.Scenario.Horizon, cba, std, combo); err != nil {
			return err
		}
	}
	return nil
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate both therapy arms and report outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)

		sc, err := resolveScenario(scenarioRef)
		if err != nil {
			return err
		}
		wtps, err := econ.WTPRange(wtpMin, wtpMax, wtpStep)
		if err != nil {
			return err
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			return fmt.Errorf("invalid --trace %q; valid: none, transitions", traceLevel)
		}
		if bootstrapRuns < 0 {
			return fmt.Errorf("--bootstrap must be non-negative, got %d", bootstrapRuns)
		}

		runID := uuid.New().String()
		log := logrus.WithField("run_id", runID)
		log.Infof("Starting run: scenario=%s, pop-size=%d, workers=%d, horizon=%g, delta_t=%g",
			sc.Name, popSize, workers, sc.Horizon, sc.DeltaT)
		startTime := time.Now()

		err = runTherapies(cmd.Context(), cmd.OutOrStdout(), runConfig{
			Scenario:  sc,
			PopSize:   popSize,
			Workers:   workers,
			PlotDir:   plotDir,
			WTPs:      wtps,
			Bootstrap: bootstrapRuns,
			Seed:      seed,
			Trace:     trace.TraceLevel(traceLevel),
		})
		if err != nil {
			return err
		}
		log.Infof("Run complete in %s", time.Since(startTime))
		return nil
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&scenarioRef, "scenario", sim.DefaultScenarioName, "Built-in scenario name or path to a scenario YAML")
	runCmd.Flags().IntVar(&popSize, "pop-size", 2000, "Patients per therapy arm")
	runCmd.Flags().IntVar(&workers, "workers", 1, "Patients simulated concurrently per cohort")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Transition trace level (none, transitions)")
	runCmd.Flags().StringVar(&plotDir, "plot-dir", "", "Directory for survival and NMB charts (disabled when empty)")

	// Economic evaluation
	runCmd.Flags().Float64Var(&wtpMin, "wtp-min", 0, "Lowest willingness-to-pay per unit utility")
	runCmd.Flags().Float64Var(&wtpMax, "wtp-max", 1000, "Highest willingness-to-pay per unit utility")
	runCmd.Flags().Float64Var(&wtpStep, "wtp-step", 50, "Willingness-to-pay increment")
	runCmd.Flags().IntVar(&bootstrapRuns, "bootstrap", 1000, "ICER bootstrap resamples (0 disables)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the ICER bootstrap")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
