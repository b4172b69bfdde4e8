package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/rcsaid/internal/config"
	"github.com/san-kum/rcsaid/internal/logging"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	mode       string
	dt         float64
	duration   float64
	seed       int64
	integrator string
	controller string
	kp         float64
	ki         float64
	kd         float64
	saveAs     string
	jsonOut    string
	csvOut     string
	columns    []string
	column     string
	outFile    string
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	perturb    float64
	workers    int

	logger *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rcsaid",
		Short: "RCS delta-v and burn-time build aid",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.Setup()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rcsaid", "data directory")

	estimateCmd := &cobra.Command{
		Use:   "estimate",
		Short: "static delta-v estimate for a scenario",
		RunE:  runEstimate,
	}
	scenarioFlags(estimateCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and store its telemetry",
		RunE:  runSimulation,
	}
	scenarioFlags(runCmd)
	runCmd.Flags().StringVar(&saveAs, "save-as", "", "run id (default: scenario name and time)")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "also export the run as JSON (- for stdout)")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "also export telemetry as CSV")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scenario with the live readout",
		RunE:  runLive,
	}
	scenarioFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot telemetry columns",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&columns, "columns", []string{"dv", "burn_time", "wx", "wy", "wz"}, "columns to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run telemetry to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and telemetry to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "statistics and dominant frequency of a telemetry column",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "wz", "telemetry column")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or write one out as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}
	presetsCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the preset to this file")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "static estimate across a range of one parameter",
		RunE:  runSweep,
	}
	scenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "propellant", "propellant, dry_mass or thrust")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run every step of a batch file and store the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	montecarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "rerun a scenario with perturbed initial spin",
		RunE:  runMonteCarlo,
	}
	scenarioFlags(montecarloCmd)
	montecarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	montecarloCmd.Flags().Float64Var(&perturb, "perturb", 0.2, "max spin perturbation per axis (rad/s)")
	montecarloCmd.Flags().IntVar(&workers, "workers", 0, "concurrent trials (0: one per CPU)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the tick loop",
		RunE:  benchScenario,
	}
	scenarioFlags(benchCmd)

	rootCmd.AddCommand(estimateCmd, runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, analyzeCmd, presetsCmd, sweepCmd, batchCmd, montecarloCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func scenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a preset scenario")
	cmd.Flags().StringVar(&mode, "mode", "rcs", "estimator mode")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().StringVar(&controller, "controller", "pid", "controller")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "pid kp")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "pid ki")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "pid kd")
}

// loadScenario starts from --config, then --preset, then probe, and applies
// only the flags the user actually set.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	default:
		cfg = config.GetPreset("probe")
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("controller") {
		cfg.Controller = controller
	}
	if flags.Changed("kp") {
		cfg.ControllerParams.Kp = kp
	}
	if flags.Changed("ki") {
		cfg.ControllerParams.Ki = ki
	}
	if flags.Changed("kd") {
		cfg.ControllerParams.Kd = kd
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
