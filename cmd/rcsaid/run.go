package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rcsaid/internal/automation"
	"github.com/san-kum/rcsaid/internal/config"
	"github.com/san-kum/rcsaid/internal/deltav"
	"github.com/san-kum/rcsaid/internal/experiment"
	"github.com/san-kum/rcsaid/internal/sim"
	"github.com/san-kum/rcsaid/internal/storage"
	"github.com/san-kum/rcsaid/internal/viz"
	"github.com/spf13/cobra"
)

func setupExperiment(cmd *cobra.Command) (*experiment.Experiment, error) {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return nil, err
	}
	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry(), logger); err != nil {
		return nil, err
	}
	return exp, nil
}

func runInfo(cfg *config.Config, id string) storage.RunInfo {
	return storage.RunInfo{
		ID:         id,
		Scenario:   cfg.Name,
		Mode:       cfg.Mode,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
		Controller: cfg.Controller,
	}
}

func printEstimate(est deltav.Estimate) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "mode\t%s\n", est.Mode)
	fmt.Fprintf(w, "delta-v\t%.3f m/s\n", est.DeltaV)
	fmt.Fprintf(w, "burn time\t%.3f s\n", est.BurnTime)
	fmt.Fprintf(w, "isp\t%.2f s\n", est.Isp)
	fmt.Fprintf(w, "resource mass\t%.4f t\n", est.ResourceMass)
	fmt.Fprintf(w, "thrust\t%.4f kN\n", est.Thrust)
	w.Flush()

	switch {
	case !est.Sane:
		fmt.Println("warning: resource cannot be pooled, estimate unreliable")
	case est.Degenerate:
		fmt.Println("warning: vessel mass is not positive, delta-v unavailable")
	}
}

func runEstimate(cmd *cobra.Command, args []string) error {
	exp, err := setupExperiment(cmd)
	if err != nil {
		return err
	}
	est, err := exp.Estimate()
	if err != nil {
		return err
	}
	fmt.Printf("scenario: %s\n", exp.Config().Name)
	printEstimate(est)
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, err := setupExperiment(cmd)
	if err != nil {
		return err
	}
	cfg := exp.Config()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	info := runInfo(cfg, saveAs)
	runID, err := store.Save(info, result)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	info.ID = runID

	if jsonOut == "-" {
		return storage.ExportJSONStdout(info, result)
	}
	if jsonOut != "" {
		if err := storage.ExportJSON(jsonOut, info, result); err != nil {
			return err
		}
	}
	if csvOut != "" {
		if err := storage.ExportCSV(csvOut, result); err != nil {
			return err
		}
	}

	fmt.Printf("run: %s (%d steps in %v)\n", runID, result.StepsTaken, elapsed.Round(time.Millisecond))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range exp.GetSimulator().MetricNames() {
		fmt.Fprintf(w, "%s\t%.6f\n", name, result.Metrics[name])
	}
	w.Flush()
	fmt.Println()
	printEstimate(result.Final)

	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, "warning:", e)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, err := setupExperiment(cmd)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s [%s]", exp.Config().Name, exp.Config().Mode)
	model := viz.NewModel(exp.GetSimulator(), exp.Craft().Thrusters(), exp.InitState(), exp.SimConfig(), title)

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viz.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	sweep := &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tDV\tBURN\tISP\tMASS\tSANE\n", sweepParam)
	for _, r := range results {
		e := r.Estimate
		fmt.Fprintf(w, "%.4f\t%.3f\t%.3f\t%.2f\t%.4f\t%v\n", r.ParamValue, e.DeltaV, e.BurnTime, e.Isp, e.ResourceMass, e.Sane)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN\tSTEPS\tDV\tSANE")
	for _, r := range results {
		runID, err := store.Save(runInfo(r.Config, r.SaveAs), r.Result)
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", r.Name, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%v\n", r.Name, runID, r.Result.StepsTaken, r.Result.Final.DeltaV, r.Result.Final.Sane)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mc := &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturb,
		NumTrials:    trials,
		Seed:         cfg.Seed,
		Workers:      workers,
	}
	results, err := automation.RunMonteCarlo(ctx, mc, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSPIN0\tSPIN\tPROPELLANT\tDV\tSTABLE")
	for _, r := range results {
		spin0 := sim.State(r.InitSpin[:]).Norm()
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.3f\t%v\n", r.TrialID, spin0, r.FinalSpin, r.PropellantUsed, r.Final.DeltaV, r.Stable)
	}
	w.Flush()

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("\nstable: %d  unstable: %d\n", stable, unstable)
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	dts := []float64{0.05, 0.02, 0.01, 0.005}
	if cmd.Flags().Changed("dt") {
		dts = []float64{cfg.Dt}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tDURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")
	for _, integ := range []string{"euler", "rk4"} {
		for _, d := range dts {
			c := cfg.Clone()
			c.Dt = d
			c.Integrator = integ

			exp := experiment.New(c)
			if err := exp.Setup(experiment.NewRegistry(), logger); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(cmd.Context())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			rate := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%s\t%.1f\t%.3f\t%d\t%v\t%.0f\n", integ, c.Duration, d, result.StepsTaken, elapsed.Round(time.Microsecond), rate)
		}
	}
	return w.Flush()
}
