package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"chemsim/internal/analysis"
	"chemsim/internal/chem"
	"chemsim/internal/config"
	"chemsim/internal/electrolytes"
	"chemsim/internal/export"
	"chemsim/internal/kinetics"
	"chemsim/internal/ode"
	"chemsim/internal/optim"
	"chemsim/internal/scenario"
	"chemsim/internal/storage"
	"chemsim/internal/symbolic"
	"chemsim/internal/tui"
	"chemsim/internal/units"
	"chemsim/internal/viz"
	"chemsim/internal/water"
)

var (
	dataDir    string
	configFile string
	reactions  []string
	initConc   []string
	dt         float64
	duration   float64
	tolerance  float64
	integrator string
	adaptive   bool
	tempK      float64
	rampSlope  float64
	// verify tolerances
	rtol     float64
	atol     float64
	driftTol float64
	// electrolyte flags
	charge      int
	ionicStr    float64
	ionSize     float64
	lawName     string
	pressure    float64
	symbolicOut bool
	latexOut    bool
	// plot/export
	speciesName string
	format      string
	outFile     string
	// fit ranges
	dhMin, dhMax float64
	dsMin, dsMax float64
	fitPoints    int
	fitRounds    int
	// sweep range
	sweepMin    float64
	sweepMax    float64
	sweepPoints int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chemsim",
		Short: "reaction kinetics and electrolyte chemistry lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".chemsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "integrate a reaction scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	verifyCmd := &cobra.Command{
		Use:   "verify [preset]",
		Short: "check a run against its closed-form solution",
		Args:  cobra.MaximumNArgs(1),
		RunE:  verifyScenario,
	}
	addScenarioFlags(verifyCmd)
	verifyCmd.Flags().Float64Var(&rtol, "rtol", analysis.DefaultRtol, "relative tolerance")
	verifyCmd.Flags().Float64Var(&atol, "atol", analysis.DefaultAtol, "absolute tolerance")
	verifyCmd.Flags().Float64Var(&driftTol, "drift-tol", 1e-9, "conservation drift tolerance")

	debyeCmd := &cobra.Command{
		Use:   "debye",
		Short: "Debye-Hückel activity coefficients for water",
		RunE:  debyeLaw,
	}
	debyeCmd.Flags().Float64Var(&tempK, "temp", 298.15, "temperature (K)")
	debyeCmd.Flags().IntVar(&charge, "charge", 1, "ion charge number")
	debyeCmd.Flags().Float64Var(&ionicStr, "ionic", 0.0, "ionic strength (mol/kg)")
	debyeCmd.Flags().Float64Var(&ionSize, "size", 4.0, "ion size parameter (Å)")
	debyeCmd.Flags().StringVar(&lawName, "law", "all", "limiting, extended, davies or all")
	debyeCmd.Flags().BoolVar(&symbolicOut, "symbolic", false, "print symbolic expressions")
	debyeCmd.Flags().BoolVar(&latexOut, "latex", false, "render symbolic output as LaTeX")

	propsCmd := &cobra.Command{
		Use:   "props",
		Short: "water density and relative permittivity",
		RunE:  waterProps,
	}
	propsCmd.Flags().Float64Var(&tempK, "temp", 298.15, "temperature (K)")
	propsCmd.Flags().Float64Var(&pressure, "pressure", 1.0, "pressure (bar)")
	propsCmd.Flags().BoolVar(&symbolicOut, "symbolic", false, "print symbolic expressions")
	propsCmd.Flags().BoolVar(&latexOut, "latex", false, "render symbolic output as LaTeX")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored trajectories",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&speciesName, "species", "", "plot only this column")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json, csv or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json, csv or svg")
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark integrators on a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [integrator...]",
		Short: "compare integrators on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}

	fitCmd := &cobra.Command{
		Use:   "fit [preset] [run_id]",
		Short: "fit Eyring parameters to a stored run",
		Args:  cobra.ExactArgs(2),
		RunE:  fitRun,
	}
	fitCmd.Flags().Float64Var(&dhMin, "dh-min", 70e3, "activation enthalpy lower bound (J/mol)")
	fitCmd.Flags().Float64Var(&dhMax, "dh-max", 100e3, "activation enthalpy upper bound (J/mol)")
	fitCmd.Flags().Float64Var(&dsMin, "ds-min", -40, "activation entropy lower bound (J/mol/K)")
	fitCmd.Flags().Float64Var(&dsMax, "ds-max", 40, "activation entropy upper bound (J/mol/K)")
	fitCmd.Flags().IntVar(&fitPoints, "points", 9, "grid points per round")
	fitCmd.Flags().IntVar(&fitRounds, "rounds", 4, "refinement rounds")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run a scenario across a temperature range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepScenario,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "tmin", 280, "lowest starting temperature (K)")
	sweepCmd.Flags().Float64Var(&sweepMax, "tmax", 340, "highest starting temperature (K)")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 13, "number of sweep points")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a run in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, verifyCmd, debyeCmd, propsCmd, listCmd, plotCmd,
		exportCmd, benchCmd, compareCmd, fitCmd, sweepCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringArrayVar(&reactions, "reaction", nil, `reaction line, e.g. "NOBr -> NO + Br; eyring(84e3, 10)"`)
	cmd.Flags().StringArrayVar(&initConc, "init", nil, "initial concentration, species=value (mol/L)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "adaptive error tolerance")
	cmd.Flags().StringVar(&integrator, "integrator", "rk45", "euler, rk4, rk45 or ros2")
	cmd.Flags().BoolVar(&adaptive, "adaptive", true, "adaptive stepping")
	cmd.Flags().Float64Var(&tempK, "temp", config.DefaultT0, "temperature (K)")
	cmd.Flags().Float64Var(&rampSlope, "ramp", 0.0, "temperature ramp slope (K/s)")
}

// resolveConfig merges preset, config file and flags; flags win.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if len(args) > 0 {
		preset := config.GetPreset(args[0])
		if preset == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		cfg = preset.Clone()
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("reaction") {
		cfg.Reactions = reactions
	}
	if cmd.Flags().Changed("init") {
		cfg.Initial = make(map[string]float64)
		for _, pair := range initConc {
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("bad --init %q, want species=value", pair)
			}
			c, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("bad --init %q: %w", pair, err)
			}
			cfg.Initial[name] = c
		}
	}
	if cmd.Flags().Changed("dt") {
		cfg.Solver.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Solver.Duration = duration
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.Solver.Tolerance = tolerance
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Solver.Integrator = integrator
	}
	if cmd.Flags().Changed("adaptive") {
		cfg.Solver.Adaptive = adaptive
	}
	if cmd.Flags().Changed("temp") {
		cfg.Temperature.T0 = tempK
	}
	if cmd.Flags().Changed("ramp") {
		cfg.Temperature.Slope = rampSlope
		if rampSlope != 0 {
			cfg.Temperature.Mode = "ramp"
		} else {
			cfg.Temperature.Mode = "const"
		}
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sc, err := scenario.Build(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s\n", cfg.Name)
	for _, rxn := range sc.Network.Reactions {
		fmt.Printf("  %s\n", rxn)
	}
	fmt.Printf("  %s, %s, %g s\n", sc.Temp, cfg.Solver.Integrator, cfg.Solver.Duration)

	start := time.Now()
	result, err := sc.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if len(result.Errors) > 0 {
		return fmt.Errorf("integration failed: %v", result.Errors[0])
	}

	runID, err := st.Save(runMetadata(sc), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, rhs evals: %d\n", result.StepsTaken, result.Evals)
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for name, val := range result.Metrics {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, val)
	}
	w.Flush()

	final := sc.Concentrations(result.States[len(result.States)-1])
	fmt.Println("\nfinal mixture:")
	for i, name := range sc.Network.Species {
		fmt.Printf("  [%s] = %.6f mol/L\n", name, final[i])
	}
	return nil
}

func runMetadata(sc *scenario.Scenario) storage.RunMetadata {
	return storage.RunMetadata{
		Scenario:    sc.Cfg.Name,
		Reactions:   sc.Cfg.Reactions,
		Species:     sc.Network.Species,
		Integrator:  sc.Cfg.Solver.Integrator,
		Dt:          sc.Cfg.Solver.Dt,
		Duration:    sc.Cfg.Solver.Duration,
		Temperature: sc.Temp.String(),
	}
}

func verifyScenario(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"nobr-ramp"}
	}
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sc, err := scenario.Build(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("verifying %s against the closed-form solution\n", cfg.Name)
	fmt.Printf("  %s\n", sc.Network.Reactions[0])
	fmt.Printf("  %s\n\n", sc.Temp)

	rep, err := sc.Verify(context.Background(), rtol, atol, driftTol)
	if err != nil {
		return err
	}

	for _, r := range rep.Species {
		line := r.String()
		if r.Pass {
			fmt.Println(viz.PassStyle.Render("  ✓ ") + line)
		} else {
			fmt.Println(viz.FailStyle.Render("  ✗ ") + line)
		}
	}
	fmt.Println()
	for _, lc := range rep.Laws {
		status := viz.PassStyle.Render("  ✓ ")
		if !lc.Pass {
			status = viz.FailStyle.Render("  ✗ ")
		}
		fmt.Printf("%sconserved: %s (drift %.3e)\n", status, lc.Name, lc.Drift)
	}

	fmt.Printf("\nsteps: %d, rhs evals: %d\n", rep.Result.StepsTaken, rep.Result.Evals)

	if !rep.OK() {
		return fmt.Errorf("verification failed")
	}
	fmt.Println(viz.PassStyle.Render("verification passed"))
	return nil
}

func debyeLaw(cmd *cobra.Command, args []string) error {
	a, err := electrolytes.AForWater(tempK)
	if err != nil {
		return err
	}
	b, err := electrolytes.BForWater(tempK)
	if err != nil {
		return err
	}

	fmt.Printf("water at %.2f K, 1 bar\n", tempK)
	fmt.Printf("  A = %s (A/ln10 = %.4f)\n", a, a.Value/electrolytes.Ln10)
	fmt.Printf("  B = %s\n\n", b)

	if symbolicOut {
		printExpr("A", electrolytes.AExpr())
		printExpr("B", electrolytes.BExpr())
		z := charge
		switch lawName {
		case "limiting":
			printExpr("ln γ", electrolytes.LimitingLnGammaExpr(symbolic.Symbol("A"), z))
		case "extended":
			printExpr("ln γ", electrolytes.ExtendedLnGammaExpr(symbolic.Symbol("A"), symbolic.Symbol("B"), ionSize*1e-10, z))
		case "davies":
			printExpr("ln γ", electrolytes.DaviesLnGammaExpr(symbolic.Symbol("A"), z))
		default:
			printExpr("ln γ (limiting)", electrolytes.LimitingLnGammaExpr(symbolic.Symbol("A"), z))
			printExpr("ln γ (davies)", electrolytes.DaviesLnGammaExpr(symbolic.Symbol("A"), z))
		}
		fmt.Println()
	}

	if ionicStr <= 0 {
		return nil
	}

	ionic := units.Molality(ionicStr)
	size := units.New(ionSize*1e-10, units.Dim(1, 0, 0, 0, 0, 0))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "law\tln γ\tγ\n")

	show := func(name string, ln float64, err error) error {
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\n", name, ln, math.Exp(ln))
		return nil
	}

	if lawName == "limiting" || lawName == "all" {
		ln, err := electrolytes.LimitingLnGamma(a, charge, ionic)
		if err := show("limiting", ln, err); err != nil {
			return err
		}
	}
	if lawName == "extended" || lawName == "all" {
		ln, err := electrolytes.ExtendedLnGamma(a, b, size, charge, ionic)
		if err := show("extended", ln, err); err != nil {
			return err
		}
	}
	if lawName == "davies" || lawName == "all" {
		ln, err := electrolytes.DaviesLnGamma(a, charge, ionic)
		if err := show("davies", ln, err); err != nil {
			return err
		}
	}
	return w.Flush()
}

func waterProps(cmd *cobra.Command, args []string) error {
	rho, err := water.Density(tempK)
	if err != nil {
		return err
	}
	eps, err := water.Permittivity(tempK, pressure)
	if err != nil {
		return err
	}

	fmt.Printf("water at %.2f K, %g bar\n", tempK, pressure)
	fmt.Printf("  density          ρ = %s\n", rho)
	fmt.Printf("  rel permittivity ε_r = %.4f\n", eps)

	if symbolicOut {
		fmt.Println()
		printExpr("ρ(T)", water.DensityExpr("T"))
		printExpr("ε_r(T, p)", water.PermittivityExpr("T", "p"))
	}
	return nil
}

func printExpr(name string, e symbolic.Expr) {
	if latexOut {
		fmt.Printf("  %s = %s\n", name, e.LaTeX())
	} else {
		fmt.Printf("  %s = %s\n", name, e)
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tINTEG\tSPECIES\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%s\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Integrator,
			len(run.Species),
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	columns, times, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%s)\n", meta.Scenario, meta.Temperature)
	fmt.Printf("samples: %d\n\n", len(states))

	out, err := viz.PlotColumns(times, states, columns, speciesName)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	columns, times, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		result := &ode.Result{
			States:  make([]ode.State, len(states)),
			Times:   times,
			Metrics: meta.Metrics,
		}
		for i, s := range states {
			result.States[i] = s
		}
		return storage.ExportJSON(out, *meta, result)

	case "csv":
		w := csv.NewWriter(out)
		defer w.Flush()
		if err := w.Write(append([]string{"time"}, columns...)); err != nil {
			return err
		}
		for i := range states {
			row := []string{strconv.FormatFloat(times[i], 'g', -1, 64)}
			for _, v := range states[i] {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil

	case "svg":
		series := make([][]float64, len(columns))
		for j := range columns {
			series[j] = make([]float64, len(states))
			for i := range states {
				series[j][i] = states[i][j]
			}
		}
		svg := export.TrajectoriesToSVG(times, series, columns, 800, 450)
		if svg == "" {
			return fmt.Errorf("not enough data for svg")
		}
		_, err := fmt.Fprintln(out, svg)
		return err

	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func benchScenario(cmd *cobra.Command, args []string) error {
	name := "nobr-ramp"
	if len(args) > 0 {
		name = args[0]
	}
	base := config.GetPreset(name)
	if base == nil {
		return fmt.Errorf("unknown preset: %s", name)
	}

	fmt.Printf("benchmarking %s\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tDT\tADAPTIVE\tSTEPS\tEVALS\tTIME\tSTEPS/SEC")

	integs := scenario.NewRegistry().ListIntegrators()
	dts := []float64{1e-3, 1e-2}

	for _, ig := range integs {
		for _, benchDt := range dts {
			cfg := base.Clone()
			cfg.Solver.Integrator = ig
			cfg.Solver.Dt = benchDt

			sc, err := scenario.Build(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := sc.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()

			fmt.Fprintf(w, "%s\t%.0e\t%v\t%d\t%d\t%v\t%.0f\n",
				ig, benchDt, cfg.Solver.Adaptive, result.StepsTaken, result.Evals, elapsed, stepsPerSec)
		}
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	base := config.GetPreset(args[0])
	if base == nil {
		return fmt.Errorf("unknown preset: %s", args[0])
	}
	names := args[1:]

	// Reference trajectory for the error column, if one exists.
	var analytic *kinetics.RampedDecay
	if sc, err := scenario.Build(base.Clone()); err == nil {
		if rep, err := sc.Verify(context.Background(), 1, 1, 1); err == nil {
			analytic = &rep.Analytic
		}
	}

	fmt.Printf("comparing integrators on %s (dt=%g, %gs)\n\n", base.Name, base.Solver.Dt, base.Solver.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tFINAL\tMAX|ERR|\tSTEPS\tEVALS\tTIME")

	for _, ig := range names {
		cfg := base.Clone()
		cfg.Solver.Integrator = ig

		sc, err := scenario.Build(cfg)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", ig, err)
			continue
		}

		start := time.Now()
		result, err := sc.Run(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", ig, err)
			continue
		}

		final := result.States[len(result.States)-1][0]
		errCol := "n/a"
		if analytic != nil {
			ref := analytic.ReactantSeries(result.Times)
			errCol = fmt.Sprintf("%.3e", analysis.MaxAbsErr(result.At(0), ref))
		}

		fmt.Fprintf(w, "%s\t%.6f\t%s\t%d\t%d\t%v\n",
			ig, final, errCol, result.StepsTaken, result.Evals, elapsed)
	}
	return w.Flush()
}

func fitRun(cmd *cobra.Command, args []string) error {
	base := config.GetPreset(args[0])
	if base == nil {
		return fmt.Errorf("unknown preset: %s", args[0])
	}
	if len(base.Reactions) != 1 {
		return fmt.Errorf("fit supports single-reaction scenarios")
	}
	equation, _, _ := strings.Cut(base.Reactions[0], ";")
	equation = strings.TrimSpace(equation)

	// Resolve the reactant column in the stored data.
	rxn, err := chem.ParseReaction(base.Reactions[0])
	if err != nil {
		return err
	}
	var reactant string
	for name := range rxn.Reac {
		reactant = name
	}

	st := storage.New(dataDir)
	columns, times, states, err := st.LoadStates(args[1])
	if err != nil {
		return err
	}
	col := -1
	for i, c := range columns {
		if c == reactant {
			col = i
		}
	}
	if col < 0 {
		return fmt.Errorf("run %s has no column %q", args[1], reactant)
	}
	observed := make([]float64, len(states))
	for i := range states {
		observed[i] = states[i][col]
	}

	objective := func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := base.Clone()
		cfg.Reactions[0] = fmt.Sprintf("%s; eyring(%g, %g)", equation, params["dh"], params["ds"])
		sc, err := scenario.Build(cfg)
		if err != nil {
			return 0, err
		}
		result, err := sc.Run(ctx)
		if err != nil {
			return 0, err
		}
		if len(result.Errors) > 0 {
			return 0, fmt.Errorf("unstable: %v", result.Errors[0])
		}
		idx, _ := sc.Network.Index(reactant)
		model := analysis.InterpSeries(result.Times, result.At(idx), times)
		return analysis.MaxAbsErr(model, observed), nil
	}

	fmt.Printf("fitting eyring parameters of %q to %s\n", equation, args[1])
	start := time.Now()
	best, val, err := optim.Refine(context.Background(),
		[]string{"dh", "ds"},
		[]float64{dhMin, dsMin}, []float64{dhMax, dsMax},
		fitPoints, fitRounds, objective)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no stable parameter assignment found")
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("  ΔH‡ = %.4g J/mol\n", best["dh"])
	fmt.Printf("  ΔS‡ = %.4g J/(mol·K)\n", best["ds"])
	fmt.Printf("  max|err| = %.3e mol/L\n", val)
	return nil
}

func sweepScenario(cmd *cobra.Command, args []string) error {
	name := "nobr-isothermal"
	if len(args) > 0 {
		name = args[0]
	}
	base := config.GetPreset(name)
	if base == nil {
		return fmt.Errorf("unknown preset: %s", name)
	}

	sweep, err := scenario.NewSweep(base, sweepMin, sweepMax, sweepPoints)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s from %g K to %g K (%d points)\n\n", name, sweepMin, sweepMax, sweepPoints)
	points, err := sweep.Run(context.Background())
	if err != nil {
		return err
	}

	var convNames []string
	for k := range points[0].Metrics {
		if strings.HasPrefix(k, "conversion_") {
			convNames = append(convNames, k)
		}
	}
	sort.Strings(convNames)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "T0 (K)"
	for _, n := range convNames {
		header += "\t" + strings.TrimPrefix(n, "conversion_")
	}
	fmt.Fprintln(w, header)
	for _, p := range points {
		row := fmt.Sprintf("%.2f", p.T0)
		for _, n := range convNames {
			row += fmt.Sprintf("\t%.4f", p.Metrics[n])
		}
		fmt.Fprintln(w, row)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(convNames) > 0 {
		series := make([]float64, len(points))
		for i, p := range points {
			series[i] = p.Metrics[convNames[0]]
		}
		caption := fmt.Sprintf("%s vs T0", strings.TrimPrefix(convNames[0], "conversion_"))
		fmt.Println()
		fmt.Println(viz.PlotSeries(series, caption))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, err := scenario.Build(cfg)
	if err != nil {
		return err
	}
	return tui.Run(sc)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tREACTIONS\tTEMPERATURE\tINTEG\tDURATION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		temp := fmt.Sprintf("%g K", p.Temperature.T0)
		if p.Temperature.Mode == "ramp" {
			temp = fmt.Sprintf("%g K + %g K/s", p.Temperature.T0, p.Temperature.Slope)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%gs\n",
			name, len(p.Reactions), temp, p.Solver.Integrator, p.Solver.Duration)
	}
	return w.Flush()
}
