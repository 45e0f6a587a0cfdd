package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/trapmodes/internal/axial"
	"github.com/san-kum/trapmodes/internal/config"
	"github.com/san-kum/trapmodes/internal/equilibrium"
	"github.com/san-kum/trapmodes/internal/storage"
	"github.com/san-kum/trapmodes/internal/sweep"
	"github.com/san-kum/trapmodes/internal/trap"
	"github.com/san-kum/trapmodes/internal/tui"
	"github.com/san-kum/trapmodes/internal/viz"
)

var (
	dataDir string
	ions    int
	massAMU float64
	unit    string
	guess   []float64
	method  string
	tol     float64
	maxIter int
	// Analytic model parameters
	curvature float64
	quartic   float64
	barrier   float64
	confining float64
	// Config / preset selection
	configFile string
	preset     string
	// Sweep parameters
	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepPoints int
	workers     int
	browse      bool
	// Plot range
	plotLo float64
	plotHi float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trapmodes",
		Short: "axial equilibrium and normal-mode solver for trapped ion chains",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".trapmodes", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve [model]",
		Short: "solve equilibrium positions and mode spectrum",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	solveCmd.Flags().IntVar(&ions, "ions", 2, "number of ions")
	solveCmd.Flags().Float64Var(&massAMU, "mass", config.DefaultMassAMU, "ion mass (amu)")
	solveCmd.Flags().StringVar(&unit, "unit", config.DefaultUnit, "coordinate unit tag")
	solveCmd.Flags().Float64SliceVar(&guess, "guess", nil, "initial positions")
	solveCmd.Flags().StringVar(&method, "method", "newton", "solver method (newton|damped)")
	solveCmd.Flags().Float64Var(&tol, "tol", 1e-10, "force tolerance")
	solveCmd.Flags().IntVar(&maxIter, "max-iter", 200, "iteration bound")
	solveCmd.Flags().Float64Var(&curvature, "curvature", config.DefaultCurvature, "harmonic/quartic curvature")
	solveCmd.Flags().Float64Var(&quartic, "quartic", 0.5, "quartic coefficient")
	solveCmd.Flags().Float64Var(&barrier, "barrier", 1.0, "double-well barrier")
	solveCmd.Flags().Float64Var(&confining, "confining", 2.0, "double-well confinement")
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "sweep a model parameter and solve at each point",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&ions, "ions", 2, "number of ions")
	sweepCmd.Flags().Float64Var(&massAMU, "mass", config.DefaultMassAMU, "ion mass (amu)")
	sweepCmd.Flags().StringVar(&unit, "unit", config.DefaultUnit, "coordinate unit tag")
	sweepCmd.Flags().Float64SliceVar(&guess, "guess", nil, "initial positions")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "curvature", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.5, "sweep start")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 5.0, "sweep end")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 10, "sweep points")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = NumCPU)")
	sweepCmd.Flags().BoolVar(&browse, "browse", false, "open interactive browser")

	plotCmd := &cobra.Command{
		Use:   "plot [model]",
		Short: "plot a model potential",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().Float64Var(&curvature, "curvature", config.DefaultCurvature, "harmonic/quartic curvature")
	plotCmd.Flags().Float64Var(&quartic, "quartic", 0.5, "quartic coefficient")
	plotCmd.Flags().Float64Var(&barrier, "barrier", 1.0, "double-well barrier")
	plotCmd.Flags().Float64Var(&confining, "confining", 2.0, "double-well confinement")
	plotCmd.Flags().Float64Var(&plotLo, "lo", -1, "plot range start")
	plotCmd.Flags().Float64Var(&plotHi, "hi", 1, "plot range end")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list models and presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(solveCmd, sweepCmd, plotCmd, listCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig merges preset/config-file/flag inputs, flags winning.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("no preset %q for model %q", preset, cfg.Model)
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Model = args[0]
		}
	}

	if cmd.Flags().Changed("ions") {
		cfg.Ions = ions
	}
	if cmd.Flags().Changed("mass") {
		cfg.MassAMU = massAMU
	}
	if cmd.Flags().Changed("unit") {
		cfg.Unit = unit
	}
	if cmd.Flags().Changed("guess") {
		cfg.Guess = guess
	}
	if cmd.Flags().Changed("method") {
		cfg.Solver.Method = method
	}
	if cmd.Flags().Changed("tol") {
		cfg.Solver.Tol = tol
	}
	if cmd.Flags().Changed("max-iter") {
		cfg.Solver.MaxIter = maxIter
	}
	if cmd.Flags().Changed("curvature") {
		cfg.Params.Curvature = curvature
	}
	if cmd.Flags().Changed("quartic") {
		cfg.Params.Quartic = quartic
	}
	if cmd.Flags().Changed("barrier") {
		cfg.Params.Barrier = barrier
	}
	if cmd.Flags().Changed("confining") {
		cfg.Params.Confining = confining
	}

	if len(cfg.Guess) != cfg.Ions {
		// Spread a default guess over ±ions/2 units.
		cfg.Guess = make([]float64, cfg.Ions)
		for i := range cfg.Guess {
			cfg.Guess[i] = float64(i) - float64(cfg.Ions-1)/2
		}
	}
	return cfg, nil
}

func buildRequest(cfg *config.Config) axial.Request {
	return axial.Request{
		Ions:          cfg.Ions,
		Mass:          trap.MassAMU(cfg.MassAMU),
		Unit:          cfg.Unit,
		Degree:        cfg.Spline.Degree,
		Smoothing:     cfg.Spline.Smoothing,
		Guess:         cfg.Guess,
		Method:        equilibrium.Method(cfg.Solver.Method),
		Tol:           cfg.Solver.Tol,
		MaxIter:       cfg.Solver.MaxIter,
		MinSeparation: cfg.Solver.MinSeparation,
		Symmetric: equilibrium.SymmetricOptions{
			Start:   cfg.Symmetric.Start,
			Step:    cfg.Symmetric.Step,
			MaxScan: cfg.Symmetric.MaxScan,
		},
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	registry := axial.NewRegistry()
	model, err := registry.GetModel(cfg.Model, cfg.ModelParams())
	if err != nil {
		return err
	}

	res, err := axial.SolveAnalytic(model, buildRequest(cfg))
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(cfg.Model, cfg.Ions, cfg.MassAMU, cfg.Unit, res)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s · %d ions · %.3f amu", cfg.Model, cfg.Ions, cfg.MassAMU)))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ion\tposition (%s)\n", cfg.Unit)
	for i, p := range res.Positions {
		fmt.Fprintf(w, "%d\t%.6g\n", i, p)
	}
	w.Flush()

	fmt.Println()
	fmt.Println(viz.RenderSpectrum(res.Spectrum.Frequencies))

	lo, hi := plotRange(res.Positions)
	fmt.Println(viz.RenderPotential(model, lo, hi, res.Positions, 60))
	fmt.Println()
	fmt.Printf("saved as %s\n", runID)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if sweepPoints < 2 {
		return fmt.Errorf("sweep needs at least 2 points")
	}

	registry := axial.NewRegistry()
	req := buildRequest(cfg)

	jobs := make([]sweep.Job, sweepPoints)
	for i := range jobs {
		val := sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepPoints-1)
		params := cfg.ModelParams()
		params[sweepParam] = val
		model, err := registry.GetModel(cfg.Model, params)
		if err != nil {
			return err
		}
		jobs[i] = sweep.Job{
			Name: fmt.Sprintf("%s=%.4g", sweepParam, val),
			Pot:  model,
			Req:  req,
		}
	}

	outcomes := sweep.Run(context.Background(), jobs, workers)

	if browse {
		return tui.RunBrowser(outcomes)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "point\tlowest mode\thighest mode\tstatus\n")
	for _, out := range outcomes {
		if out.Err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t%v\n", out.Name, out.Err)
			continue
		}
		f := out.Result.Spectrum.Frequencies
		fmt.Fprintf(w, "%s\t%.6g Hz\t%.6g Hz\tok\n", out.Name, f[0], f[len(f)-1])
	}
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	registry := axial.NewRegistry()
	model, err := registry.GetModel(cfg.Model, cfg.ModelParams())
	if err != nil {
		return err
	}
	fmt.Println(viz.RenderPotential(model, plotLo, plotHi, nil, 70))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "id\tmodel\tions\tlowest mode\ttime\n")
	for _, r := range runs {
		lowest := "-"
		if len(r.Frequencies) > 0 {
			lowest = fmt.Sprintf("%.6g Hz", r.Frequencies[0])
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.Model, r.Ions, lowest, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	rec, err := store.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func listPresets(cmd *cobra.Command, args []string) error {
	registry := axial.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "model\tpresets\n")
	for _, model := range registry.ListModels() {
		names := config.ListPresets(model)
		fmt.Fprintf(w, "%s\t%v\n", model, names)
	}
	return w.Flush()
}

// plotRange widens the equilibrium extent for a readable plot.
func plotRange(positions []float64) (float64, float64) {
	lo, hi := -1.0, 1.0
	for _, p := range positions {
		if 3*p < lo {
			lo = 3 * p
		}
		if 3*p > hi {
			hi = 3 * p
		}
	}
	return lo, hi
}
