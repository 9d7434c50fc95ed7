package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/fieldtrace/internal/config"
	"github.com/san-kum/fieldtrace/internal/equilibrium"
	"github.com/san-kum/fieldtrace/internal/flow"
	"github.com/san-kum/fieldtrace/internal/integrators"
	"github.com/san-kum/fieldtrace/internal/store"
	"github.com/san-kum/fieldtrace/internal/trace"
	"github.com/san-kum/fieldtrace/internal/viz"
)

var (
	configFile string
	problem    string
	integrator string
	dt         float64
	duration   float64
	tangent    bool
	adaptive   bool
	tolerance  float64
	initState  string
	preset     string
	k          float64
	eqFile     string
	volume     int
	outPath    string
	frameRate  int
	verbose    bool

	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldtrace",
		Short: "field-line and Hamiltonian trajectory tracing with tangent maps",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "trace a trajectory and print a summary",
		RunE:  runTrace,
	}
	addRunFlags(traceCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "trace with a live terminal view",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "trace and render a PNG in the problem's section axes",
		RunE:  runPlot,
	}
	addRunFlags(plotCmd)
	plotCmd.Flags().StringVar(&outPath, "out", "trace.png", "output file")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "trace and export JSON",
		RunE:  runExport,
	}
	addRunFlags(exportCmd)
	exportCmd.Flags().StringVar(&outPath, "out", "trace.json", "output file")

	csvCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "trace and export CSV",
		RunE:  runExportCSV,
	}
	addRunFlags(csvCmd)
	csvCmd.Flags().StringVar(&outPath, "out", "trace.csv", "output file")

	volumesCmd := &cobra.Command{
		Use:   "volumes [equilibrium.yaml]",
		Short: "list the volumes of an equilibrium dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  listVolumes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [problem]",
		Short: "list available presets for a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for problem: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, n := range names {
				fmt.Printf("  %s\n", n)
			}
			return nil
		},
	}

	rootCmd.AddCommand(traceCmd, liveCmd, plotCmd, exportCmd, csvCmd, volumesCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&problem, "problem", "", "problem: slab, uniform, dipole, loop, spec")
	cmd.Flags().StringVar(&integrator, "integrator", "", "integrator: euler, rk4, rk45")
	cmd.Flags().Float64Var(&dt, "dt", 0, "step size")
	cmd.Flags().Float64Var(&duration, "time", 0, "duration in the time-like variable")
	cmd.Flags().BoolVar(&tangent, "tangent", false, "propagate the tangent matrix")
	cmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive stepping")
	cmd.Flags().Float64Var(&tolerance, "tol", 0, "adaptive tolerance")
	cmd.Flags().StringVar(&initState, "x0", "", "initial state, comma-separated")
	cmd.Flags().StringVar(&preset, "preset", "", "use a preset configuration")
	cmd.Flags().Float64Var(&k, "k", -1, "slab perturbation strength")
	cmd.Flags().StringVar(&eqFile, "eq-file", "", "equilibrium dataset (yaml)")
	cmd.Flags().IntVar(&volume, "volume", 0, "equilibrium sub-volume (1-based)")
}

// buildRun merges config file and flags into a problem, integrator,
// initial state and trace config.
func buildRun() (flow.Problem, integrators.Integrator, flow.State, trace.Config, *config.Config, error) {
	cfg := config.Default()
	if preset != "" {
		if problem == "" {
			return nil, nil, nil, trace.Config{}, nil, fmt.Errorf("--preset needs --problem")
		}
		p := config.GetPreset(problem, preset)
		if p == nil {
			return nil, nil, nil, trace.Config{}, nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets(problem))
		}
		c := *p
		cfg = &c
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, nil, trace.Config{}, nil, err
		}
		cfg = loaded
	}
	if problem != "" {
		cfg.Problem = problem
	}
	if integrator != "" {
		cfg.Integrator = integrator
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	if tangent {
		cfg.Tangent = true
	}
	if adaptive {
		cfg.Adaptive = true
	}
	if tolerance > 0 {
		cfg.Tolerance = tolerance
	}
	if k >= 0 {
		cfg.Slab.K = k
	}
	if eqFile != "" {
		cfg.Equilib.File = eqFile
	}
	if volume > 0 {
		cfg.Equilib.Volume = volume
	}
	if initState != "" {
		parts := strings.Split(initState, ",")
		cfg.InitState = make([]float64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, nil, nil, trace.Config{}, nil, fmt.Errorf("bad --x0 component %q: %w", p, err)
			}
			cfg.InitState[i] = v
		}
	}

	prob, err := cfg.BuildProblem()
	if err != nil {
		return nil, nil, nil, trace.Config{}, nil, err
	}

	var integ integrators.Integrator
	switch cfg.Integrator {
	case "euler":
		integ = integrators.NewEuler()
	case "rk4", "":
		integ = integrators.NewRK4()
	case "rk45":
		integ = integrators.NewRK45()
	default:
		return nil, nil, nil, trace.Config{}, nil, fmt.Errorf("unknown integrator %q", cfg.Integrator)
	}

	tc := trace.Config{
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Tangent:   cfg.Tangent,
		Adaptive:  cfg.Adaptive,
		Tolerance: cfg.Tolerance,
	}
	return prob, integ, flow.State(cfg.InitState), tc, cfg, nil
}

func runTraced() (*trace.Result, flow.Problem, *config.Config, error) {
	prob, integ, x0, tc, cfg, err := buildRun()
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("tracing",
		zap.String("problem", cfg.Problem),
		zap.String("integrator", cfg.Integrator),
		zap.Float64("dt", tc.Dt),
		zap.Float64("duration", tc.Duration),
		zap.Bool("tangent", tc.Tangent),
	)
	res, err := trace.Run(context.Background(), prob, integ, x0, tc)
	if err != nil {
		return nil, nil, nil, err
	}
	if res.Err != nil {
		logger.Warn("trajectory stopped early", zap.Error(res.Err), zap.Int("steps", res.StepsTaken))
	}
	return res, prob, cfg, nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	res, prob, cfg, err := runTraced()
	if err != nil {
		return err
	}

	info := prob.Plot()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "problem\t%s\n", cfg.Problem)
	fmt.Fprintf(w, "steps\t%d\n", res.StepsTaken)
	fmt.Fprintf(w, "final t\t%.6g\n", res.Times[len(res.Times)-1])
	final := prob.ConvertCoords(append(res.Final().Clone(), res.Times[len(res.Times)-1]))
	fmt.Fprintf(w, "final state\t%.6g\n", final)
	if st, ok := trace.StabilitySummary(res); ok {
		fmt.Fprintf(w, "tr M\t%.6g\n", st.Trace)
		fmt.Fprintf(w, "det M\t%.6g\n", st.Det)
		fmt.Fprintf(w, "|det M - 1|\t%.3g\n", st.SymplecticDrift)
	}
	if res.Err != nil {
		fmt.Fprintf(w, "stopped\t%v\n", res.Err)
	}
	w.Flush()

	if len(res.States) > 1 {
		series := make([]float64, len(res.States))
		for i, s := range res.States {
			series[i] = s[info.YIndex]
		}
		fmt.Println(asciigraph.Plot(series, asciigraph.Height(12), asciigraph.Width(72), asciigraph.Caption(info.YLabel)))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	prob, integ, x0, tc, cfg, err := buildRun()
	if err != nil {
		return err
	}
	return viz.Run(prob, integ, x0, tc.Dt, tc.Tangent, frameRate, cfg.Problem)
}

func runPlot(cmd *cobra.Command, args []string) error {
	res, prob, cfg, err := runTraced()
	if err != nil {
		return err
	}
	if err := store.PlotPNG(outPath, cfg.Problem, prob.Plot(), res); err != nil {
		return err
	}
	logger.Info("wrote plot", zap.String("path", outPath))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	res, _, cfg, err := runTraced()
	if err != nil {
		return err
	}
	if err := store.ExportJSON(outPath, cfg.Problem, cfg.Integrator, cfg.Dt, cfg.Duration, res); err != nil {
		return err
	}
	logger.Info("wrote json", zap.String("path", outPath))
	return nil
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	res, prob, _, err := runTraced()
	if err != nil {
		return err
	}
	if err := store.ExportCSV(outPath, prob.Plot(), res); err != nil {
		return err
	}
	logger.Info("wrote csv", zap.String("path", outPath))
	return nil
}

func listVolumes(cmd *cobra.Command, args []string) error {
	d, err := equilibrium.Load(args[0])
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "version\t%.2f\n", d.Version)
	fmt.Fprintf(w, "volumes\t%d\n", d.Mvol)
	fmt.Fprintf(w, "modes\t%d (Mpol=%d, Ntor=%d)\n", d.MN, d.Mpol, d.Ntor)
	fmt.Fprintf(w, "nfp\t%d\n", d.Nfp)
	fmt.Fprintf(w, "stellarator symmetric\t%v\n", d.Istellsym != 0)
	w.Flush()

	for lvol := 1; lvol <= d.Mvol; lvol++ {
		vol, err := equilibrium.NewVolume(d, lvol)
		if err != nil {
			return err
		}
		fmt.Printf("  volume %d: Lrad=%d coordinate-singular=%v\n", lvol, vol.Lrad, vol.CoordSingular)
	}
	return nil
}
