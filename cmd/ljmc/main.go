package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mkumar097/MonteCarloProject/internal/analysis"
	"github.com/mkumar097/MonteCarloProject/internal/automation"
	"github.com/mkumar097/MonteCarloProject/internal/config"
	"github.com/mkumar097/MonteCarloProject/internal/experiment"
	"github.com/mkumar097/MonteCarloProject/internal/export"
	"github.com/mkumar097/MonteCarloProject/internal/sim"
	"github.com/mkumar097/MonteCarloProject/internal/storage"
	"github.com/mkumar097/MonteCarloProject/internal/viz"
)

var (
	dataDir  string
	logLevel string
	// Run parameters
	configFile      string
	preset          string
	numParticles    int
	density         float64
	temperature     float64
	cutoff          float64
	inputFile       string
	steps           int
	maxDisplacement float64
	outputFreq      int
	tune            bool
	tuneFreq        int
	equilibration   int
	seed            int64
	// Live view
	saveLive bool
	// Analysis and export
	skip    int
	blocks  int
	outPath string
	// Sweep
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepPoints int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ljmc",
		Short: "Metropolis Monte Carlo for the Lennard-Jones fluid",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ljmc", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level (trace, debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store its trajectory",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().BoolVar(&saveLive, "save", false, "store the run when the view closes")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the energy trajectory of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [run_id]",
		Short: "trajectory statistics with block-averaged error",
		Args:  cobra.ExactArgs(1),
		RunE:  statsRun,
	}
	statsCmd.Flags().IntVar(&skip, "skip", 0, "equilibration steps to discard (default: the run's setting)")
	statsCmd.Flags().IntVar(&blocks, "blocks", 10, "number of blocks for the standard error")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the energy trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and trajectory to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render the energy trajectory to a PNG or SVG file",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (.png or .svg, default <run_id>.png)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tN\tDENSITY\tTEMP\tSTEPS\tTUNE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\t%d\t%v\n",
					name, p.System.NumParticles, p.System.Density, p.System.Temperature, p.Run.Steps, p.Run.TuneDisplacement)
			}
			return w.Flush()
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a yaml scenario one after another",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "mean energy across a range of one state parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "temperature", "parameter to vary (temperature, density, max_displacement)")
	sweepCmd.Flags().Float64Var(&sweepMin, "from", 0.8, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepMax, "to", 2.0, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 5, "number of parameter values")
	sweepCmd.Flags().IntVar(&blocks, "blocks", 10, "number of blocks for the standard error")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, statsCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportPNGCmd, presetsCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.IntVarP(&numParticles, "particles", "n", config.DefaultParticles, "number of particles")
	f.Float64Var(&density, "density", config.DefaultDensity, "reduced density")
	f.Float64Var(&temperature, "temp", config.DefaultTemperature, "reduced temperature")
	f.Float64Var(&cutoff, "cutoff", 0, "interaction cutoff (0: a third of the box)")
	f.StringVar(&inputFile, "input", "", "starting coordinates file (overrides --particles)")
	f.IntVar(&steps, "steps", sim.DefaultNumSteps, "number of Monte Carlo steps")
	f.Float64Var(&maxDisplacement, "max-disp", sim.DefaultMaxDisplacement, "initial maximum displacement")
	f.IntVar(&outputFreq, "freq", sim.DefaultOutputFreq, "progress report interval in steps (0 disables)")
	f.BoolVar(&tune, "tune", false, "tune the maximum displacement toward 40% acceptance")
	f.IntVar(&tuneFreq, "tune-freq", sim.DefaultTuneFreq, "steps between tuning events")
	f.IntVar(&equilibration, "equil", 0, "leading steps left out of averages")
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
}

// buildConfig resolves the run configuration: preset, then config file, then
// any flags set explicitly on the command line.
func buildConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	cfg.Seed = seed
	label := "custom"

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		label = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		label = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.System.NumParticles = numParticles
	}
	if flags.Changed("density") {
		cfg.System.Density = density
	}
	if flags.Changed("temp") {
		cfg.System.Temperature = temperature
	}
	if flags.Changed("cutoff") {
		cfg.System.Cutoff = cutoff
	}
	if flags.Changed("input") {
		cfg.System.InputFile = inputFile
	}
	if flags.Changed("steps") {
		cfg.Run.Steps = steps
	}
	if flags.Changed("max-disp") {
		cfg.Run.MaxDisplacement = maxDisplacement
	}
	if flags.Changed("freq") {
		cfg.Run.OutputFreq = outputFreq
	}
	if flags.Changed("tune") {
		cfg.Run.TuneDisplacement = tune
	}
	if flags.Changed("tune-freq") {
		cfg.Run.TuneFreq = tuneFreq
	}
	if flags.Changed("equil") {
		cfg.Run.Equilibration = equilibration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, label, nil
}

func setupExperiment(cmd *cobra.Command) (*experiment.Experiment, string, error) {
	cfg, label, err := buildConfig(cmd)
	if err != nil {
		return nil, "", err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, "", err
	}

	sys := exp.System()
	logrus.WithFields(logrus.Fields{
		"particles":   sys.N(),
		"density":     sys.Density(),
		"temperature": sys.Temperature,
		"box_length":  sys.BoxLength,
		"cutoff":      sys.Cutoff,
		"seed":        cfg.Seed,
	}).Info("system ready")

	return exp, label, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, label, err := setupExperiment(cmd)
	if err != nil {
		return err
	}
	exp.Simulator().SetReporter(sim.NewLogReporter(logrus.StandardLogger()))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) || result == nil {
			return err
		}
		logrus.Warnf("interrupted after %d steps; storing partial run", result.StepsTaken)
	}
	elapsed := time.Since(start)

	runID, err := st.Save(label, exp.Config(), exp.System(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println(summarize(result))
	return nil
}

func summarize(result *sim.Result) string {
	values := map[string]float64{
		"final_energy":     result.TotalEnergy(),
		"pair_energy":      result.PairEnergy,
		"tail_correction":  result.TailCorrection,
		"acceptance_ratio": result.AcceptanceRatio(),
		"max_displacement": result.Displacement.Max,
		"energy_drift":     result.EnergyDrift,
		"steps":            float64(result.StepsTaken),
	}
	for name, v := range result.Metrics {
		values["metric."+name] = v
	}
	return viz.Summary("run summary", values)
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, label, err := setupExperiment(cmd)
	if err != nil {
		return err
	}

	// Progress lines would tear the terminal UI.
	logrus.SetLevel(logrus.WarnLevel)

	chain, err := exp.Simulator().Start()
	if err != nil {
		return err
	}

	m := viz.NewLive(chain, exp.System().BoxLength, label)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if live, ok := final.(viz.Live); ok && live.Err() != nil {
		return live.Err()
	}

	if !saveLive {
		return nil
	}

	result, err := chain.Finish()
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(label, exp.Config(), exp.System(), result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
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
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tN\tDENSITY\tTEMP\tSTEPS\tE/N\tACC")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3f\t%.3f\t%d\t%.5f\t%.3f\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumParticles,
			run.Density,
			run.Temperature,
			run.Steps,
			run.FinalEnergy,
			run.AcceptanceRatio,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	trajectory, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, trajectory, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, trajectory, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if len(trajectory) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("state: N=%d density=%.3f T=%.3f\n", meta.NumParticles, meta.Density, meta.Temperature)
	fmt.Printf("samples: %d\n\n", len(trajectory))

	graph := asciigraph.Plot(trajectory,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("reduced energy per particle vs step"),
	)
	fmt.Println(graph)

	return nil
}

func statsRun(cmd *cobra.Command, args []string) error {
	meta, trajectory, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("skip") {
		skip = meta.Equilibration
	}

	s, err := analysis.Summarize(trajectory, skip, blocks)
	if err != nil {
		return err
	}

	values := map[string]float64{
		"samples": float64(s.Samples),
		"mean":    s.Mean,
		"std_dev": s.StdDev,
		"min":     s.Min,
		"max":     s.Max,
		"std_err": s.StdErr,
		"blocks":  float64(s.Blocks),
	}
	if c, err := analysis.Autocorrelation(trajectory, skip, 1); err == nil {
		values["autocorr_lag1"] = c
	}

	fmt.Println(viz.Summary(fmt.Sprintf("%s (skip %d)", meta.ID, skip), values))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trajectory, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	if len(trajectory) == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.WriteTrajectory(os.Stdout, trajectory)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, trajectory, err := loadRun(args[0])
	if err != nil {
		return err
	}

	return export.WriteJSON(os.Stdout, *meta, trajectory)
}

func exportPNG(cmd *cobra.Command, args []string) error {
	meta, trajectory, err := loadRun(args[0])
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = meta.ID + ".png"
	}

	opts := export.DefaultPlotOptions()
	opts.Title = fmt.Sprintf("%s: N=%d, density %.3f, T %.3f", meta.Label, meta.NumParticles, meta.Density, meta.Temperature)
	opts.Equilibration = meta.Equilibration

	if err := export.PlotTrajectory(path, trajectory, opts); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcomes, err := automation.RunScenario(ctx, scenario, st)
	for _, o := range outcomes {
		fmt.Printf("%s: run %s, E/N %.5f, acceptance %.3f\n", o.Name, o.RunID, o.Result.TotalEnergy(), o.Result.AcceptanceRatio())
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.Sweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumPoints: sweepPoints,
		Blocks:    blocks,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tE/N\tSTDERR\tACC\tMAX_DISP\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.5f\t%.5f\t%.3f\t%.4f\n", r.ParamValue, r.MeanEnergy, r.StdErr, r.AcceptanceRatio, r.MaxDisplacement)
	}
	return w.Flush()
}
