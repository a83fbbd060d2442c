package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-isatty"
	"github.com/san-kum/sortviz/internal/automation"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/experiment"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/selsort"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	size       int
	speed      int
	seed       int64
	generator  string
	theme      string
	low        int
	high       int
	// svg command
	tick    int
	outPath string
	// sweep command
	sweepMin  int
	sweepMax  int
	sweepStep int
	sweepRuns int
)

var logger = logging.GetLogger("cli")

// main runs the root command, which opens the interactive visualizer when
// stdout is a terminal.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers every command and binds the flags to their package
// variables, resetting them to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sortviz",
		Short: "step-by-step selection sort visualizer",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logging.SetLogLevel(lvl)
			return nil
		},
		RunE: runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sortviz", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&size, "size", config.DefaultSize, "array size (5-50)")
	rootCmd.PersistentFlags().IntVar(&speed, "speed", config.DefaultSpeed, "tick interval in ms (100-1000)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	rootCmd.PersistentFlags().StringVar(&generator, "generator", config.DefaultGenerator, "array generator")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	rootCmd.PersistentFlags().IntVar(&low, "low", config.DefaultLow, "smallest generated value")
	rootCmd.PersistentFlags().IntVar(&high, "high", config.DefaultHigh, "largest generated value")

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "choose a preset from a menu, then visualize",
		RunE: func(cmd *cobra.Command, args []string) error {
			closer, err := logToFile()
			if err != nil {
				return err
			}
			defer closer.Close()
			return viz.RunMenu(experiment.NewRegistry(), export.Snapshotter(filepath.Join(dataDir, "snapshots")))
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "sort headlessly and save the run",
		RunE:  runHeadless,
	}

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "print every micro-step of one sort",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTrace(cmd, os.Stdout)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render one step of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().IntVar(&tick, "tick", -1, "step to render (default: last)")
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tSPEED\tGENERATOR\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%dms\t%s\t%s\n", name, p.Size, p.Speed, p.Generator, p.Theme)
			}
			return w.Flush()
		},
	}

	generatorsCmd := &cobra.Command{
		Use:   "generators",
		Short: "list array generators",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := experiment.NewRegistry()
			for _, name := range r.List() {
				fmt.Printf("  %-14s %s\n", name, r.Describe(name))
			}
			return nil
		},
	}

	saveConfigCmd := &cobra.Command{
		Use:   "save-config [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of sorts",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "average counters over many seeds at each size",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepMin, "min", config.MinSize, "smallest size")
	sweepCmd.Flags().IntVar(&sweepMax, "max", config.MaxSize, "largest size")
	sweepCmd.Flags().IntVar(&sweepStep, "step", config.SizeStep, "size increment")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 20, "seeds per size")

	rootCmd.AddCommand(pickCmd, runCmd, traceCmd, listCmd, plotCmd, exportJSONCmd, svgCmd, presetsCmd, generatorsCmd, saveConfigCmd, scenarioCmd, sweepCmd)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file and explicit flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("generator") {
		cfg.Generator = generator
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("low") {
		cfg.Low = low
	}
	if flags.Changed("high") {
		cfg.High = high
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	cfg.Normalize()
	return cfg, nil
}

func newExperiment(cfg *config.Config) (*experiment.Experiment, error) {
	exp := experiment.New(experiment.FromConfig(cfg))
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, err
	}
	return exp, nil
}

// logToFile keeps log lines off the terminal the TUI is drawing on.
func logToFile() (io.Closer, error) {
	return logging.ToFile(filepath.Join(dataDir, "sortviz.log"))
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		logger.Info("stdout is not a terminal, printing trace instead")
		return printTrace(cmd, os.Stdout)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}

	closer, err := logToFile()
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.WithField("size", cfg.Size).WithField("speed", cfg.Speed).Info("starting visualizer")
	m := viz.NewModel(*cfg, exp, viz.WithSnapshot(export.Snapshotter(filepath.Join(dataDir, "snapshots"))))
	return viz.Run(m)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("sorting %d values (%s, seed %d)...\n", cfg.Size, cfg.Generator, cfg.Seed)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(exp.Config(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.Frames))
	fmt.Printf("before: %v\n", result.Initial)
	fmt.Printf("after:  %v\n", result.Final.Values)
	fmt.Println("\ncounters:")
	fmt.Printf("  iterations:  %d\n", result.Final.Iterations)
	fmt.Printf("  comparisons: %d\n", result.Final.Comparisons)
	fmt.Printf("  swaps:       %d\n", result.Final.Swaps)
	fmt.Printf("  animated:    %v at %dms/step\n", time.Duration(len(result.Frames))*cfg.Interval(), cfg.Speed)

	return nil
}

func printTrace(cmd *cobra.Command, out io.Writer) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "initial: %v\n\n", result.Initial)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICK\tSTEP\tITER\tCMP\tSWAP\tVALUES")
	for _, f := range result.Frames {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%v\n",
			f.Tick,
			describe(f.Event, f.State),
			f.State.Iterations,
			f.State.Comparisons,
			f.State.Swaps,
			f.State.Values,
		)
	}
	return w.Flush()
}

// describe explains a micro-step that has already happened. s is the state
// after the step.
func describe(ev selsort.Event, s selsort.State) string {
	switch ev.Kind {
	case selsort.EventIterationStart:
		return fmt.Sprintf("start iteration at [%d]", ev.Current)
	case selsort.EventCompare:
		if ev.NewMinimum {
			return fmt.Sprintf("compare [%d]<[%d]: new min %d", ev.Compare, ev.Min, s.Values[ev.Compare])
		}
		return fmt.Sprintf("compare [%d]>=[%d]: keep min", ev.Compare, ev.Min)
	case selsort.EventSwap:
		return fmt.Sprintf("swap [%d] and [%d]", ev.Current, ev.Min)
	case selsort.EventInPlace:
		return fmt.Sprintf("[%d] already in place", ev.Current)
	case selsort.EventDone:
		return "sorted"
	}
	return ev.Kind.String()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s (%d steps)\n", sc.Name, len(sc.Steps))
	results, err := automation.RunScenario(context.Background(), sc, experiment.NewRegistry(), st)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tGENERATOR\tSIZE\tITER\tCMP\tSWAPS\tRUN")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
			i+1,
			r.Config.Generator,
			r.Config.Size,
			r.Result.Final.Iterations,
			r.Result.Final.Comparisons,
			r.Result.Final.Swaps,
			r.RunID,
		)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.SizeSweep{
		Generator: cfg.Generator,
		MinSize:   sweepMin,
		MaxSize:   sweepMax,
		Step:      sweepStep,
		Runs:      sweepRuns,
		Seed:      cfg.Seed,
		Low:       cfg.Low,
		High:      cfg.High,
	}
	results, err := automation.RunSweep(context.Background(), sweep, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tRUNS\tCMP\tSWAPS(avg)\tSWAPS(min)\tSWAPS(max)")
	swaps := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.0f\t%.2f\t%d\t%d\n", r.Size, r.Runs, r.MeanComparisons, r.MeanSwaps, r.MinSwaps, r.MaxSwaps)
		swaps = append(swaps, r.MeanSwaps)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(swaps) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(swaps, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("mean swaps by size")))
	}
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
	fmt.Fprintln(w, "ID\tGENERATOR\tTIME\tSIZE\tITER\tCMP\tSWAPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Generator,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Iterations,
			run.Comparisons,
			run.Swaps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if len(meta.Initial) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("generator: %s\n", meta.Generator)
	fmt.Printf("size: %d\n\n", meta.Size)

	series := []struct {
		caption string
		data    []int
	}{
		{"values before", meta.Initial},
		{"values after", meta.Final},
		{"comparisons per iteration", meta.PerIteration},
	}
	for _, s := range series {
		if len(s.data) < 2 {
			continue
		}
		graph := asciigraph.Plot(toFloats(s.data),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return fmt.Errorf("no steps recorded for %s", runID)
	}

	rec, err := pickStep(steps, tick)
	if err != nil {
		return err
	}

	s := stateFromRecord(rec)
	if err := s.Validate(); err != nil {
		return err
	}
	th := viz.GetTheme(theme)
	frame := viz.BuildFrame(s, rec.Event != selsort.EventDone, viz.FrameOptions{MaxValue: meta.High})
	svg := export.FrameToSVG(frame, th)

	if outPath == "" {
		_, err := fmt.Fprintln(os.Stdout, svg)
		return err
	}
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	if len(meta.PerIteration) > 1 {
		seriesPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + "_comparisons.svg"
		if err := os.WriteFile(seriesPath, []byte(export.SeriesToSVG(meta.PerIteration, 480, 160, string(th.Accent))), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s and %s\n", outPath, seriesPath)
		return nil
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

// pickStep returns the record for tick, counted from 1. A negative tick
// selects the last record.
func pickStep(steps []storage.StepRecord, tick int) (storage.StepRecord, error) {
	if len(steps) == 0 {
		return storage.StepRecord{}, fmt.Errorf("no steps recorded")
	}
	if tick < 0 {
		return steps[len(steps)-1], nil
	}
	if tick < 1 || tick > len(steps) {
		return storage.StepRecord{}, fmt.Errorf("tick %d out of range 1..%d", tick, len(steps))
	}
	return steps[tick-1], nil
}

// stateFromRecord rebuilds the engine state a steps.csv row was written from.
func stateFromRecord(rec storage.StepRecord) selsort.State {
	s := selsort.New(rec.Values)
	for i := 0; i < rec.Finalized; i++ {
		s.Finalized = append(s.Finalized, i)
	}
	s.Current, s.Compare, s.Min = rec.Current, rec.Compare, rec.Min
	s.Counters = rec.Counters
	s.Done = rec.Event == selsort.EventDone
	return s
}

func toFloats(v []int) []float64 {
	f := make([]float64, len(v))
	for i, x := range v {
		f[i] = float64(x)
	}
	return f
}
