package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"

	"github.com/san-kum/odesolve/internal/analysis"
	"github.com/san-kum/odesolve/internal/automation"
	"github.com/san-kum/odesolve/internal/config"
	"github.com/san-kum/odesolve/internal/experiment"
	"github.com/san-kum/odesolve/internal/export"
	"github.com/san-kum/odesolve/internal/expr"
	"github.com/san-kum/odesolve/internal/storage"
	"github.com/san-kum/odesolve/internal/tui"
	"github.com/san-kum/odesolve/internal/viz"
)

var (
	dataDir   string
	verbosity int
	theme     string

	expression string
	x0         float64
	xn         float64
	y0         float64
	step       float64
	methods    []string
	configFile string
	preset     string

	save       bool
	writeCfg   string
	svgPath    string
	showTable  bool
	showXY     bool
	showField  bool
	plotWidth  int
	plotHeight int

	steps []float64
)

// main registers the commands and starts the interactive shell when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "odesolve",
		Short: "compare euler and runge-kutta 4 on y' = f(x, y)",
		RunE:  runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odesolve", "data directory")
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "log verbosity on stderr")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	addProblemFlags(rootCmd)

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "integrate one problem with every method",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	addProblemFlags(solveCmd)
	solveCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	solveCmd.Flags().StringVar(&writeCfg, "write-config", "", "write the resolved problem to a yaml config file")
	solveCmd.Flags().StringVar(&svgPath, "svg", "", "write the figure to an svg file")
	solveCmd.Flags().BoolVar(&showTable, "table", false, "print every sample")
	solveCmd.Flags().BoolVar(&showXY, "xy", false, "also draw the braille x/y plot")
	solveCmd.Flags().BoolVar(&showField, "field", false, "also draw the direction field of f")
	solveCmd.Flags().IntVar(&plotWidth, "width", 70, "chart width")
	solveCmd.Flags().IntVar(&plotHeight, "height", 15, "chart height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&showTable, "table", false, "print every sample")
	showCmd.Flags().BoolVar(&showXY, "xy", false, "also draw the braille x/y plot")
	showCmd.Flags().IntVar(&plotWidth, "width", 70, "chart width")
	showCmd.Flags().IntVar(&plotHeight, "height", 15, "chart height")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a saved run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&svgPath, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEQUATION\tX0\tXN\tY0\tH")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\ty' = %s\t%g\t%g\t%g\t%g\n", name, p.Expression, p.X0, p.Xn, p.Y0, p.H)
			}
			return w.Flush()
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every problem listed in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&save, "save", false, "save each run to the data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "rerun one problem over several step sizes",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addProblemFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&steps, "steps", []float64{0.2, 0.1, 0.05, 0.01}, "step sizes")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal shell",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	addProblemFlags(tuiCmd)

	rootCmd.AddCommand(solveCmd, listCmd, showCmd, exportCSVCmd, exportJSONCmd, svgCmd, presetsCmd, scenarioCmd, sweepCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addProblemFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	cmd.Flags().StringVar(&expression, "expr", d.Expression, "right-hand side f(x, y); functions: "+strings.Join(expr.Functions(), ", "))
	cmd.Flags().Float64Var(&x0, "x0", d.X0, "start of the interval")
	cmd.Flags().Float64Var(&xn, "xn", d.Xn, "end of the interval")
	cmd.Flags().Float64Var(&y0, "y0", d.Y0, "initial condition y(x0)")
	cmd.Flags().Float64Var(&step, "h", d.H, "step size")
	cmd.Flags().StringSliceVar(&methods, "method", d.Methods, "methods to run")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset problem")
}

func newLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintln(os.Stderr, prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: verbosity})
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("expr") {
		cfg.Expression = expression
	}
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	if flags.Changed("xn") {
		cfg.Xn = xn
	}
	if flags.Changed("y0") {
		cfg.Y0 = y0
	}
	if flags.Changed("h") {
		cfg.H = step
	}
	if flags.Changed("method") {
		cfg.Methods = methods
	}
	if theme != "" {
		cfg.Theme = theme
	}
	if _, err := viz.LookupTheme(cfg.Theme); err != nil {
		return nil, err
	}

	return cfg, nil
}

func solve(ctx context.Context, runner *experiment.Runner, cfg *config.Config) (*experiment.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rhs, err := expr.Compile(cfg.Expression)
	if err != nil {
		return nil, fmt.Errorf("equation %q: %w", cfg.Expression, err)
	}
	return runner.Compare(ctx, cfg.Expression, rhs, cfg.Problem(), cfg.Methods...)
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log := newLogger()
	runner := experiment.NewRunner(nil, log)

	start := time.Now()
	result, err := solve(cmd.Context(), runner, cfg)
	if err != nil {
		return err
	}
	log.V(1).Info("solved", "elapsed", time.Since(start).String())

	printResult(result, viz.GetTheme(cfg.Theme))

	if showField {
		rhs, err := expr.Compile(cfg.Expression)
		if err != nil {
			return err
		}
		df := analysis.NewDirectionField(rhs, result.Trajectories, plotWidth, plotHeight)
		fmt.Println()
		fmt.Println(viz.Subtle.Render("direction field (o euler, • rk4)"))
		fmt.Print(analysis.DirectionFieldToASCII(df, result.Trajectories))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if writeCfg != "" {
		if err := config.Save(writeCfg, cfg); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("config: %s\n", writeCfg)
	}

	if svgPath != "" {
		if err := writeSVGFile(svgPath, result); err != nil {
			return err
		}
		fmt.Printf("figure: %s\n", svgPath)
	}

	return nil
}

func printResult(result *experiment.Result, th viz.Theme) {
	fmt.Println(viz.HeaderStyle.Render(viz.Title(result.Expression)))
	fmt.Println(viz.Subtle.Render(result.Problem.String()))
	fmt.Println()
	fmt.Println(viz.Chart(result.Trajectories, plotWidth, plotHeight, th))
	fmt.Println()

	if showXY {
		fmt.Println(viz.PlotXY(result.Trajectories, plotWidth, plotHeight/2+2, th))
		fmt.Println(viz.Legend(result.Trajectories, th))
		fmt.Println()
	}

	fmt.Println(viz.SummaryTable(result.Trajectories, th))
	if len(result.Metrics) > 0 {
		fmt.Println(viz.MetricsLine(result.Metrics))
	}

	if showTable {
		fmt.Println()
		printSamples(result)
	}
}

// printSamples lists the samples side by side, one column per method.
func printSamples(result *experiment.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	longest := 0
	header := []string{"I", "X"}
	for _, t := range result.Trajectories {
		header = append(header, strings.ToUpper(t.Method))
		longest = max(longest, t.Len())
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for i := 0; i < longest; i++ {
		x := result.Problem.X0 + float64(i)*result.Problem.H
		row := []string{fmt.Sprint(i), fmt.Sprintf("%.6g", x)}
		for _, t := range result.Trajectories {
			if i < t.Len() {
				row = append(row, fmt.Sprintf("%.8g", t.Points[i].Y))
			} else {
				row = append(row, "-")
			}
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	w.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tEQUATION\tX0\tXN\tY0\tH\tMETHODS")

	for _, run := range runs {
		names := make([]string, len(run.Methods))
		for i, m := range run.Methods {
			names[i] = m.Method
			if m.Truncated {
				names[i] += "*"
			}
		}
		fmt.Fprintf(w, "%s\t%s\ty' = %s\t%g\t%g\t%g\t%g\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Expression,
			run.Problem.X0,
			run.Problem.Xn,
			run.Problem.Y0,
			run.Problem.H,
			strings.Join(names, ","),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	th, err := viz.LookupTheme(theme)
	if err != nil {
		return err
	}

	fmt.Printf("run %s (%s)\n\n", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"))
	printResult(result, th)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trajs, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}

	if len(trajs) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	if err := storage.WriteCSV(w, trajs); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta.ID, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	if svgPath == "" {
		return export.SVG(os.Stdout, result, export.DefaultOptions())
	}
	return writeSVGFile(svgPath, result)
}

func writeSVGFile(path string, result *experiment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.SVG(f, result, export.DefaultOptions()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runScenario(cmd *cobra.Command, args []string) error {
	th, err := viz.LookupTheme(theme)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	log := newLogger()
	runner := experiment.NewRunner(nil, log)

	results, err := automation.RunScenario(cmd.Context(), log, sc, runner)
	if err != nil {
		return err
	}

	var st *storage.Store
	if save {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	if sc.Name != "" {
		fmt.Println(viz.HeaderStyle.Render(sc.Name))
	}
	if sc.Description != "" {
		fmt.Println(viz.Subtle.Render(sc.Description))
	}
	for i, res := range results {
		fmt.Printf("\n%d. %s  %s\n", i+1, viz.Title(res.Expression), viz.Subtle.Render(res.Problem.String()))
		fmt.Println(viz.SummaryTable(res.Trajectories, th))
		if len(res.Metrics) > 0 {
			fmt.Println(viz.MetricsLine(res.Metrics))
		}
		if st != nil {
			runID, err := st.Save(res)
			if err != nil {
				return err
			}
			fmt.Printf("run id: %s\n", runID)
		}
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log := newLogger()
	sweep := &automation.StepSweep{
		Expression: cfg.Expression,
		Problem:    cfg.Problem(),
		Steps:      steps,
	}
	rows, err := automation.RunSweep(cmd.Context(), log, sweep, experiment.NewRunner(nil, log))
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render(viz.Title(cfg.Expression)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "H\tSAMPLES\tEULER\tRK4\tMAX DIV\tFINAL DIV\tCOMPLETE")
	for _, r := range rows {
		fmt.Fprintf(w, "%g\t%d\t%.8g\t%.8g\t%.3e\t%.3e\t%t\n",
			r.H, r.Samples, r.EulerFinal, r.RK4Final, r.Divergence.Max, r.Divergence.Final, !r.Truncated)
	}
	return w.Flush()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return tui.Run(cfg, experiment.NewRunner(nil, logr.Discard()))
}
