package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/geodyn/internal/analysis"
	"github.com/san-kum/geodyn/internal/config"
	"github.com/san-kum/geodyn/internal/geodesic"
	"github.com/san-kum/geodyn/internal/geometry"
	"github.com/san-kum/geodyn/internal/storage"
	"github.com/san-kum/geodyn/internal/tensor"
	"github.com/san-kum/geodyn/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	stepSize   float64
	paramRange float64
	adaptive   bool
	tolerance  float64
	// Sweep parameters
	scaleMin   float64
	scaleMax   float64
	sweepSteps int
	// Divergence perturbation
	perturbation float64
	// Frame rate for live view
	frameRate int
	jsonOut   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "geodyn",
		Short: "spacetime curvature and geodesic lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level:      level,
				TimeFormat: time.Kitchen,
			})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".geodyn", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	curvatureCmd := &cobra.Command{
		Use:   "curvature",
		Short: "compute the metric and its curvature",
		RunE:  runCurvature,
	}
	addScenarioFlags(curvatureCmd)
	curvatureCmd.Flags().BoolVar(&jsonOut, "json", false, "emit JSON instead of text")

	geodesicCmd := &cobra.Command{
		Use:   "geodesic",
		Short: "integrate a geodesic and store the run",
		RunE:  runGeodesic,
	}
	addScenarioFlags(geodesicCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "ramp the matter density and chart the Ricci scalar",
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&scaleMin, "scale-min", 0.0, "initial density scale")
	sweepCmd.Flags().Float64Var(&scaleMax, "scale-max", 1.0, "final density scale")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 50, "sweep steps")

	divergeCmd := &cobra.Command{
		Use:   "diverge",
		Short: "measure separation growth of neighboring geodesics",
		RunE:  runDiverge,
	}
	addScenarioFlags(divergeCmd)
	divergeCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-3, "initial spatial offset")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg, frameRate)
		},
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(curvatureCmd, geodesicCmd, sweepCmd, divergeCmd, liveCmd,
		listCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in scenario name")
	cmd.Flags().Float64Var(&stepSize, "step", config.DefaultStepSize, "affine parameter step")
	cmd.Flags().Float64Var(&paramRange, "range", config.DefaultParameterRange, "affine parameter range")
	cmd.Flags().BoolVar(&adaptive, "adaptive", false, "use adaptive step control")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "adaptive error tolerance")
}

// loadScenario resolves preset, config file, and flag overrides, in
// that order of increasing precedence.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("step") {
		cfg.StepSize = stepSize
	}
	if cmd.Flags().Changed("range") {
		cfg.ParameterRange = paramRange
	}
	if cmd.Flags().Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.Tolerance = tolerance
	}

	return cfg, nil
}

func buildManifold(cfg *config.Config) *geometry.Manifold {
	m := geometry.NewManifold()
	m.SetSingularityThreshold(cfg.SingularityThreshold)
	m.UpdateMetric(cfg.Density, cfg.FlowVectors())
	return m
}

func newSolver(m *geometry.Manifold, cfg *config.Config) (*geodesic.Solver, string, error) {
	if cfg.Adaptive {
		s, err := geodesic.NewAdaptive(m, cfg.StepSize, cfg.Tolerance, cfg.MinDt, cfg.MaxDt)
		return s, "adaptive-rk4", err
	}
	s, err := geodesic.New(m, cfg.StepSize)
	return s, "rk4", err
}

// curvatureReport is the --json payload of the curvature command.
type curvatureReport struct {
	Metric        [4][4]float64 `json:"metric"`
	RicciScalar   float64       `json:"ricci_scalar"`
	Singularities []tensor.Vec4 `json:"singularities"`
}

func runCurvature(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	m := buildManifold(cfg)

	if jsonOut {
		return emitCurvatureJSON(m)
	}

	fmt.Println("metric tensor:")
	g := m.Metric().Data()
	for i := 0; i < 4; i++ {
		fmt.Printf("  [% .6e % .6e % .6e % .6e]\n",
			g[i*4], g[i*4+1], g[i*4+2], g[i*4+3])
	}

	gamma, err := m.ChristoffelSymbols()
	if err != nil {
		return err
	}
	nonzero := 0
	for _, v := range gamma.Data() {
		if v != 0 {
			nonzero++
		}
	}
	fmt.Printf("\nnonzero christoffel components: %d / 64\n", nonzero)

	scalar, err := m.RicciScalar()
	if err != nil {
		return err
	}
	fmt.Printf("ricci scalar: %.6e\n", scalar)

	records, err := m.DetectSingularities()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no singularities detected")
		return nil
	}
	for _, p := range records {
		fmt.Printf("singularity at (%.3f, %.3f, %.3f, %.3f)\n", p[0], p[1], p[2], p[3])
	}
	return nil
}

func emitCurvatureJSON(m *geometry.Manifold) error {
	scalar, err := m.RicciScalar()
	if err != nil {
		return err
	}
	records, err := m.DetectSingularities()
	if err != nil {
		return err
	}
	if records == nil {
		records = []tensor.Vec4{}
	}

	report := curvatureReport{
		RicciScalar:   scalar,
		Singularities: records,
	}
	g := m.Metric().Data()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			report.Metric[i][j] = g[i*4+j]
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func runGeodesic(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	m := buildManifold(cfg)

	solver, integName, err := newSolver(m, cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Println("integrating geodesic...")
	start := time.Now()

	path, err := solver.Solve(cfg.StartPoint(), tensor.Vec4(cfg.Velocity), cfg.ParameterRange)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	scalar, err := m.RicciScalar()
	if err != nil {
		return err
	}
	records, err := m.DetectSingularities()
	if err != nil {
		return err
	}

	scenario := preset
	if scenario == "" {
		scenario = "custom"
	}
	runID, err := st.Save(storage.RunMetadata{
		Scenario:       scenario,
		StepSize:       cfg.StepSize,
		ParameterRange: cfg.ParameterRange,
		Integrator:     integName,
		Density:        cfg.Density,
		RicciScalar:    scalar,
		Singularities:  len(records),
	}, path)
	if err != nil {
		return err
	}

	final := path.Points[len(path.Points)-1]
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(path.Points))
	fmt.Printf("final event: t=%.4f x=(%.4f, %.4f, %.4f)\n",
		final.T, final.Spatial[0], final.Spatial[1], final.Spatial[2])
	fmt.Printf("ricci scalar: %.6e\n", scalar)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	m := geometry.NewManifold()

	points, err := analysis.CurvatureSweep(m, cfg.Density, cfg.FlowVectors(), scaleMin, scaleMax, sweepSteps)
	if err != nil {
		return err
	}

	data := make([]float64, len(points))
	peak := 0.0
	for i, p := range points {
		data[i] = p.RicciScalar
		if math.Abs(p.RicciScalar) > math.Abs(peak) {
			peak = p.RicciScalar
		}
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("ricci scalar, density scale %.2f..%.2f", scaleMin, scaleMax)),
	)
	fmt.Println(graph)
	fmt.Printf("\npeak scalar: %.6e\n", peak)
	return nil
}

func runDiverge(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	m := buildManifold(cfg)

	separations, err := analysis.PathDivergence(m, cfg.StartPoint(), tensor.Vec4(cfg.Velocity),
		perturbation, cfg.StepSize, cfg.ParameterRange)
	if err != nil {
		return err
	}
	if len(separations) == 0 {
		return fmt.Errorf("no samples produced")
	}

	graph := asciigraph.Plot(separations,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("geodesic separation"),
	)
	fmt.Println(graph)
	fmt.Printf("\ninitial separation: %.3e\n", separations[0])
	fmt.Printf("final separation:   %.3e\n", separations[len(separations)-1])
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tRANGE\tSTEP\tINTEG\tR\tSING")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.4f\t%s\t%.3e\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.ParameterRange,
			run.StepSize,
			run.Integrator,
			run.RicciScalar,
			run.Singularities,
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

	path, err := st.LoadPath(runID)
	if err != nil {
		return err
	}
	if len(path.Points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(path.Points))

	captions := []string{"coordinate time t", "x", "y", "z"}
	for axis := 0; axis < 4; axis++ {
		data := make([]float64, len(path.Points))
		for i, p := range path.Points {
			if axis == 0 {
				data[i] = p.T
			} else {
				data[i] = p.Spatial[axis-1]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(captions[axis]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

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
	path, err := st.LoadPath(args[0])
	if err != nil {
		return err
	}
	if len(path.Points) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"tau", "t", "x", "y", "z"}); err != nil {
		return err
	}

	n := len(path.Points)
	for i, p := range path.Points {
		tau := 0.0
		if n > 1 {
			tau = path.TotalParameter * float64(i) / float64(n-1)
		}
		row := []string{
			strconv.FormatFloat(tau, 'f', 6, 64),
			strconv.FormatFloat(p.T, 'f', 6, 64),
			strconv.FormatFloat(p.Spatial[0], 'f', 6, 64),
			strconv.FormatFloat(p.Spatial[1], 'f', 6, 64),
			strconv.FormatFloat(p.Spatial[2], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
