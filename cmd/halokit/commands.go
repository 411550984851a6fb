package main

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/halokit/internal/analysis"
	"github.com/san-kum/halokit/internal/config"
	"github.com/san-kum/halokit/internal/halos"
	"github.com/san-kum/halokit/internal/storage"
	"github.com/san-kum/halokit/internal/tui"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// loadConfig resolves the config file, then the preset, then the command
// line overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (have %v)", preset, config.ListPresets())
		}
		cfg.Cosmology = p
	}
	if massFunction != "" {
		cfg.MassFunction = massFunction
	}
	if haloBias != "" {
		cfg.HaloBias = haloBias
	}
	if massDef != "" {
		cfg.MassDef = massDef
	}
	if noStrict {
		cfg.Strict = false
	}
	return cfg, nil
}

func sweepOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.A = scaleFactor
	opts.LogMMin = logMMin
	opts.LogMMax = logMMax
	opts.N = points
	return opts
}

func runMassFunction(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := sweepOptions()
	if opts.MassFunc, err = cfg.GetMassFunc(); err != nil {
		return err
	}
	return sweep(cmd, cfg, analysis.MassFunction, opts)
}

func runBias(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := sweepOptions()
	if opts.Bias, err = cfg.GetHaloBias(); err != nil {
		return err
	}
	return sweep(cmd, cfg, analysis.HaloBias, opts)
}

func runSigma(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return sweep(cmd, cfg, analysis.Sigma, sweepOptions())
}

func runCorrelation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := analysis.DefaultOptions()
	opts.A = scaleFactor
	return sweep(cmd, cfg, analysis.Correlation, opts)
}

func sweep(cmd *cobra.Command, cfg *config.Config, q analysis.Quantity, opts analysis.Options) error {
	c, err := cfg.NewCosmology()
	if err != nil {
		return err
	}
	log.Debug("sweep",
		zap.String("quantity", string(q)),
		zap.Float64("a", opts.A),
		zap.Int("n", opts.N),
		zap.String("mass_def", cfg.MassDef),
	)

	curve, err := analysis.Sweep(c, q, opts)
	if err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Command:     cmd.Name(),
		Cosmology:   cfg.Cosmology,
		MassDef:     cfg.MassDef,
		ScaleFactor: opts.A,
	}
	if opts.MassFunc != nil {
		meta.MassFunction = opts.MassFunc.Name()
	}
	if opts.Bias != nil {
		meta.HaloBias = opts.Bias.Name()
	}
	tbl := curve.Table()

	switch {
	case csvOut:
		err = storage.WriteCSV(os.Stdout, tbl)
	case jsonOut:
		err = storage.ExportJSON(os.Stdout, meta, tbl)
	default:
		printCurve(curve)
	}
	if err != nil {
		return err
	}

	if plot {
		fmt.Println()
		fmt.Println(curve.Plot(80, 15))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(meta, tbl)
		if err != nil {
			return err
		}
		log.Info("saved run", zap.String("id", runID), zap.String("dir", dataDir))
		fmt.Fprintf(os.Stderr, "saved %s\n", runID)
	}
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func printCurve(curve *analysis.Curve) {
	t := newTable(curve.XLabel, curve.YLabel)
	for i := range curve.X {
		t.Row(formatFloat(curve.X[i]), formatFloat(curve.Y[i]))
	}
	fmt.Println(headerStyle.Render(curve.Name))
	fmt.Println(t.String())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func runParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pc, err := cfg.Params()
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("gsl_params"))
	t := newTable("KEY", "VALUE")
	for _, k := range pc.GSL.Keys() {
		v, _ := pc.GSL.Get(k)
		t.Row(k, formatFloat(v))
	}
	fmt.Println(t.String())

	fmt.Println(headerStyle.Render("spline_params"))
	t = newTable("KEY", "VALUE")
	for _, k := range pc.Spline.Keys() {
		if v, err := pc.Spline.Get(k); err == nil {
			t.Row(k, formatFloat(v))
			continue
		}
		s, _ := pc.Spline.SplineType(k)
		t.Row(k, s)
	}
	fmt.Println(t.String())
	return nil
}

func runPresets(cmd *cobra.Command, args []string) error {
	t := newTable("PRESET", "OMEGA_C", "OMEGA_B", "H", "N_S", "SIGMA8")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		t.Row(name, formatFloat(p.OmegaC), formatFloat(p.OmegaB), formatFloat(p.H),
			formatFloat(p.NS), formatFloat(p.Sigma8))
	}
	fmt.Println(t.String())
	return nil
}

func runModels(cmd *cobra.Command, args []string) error {
	t := newTable("KIND", "NAME")
	for _, name := range halos.ListMassFuncs() {
		t.Row("mass function", name)
	}
	for _, name := range halos.ListHaloBiases() {
		t.Row("halo bias", name)
	}
	fmt.Println(t.String())
	return nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := tea.NewProgram(tui.NewInteractiveApp(cfg), tea.WithAltScreen())
	_, err = p.Run()
	return err
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

	t := newTable("ID", "COMMAND", "TIME", "MODEL", "MASS DEF", "A", "ROWS")
	for _, run := range runs {
		model := run.MassFunction
		if run.HaloBias != "" {
			model = run.HaloBias
		}
		t.Row(
			run.ID,
			run.Command,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			model,
			run.MassDef,
			formatFloat(run.ScaleFactor),
			strconv.Itoa(run.Rows),
		)
	}
	fmt.Println(t.String())
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tbl, err := st.LoadTable(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, tbl)
}
