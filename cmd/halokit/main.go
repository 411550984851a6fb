package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/halokit/internal/kernel"
	"github.com/san-kum/halokit/internal/logging"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool
	verbose    bool

	scaleFactor  float64
	logMMin      float64
	logMMax      float64
	points       int
	massFunction string
	haloBias     string
	massDef      string
	noStrict     bool

	plot    bool
	save    bool
	csvOut  bool
	jsonOut bool

	log *logging.Logger
)

// main registers the commands and flags and runs the root command. It
// exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "halokit",
		Short:         "halo mass functions, bias and linear cosmology",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		RunE: runExplore,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".halokit", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "cosmology preset")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "surface every kernel error as it is raised")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	hmfCmd := &cobra.Command{
		Use:   "hmf",
		Short: "halo mass function dn/dlog10M",
		RunE:  runMassFunction,
	}
	massFlags(hmfCmd)
	hmfCmd.Flags().StringVar(&massFunction, "mass-function", "", "mass function (default from config)")

	biasCmd := &cobra.Command{
		Use:   "bias",
		Short: "linear halo bias",
		RunE:  runBias,
	}
	massFlags(biasCmd)
	biasCmd.Flags().StringVar(&haloBias, "bias", "", "halo bias (default from config)")

	sigmaCmd := &cobra.Command{
		Use:   "sigma",
		Short: "rms linear density contrast sigma(M)",
		RunE:  runSigma,
	}
	massFlags(sigmaCmd)

	fftlogCmd := &cobra.Command{
		Use:   "fftlog",
		Short: "linear correlation function via FFTLog",
		RunE:  runCorrelation,
	}
	outputFlags(fftlogCmd)
	fftlogCmd.Flags().Float64Var(&scaleFactor, "a", 1, "scale factor")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "show solver and spline parameters",
		RunE:  runParams,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list cosmology presets",
		RunE:  runPresets,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list mass functions and halo biases",
		RunE:  runModels,
	}

	threadsCmd := &cobra.Command{
		Use:   "threads",
		Short: "number of worker threads available to the kernel",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(kernel.Threads())
		},
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive explorer",
		RunE:  runExplore,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(hmfCmd, biasCmd, sigmaCmd, fftlogCmd, paramsCmd, presetsCmd,
		modelsCmd, threadsCmd, exploreCmd, listCmd, exportCmd)

	err := rootCmd.Execute()
	if log != nil {
		if err != nil {
			log.Error("command failed", zap.Error(err))
		}
		_ = log.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func massFlags(cmd *cobra.Command) {
	outputFlags(cmd)
	cmd.Flags().Float64Var(&scaleFactor, "a", 1, "scale factor")
	cmd.Flags().Float64Var(&logMMin, "mmin", 10, "log10 of the smallest mass [Msun]")
	cmd.Flags().Float64Var(&logMMax, "mmax", 15, "log10 of the largest mass [Msun]")
	cmd.Flags().IntVar(&points, "n", 20, "number of masses")
	cmd.Flags().StringVar(&massDef, "mass-def", "", "mass definition such as fof, 200m, 500c, vir")
	cmd.Flags().BoolVar(&noStrict, "no-strict", false, "allow mass definitions the fit was not calibrated for")
}

func outputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&plot, "plot", false, "draw an ascii chart")
	cmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	cmd.Flags().BoolVar(&csvOut, "csv", false, "write csv to stdout")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "write json to stdout")
}

func setupLogging() {
	cfg := logging.DefaultConfig()
	cfg.Level = "warn"
	if verbose {
		cfg = logging.DevelopmentConfig()
	}
	l, err := logging.New(cfg)
	if err != nil {
		l = logging.Nop()
	}
	log = l

	kernel.SetLogger(log.Logger)
	kernel.SetDebugPolicy(debug)
}
