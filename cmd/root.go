package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/opsim/opsim/sim"
	"github.com/opsim/opsim/sim/metadata"
)

var (
	configPath    string // Simulator configuration file (.yaml or legacy .conf)
	metadataPath  string // Overrides the config's meta-data file
	logLevel      string // Diagnostic log verbosity
	logTo         string // Overrides the config's log destination
	logFilePath   string // Overrides the config's log file path
	logBoundaries bool   // Emit phrases for program/application boundaries
	timerMode     string // Overrides the config's timer mode
	printMetrics  bool   // Print the elapsed-time summary after the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "opsim",
	Short: "Replay program meta-data as a timed operating-system execution log",
}

// runOptions carries the flag values that override the configuration file.
type runOptions struct {
	ConfigPath    string
	MetadataPath  string
	LogTo         string
	LogFilePath   string
	LogBoundaries bool
	TimerMode     string
	Metrics       bool
}

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig(opts runOptions) (Config, error) {
	if opts.ConfigPath == "" {
		return Config{}, fmt.Errorf("config file not provided")
	}
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return Config{}, err
	}
	if opts.MetadataPath != "" {
		cfg.MetadataFile = opts.MetadataPath
	}
	if opts.LogTo != "" {
		cfg.Log = opts.LogTo
	}
	if opts.LogFilePath != "" {
		cfg.LogFilePath = opts.LogFilePath
	}
	if opts.LogBoundaries {
		cfg.LogBoundaries = true
	}
	if opts.TimerMode != "" {
		cfg.Timer = opts.TimerMode
	}
	if cfg.MetadataFile == "" {
		return Config{}, fmt.Errorf("meta-data file not provided")
	}
	return cfg, nil
}

// runSimulation loads inputs, runs the simulator, and writes the execution
// log to stdout and/or the configured file.
func runSimulation(opts runOptions, stdout io.Writer) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	simCfg := cfg.SimConfig()
	if err := simCfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ops, err := metadata.LoadFile(cfg.MetadataFile)
	if err != nil {
		return err
	}

	sink, err := sim.NewLogSink(simCfg.LogDestination, simCfg.LogFilePath, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil {
			logrus.Errorf("Error closing log file %s: %v", simCfg.LogFilePath, closeErr)
		}
	}()

	logrus.Infof("Starting simulation with %d operations, log=%q, timer=%s",
		len(ops), simCfg.LogDestination, simCfg.TimerMode)
	startTime := time.Now()

	s := sim.NewSimulator(simCfg, ops, sink, nil)
	runErr := s.Run()

	logrus.Infof("Simulated %.6fs in %v wall time", s.Clock, time.Since(startTime))
	if opts.Metrics {
		if err := s.Metrics.Print(stdout); err != nil {
			return err
		}
	}
	return runErr
}

// runCmd executes the simulation using the config file and CLI overrides
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation and write the execution log",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		opts := runOptions{
			ConfigPath:    configPath,
			MetadataPath:  metadataPath,
			LogTo:         logTo,
			LogFilePath:   logFilePath,
			LogBoundaries: logBoundaries,
			TimerMode:     timerMode,
			Metrics:       printMetrics,
		}
		if err := runSimulation(opts, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Simulator configuration file (.yaml, or legacy .conf)")
	rootCmd.PersistentFlags().StringVar(&metadataPath, "metadata", "", "Program meta-data file (overrides the config's metadata_file)")

	runCmd.Flags().StringVar(&logTo, "log-to", "", `Log destination: "Log to Both", "Log to File" or "Log to Monitor"`)
	runCmd.Flags().StringVar(&logFilePath, "log-file", "", "Execution log file path")
	runCmd.Flags().BoolVar(&logBoundaries, "log-boundaries", false, "Also log program and application boundary phrases")
	runCmd.Flags().StringVar(&timerMode, "timer", "", "Timer mode: spin (busy-poll) or sleep")
	runCmd.Flags().BoolVar(&printMetrics, "metrics", false, "Print elapsed-time metrics as JSON after the run")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(segmentCmd)
}
