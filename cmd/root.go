package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/monaco-sim/monaco-sim/sim"
)

var (
	// CLI flags for the simulation run
	requestPath string        // Path to the YAML request file
	logLevel    string        // Log verbosity level
	outputPath  string        // Where to write the JSON report ("" = stdout summary only)
	seed        int64         // Master seed; overrides the request when set
	iterations  int           // Scenario count; overrides the request when set
	periods     int           // Period count; overrides the request when set
	workers     int           // Worker goroutines (0 = GOMAXPROCS)
	timeout     time.Duration // Wall-clock budget (0 = unlimited)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "monaco",
	Short: "Monte Carlo simulator for venture capital fund outcomes",
}

// runCmd executes one simulation request from a YAML file plus flag overrides
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a fund simulation request",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if requestPath == "" {
			logrus.Fatalf("Request file not provided. Exiting simulation.")
		}
		req, err := sim.LoadRequest(requestPath)
		if err != nil {
			logrus.Fatalf("unable to read request; %v", err)
		}
		if cmd.Flags().Changed("seed") {
			req.Seed = &seed
		}
		if cmd.Flags().Changed("iterations") {
			req.NumIterations = iterations
		}
		if cmd.Flags().Changed("periods") {
			req.NumPeriods = periods
		}

		runID := uuid.NewString()
		logrus.Infof("Starting run %s: fund=$%.0fM, %d iterations, %d periods",
			runID, req.FundSizeM, req.NumIterations, req.NumPeriods)

		startTime := time.Now()
		report, err := sim.Simulate(context.Background(), req, sim.EngineOptions{
			Workers: workers,
			Timeout: timeout,
		})
		if err != nil {
			var cancelled *sim.CancelledError
			if errors.As(err, &cancelled) {
				logrus.Fatalf("run %s cancelled after %d scenarios", runID, cancelled.CompletedScenarios)
			}
			logrus.Fatalf("simulation failed: %v", err)
		}

		report.Print()
		if outputPath != "" {
			if err := writeReport(outputPath, runID, startTime, report); err != nil {
				logrus.Fatalf("writing report: %v", err)
			}
			logrus.Infof("report written to %s", outputPath)
		}
		logrus.Info("Simulation complete.")
	},
}

// reportEnvelope wraps the pure report with run metadata for file output.
// Identity and timing live here, not in the report, which stays a pure
// function of (request, seed).
type reportEnvelope struct {
	RunID     string          `json:"run_id"`
	ElapsedMS int64           `json:"elapsed_ms"`
	Report    *sim.FundReport `json:"report"`
}

func writeReport(path, runID string, startTime time.Time, report *sim.FundReport) error {
	data, err := json.MarshalIndent(reportEnvelope{
		RunID:     runID,
		ElapsedMS: time.Since(startTime).Milliseconds(),
		Report:    report,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&requestPath, "request", "", "Path to the YAML simulation request")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write the full JSON report to this path")
	runCmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "Master seed for scenario RNG streams")
	runCmd.Flags().IntVar(&iterations, "iterations", 0, "Number of Monte Carlo scenarios (overrides request)")
	runCmd.Flags().IntVar(&periods, "periods", 0, "Number of simulation periods (overrides request)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Scenario worker goroutines (0 = GOMAXPROCS)")
	runCmd.Flags().DurationVar(&timeout, "timeout", 0, "Wall-clock budget for the run (0 = unlimited)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(presetsCmd)
}
