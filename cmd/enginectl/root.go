package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/enginekit/cmd/enginectl/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	// cfg holds environment defaults, loaded before any command runs.
	cfg Config

	numbers = message.NewPrinter(language.English)
)

var rootCmd = &cobra.Command{
	Use:   "enginectl",
	Short: "Exercise and inspect the engine's slot pool and signal primitives",
	Long: `enginectl drives the slot allocator and event dispatcher outside the
engine. It benchmarks allocation and broadcast workloads and replays recorded
operation traces with invariant checking, which is how allocator regressions
are reproduced from bug reports.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		return initLogging(cfg)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	err := rootCmd.Execute()
	if cerr := logger.Close(); cerr != nil {
		fmt.Fprintln(os.Stderr, "failed to close log file:", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogging(c Config) error {
	level, err := c.SlogLevel()
	if err != nil {
		return err
	}
	if verbose {
		level = logger.LevelFor(true)
	}
	return logger.Init(logger.Options{
		Enabled: c.Log || verbose,
		LogDir:  c.LogDir,
		Level:   level,
	})
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatNumber renders n with thousands separators.
func formatNumber[N int | int64 | uint64](n N) string {
	return numbers.Sprintf("%d", n)
}
