package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joshuapare/enginekit/cmd/enginectl/logger"
)

var (
	replayValidate bool
	replayCapacity int
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().BoolVar(&replayValidate, "validate", false, "Check pool invariants after every step")
	cmd.Flags().IntVar(&replayCapacity, "capacity", 0, "Segment capacity when the trace sets none (default $ENGINECTL_CAPACITY)")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <trace.yaml>",
		Short: "Replay a recorded pool/signal operation trace",
		Long: `The replay command executes a YAML trace of pool and signal operations
and reports the outcome of every step. A step marked expect_error must fail and
every other step must succeed; with --validate the pool's free chain, handle
identities and live counts are checked after each step.

Example:
  enginectl replay crash.yaml --validate
  enginectl replay crash.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
}

func runReplay(args []string) error {
	path := args[0]
	printVerbose("Reading trace: %s\n", path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	trace, err := ParseTrace(f)
	if err != nil {
		return err
	}

	capacity := replayCapacity
	if capacity == 0 {
		capacity = cfg.Capacity
	}

	runID := uuid.NewString()
	logger.Info("replay started", "run_id", runID, "trace", path, "steps", len(trace.Steps))

	report, replayErr := Replay(trace, capacity, replayValidate, runID)
	if replayErr != nil {
		logger.Error("replay failed", "run_id", runID, "error", replayErr)
	}

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
		return replayErr
	}

	printInfo("Replay %s (%s steps)\n", runID, formatNumber(len(report.Steps)))
	printInfo("%s", describeSteps(report.Steps))
	if replayErr != nil {
		return replayErr
	}
	printInfo("\nFinal state:\n")
	printInfo("  Live slots: %s\n", formatNumber(report.Count))
	printInfo("  Segments: %s\n", formatNumber(report.Segments))
	printInfo("  Subscriptions: %s\n", formatNumber(report.Subscriptions))
	return nil
}
