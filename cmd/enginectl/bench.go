package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joshuapare/enginekit/cmd/enginectl/logger"
	"github.com/joshuapare/enginekit/pool"
	"github.com/joshuapare/enginekit/signal"
)

var (
	benchCapacity    int
	benchCount       int
	benchIterations  int
	benchSubscribers int
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchCapacity, "capacity", 0, "Segment capacity (default $ENGINECTL_CAPACITY)")
	cmd.Flags().IntVar(&benchCount, "count", 100000, "Live objects to hold in the pool")
	cmd.Flags().IntVar(&benchIterations, "iterations", 1000000, "Churn and emit iterations")
	cmd.Flags().IntVar(&benchSubscribers, "subscribers", 16, "Subscribers connected to the signal")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Benchmark pool churn and signal broadcast",
		Long: `The bench command fills a pool, churns it with random release/acquire
pairs, compacts it, and measures signal broadcast throughput with a mix of
persistent and one-shot subscribers.

Example:
  enginectl bench
  enginectl bench --count 1000000 --capacity 4096 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			capacity := benchCapacity
			if capacity == 0 {
				capacity = cfg.Capacity
			}
			return runBench(BenchParams{
				Capacity:    capacity,
				Count:       benchCount,
				Iterations:  benchIterations,
				Subscribers: benchSubscribers,
				Seed:        cfg.Seed,
			})
		},
	}
}

// BenchParams configures a benchmark run.
type BenchParams struct {
	Capacity    int   `json:"capacity"`
	Count       int   `json:"count"`
	Iterations  int   `json:"iterations"`
	Subscribers int   `json:"subscribers"`
	Seed        int64 `json:"seed"`
}

// PoolBench holds pool benchmark results.
type PoolBench struct {
	Capacity      int           `json:"capacity"`
	FillTime      time.Duration `json:"fill_ns"`
	ChurnTime     time.Duration `json:"churn_ns"`
	ChurnOpsPerS  float64       `json:"churn_ops_per_sec"`
	SegmentsFull  int           `json:"segments_before_shrink"`
	SegmentsAfter int           `json:"segments_after_shrink"`
	Relocated     int           `json:"relocated"`
	Stats         pool.Stats    `json:"stats"`
}

// SignalBench holds signal benchmark results.
type SignalBench struct {
	EmitTime     time.Duration `json:"emit_ns"`
	EmitsPerS    float64       `json:"emits_per_sec"`
	Invocations  int           `json:"invocations"`
	OneShotFired int           `json:"one_shot_fired"`
}

// BenchReport is the output of a benchmark run.
type BenchReport struct {
	RunID  string      `json:"run_id"`
	Params BenchParams `json:"params"`
	Pool   PoolBench   `json:"pool"`
	Signal SignalBench `json:"signal"`
}

type benchObject struct {
	id    int
	frame int
}

// RunBench executes the workloads described by p.
func RunBench(p BenchParams) (*BenchReport, error) {
	if p.Count <= 0 || p.Iterations <= 0 || p.Subscribers < 0 {
		return nil, fmt.Errorf("invalid bench parameters: count=%d iterations=%d subscribers=%d",
			p.Count, p.Iterations, p.Subscribers)
	}
	rng := rand.New(rand.NewSource(p.Seed))
	report := &BenchReport{RunID: uuid.NewString(), Params: p}

	// Pool: fill, churn, compact.
	objects := pool.New(p.Capacity,
		func(id int) benchObject { return benchObject{id: id} },
		pool.WithReset(func(o *benchObject, id int) { o.id, o.frame = id, 0 }),
		pool.WithLogger[benchObject, int](logger.L),
	)
	handles := make([]pool.Handle, p.Count)

	start := time.Now()
	for i := range handles {
		handles[i] = objects.Acquire(i)
	}
	report.Pool.FillTime = time.Since(start)

	start = time.Now()
	for i := range p.Iterations {
		j := rng.Intn(len(handles))
		if err := objects.Release(handles[j]); err != nil {
			return nil, fmt.Errorf("churn release: %w", err)
		}
		handles[j] = objects.Acquire(p.Count + i)
	}
	report.Pool.ChurnTime = time.Since(start)
	report.Pool.ChurnOpsPerS = perSecond(2*p.Iterations, report.Pool.ChurnTime)

	// Empty every other segment, then compact.
	report.Pool.SegmentsFull = objects.SegmentCount()
	for _, h := range handles {
		if h.Segment()%2 == 1 {
			if err := objects.Release(h); err != nil {
				return nil, fmt.Errorf("drain release: %w", err)
			}
		}
	}
	report.Pool.Relocated = len(objects.Shrink())
	report.Pool.SegmentsAfter = objects.SegmentCount()
	report.Pool.Capacity = objects.Capacity()
	report.Pool.Stats = objects.Stats()
	if err := objects.Validate(); err != nil {
		return nil, err
	}

	// Signal: persistent subscribers plus a one-shot reconnected every frame.
	frames := signal.New[int]()
	invocations := 0
	for range p.Subscribers {
		frames.Connect(func(int) { invocations++ })
	}
	oneShots := 0
	var rearm func(int)
	rearm = func(int) {
		oneShots++
		frames.ConnectOnce(rearm)
	}
	frames.ConnectOnce(rearm)

	start = time.Now()
	for i := range p.Iterations {
		frames.Emit(i)
	}
	report.Signal.EmitTime = time.Since(start)
	report.Signal.EmitsPerS = perSecond(p.Iterations, report.Signal.EmitTime)
	report.Signal.Invocations = invocations
	report.Signal.OneShotFired = oneShots

	logger.Info("bench finished", "run_id", report.RunID,
		"churn_ops_per_sec", report.Pool.ChurnOpsPerS, "emits_per_sec", report.Signal.EmitsPerS)
	return report, nil
}

func perSecond(ops int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(ops) / d.Seconds()
}

func runBench(p BenchParams) error {
	printVerbose("Running bench: capacity=%d count=%d iterations=%d subscribers=%d\n",
		p.Capacity, p.Count, p.Iterations, p.Subscribers)

	report, err := RunBench(p)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nBench %s\n\n", report.RunID)
	printInfo("Pool (capacity %s):\n", formatNumber(report.Pool.Capacity))
	printInfo("  Fill %s objects: %s\n", formatNumber(p.Count), report.Pool.FillTime)
	printInfo("  Churn: %s ops/s\n", formatNumber(int64(report.Pool.ChurnOpsPerS)))
	printInfo("  Reuses: %s\n", formatNumber(report.Pool.Stats.Reuses))
	printInfo("  Shrink: %s -> %s segments (%s relocated)\n\n",
		formatNumber(report.Pool.SegmentsFull),
		formatNumber(report.Pool.SegmentsAfter),
		formatNumber(report.Pool.Relocated))
	printInfo("Signal (%s subscribers):\n", formatNumber(p.Subscribers))
	printInfo("  Emit: %s emits/s\n", formatNumber(int64(report.Signal.EmitsPerS)))
	printInfo("  Invocations: %s\n", formatNumber(report.Signal.Invocations))
	printInfo("  One-shot fired: %s\n", formatNumber(report.Signal.OneShotFired))
	return nil
}
