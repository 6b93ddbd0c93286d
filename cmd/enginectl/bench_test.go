package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBench(t *testing.T) {
	report, err := RunBench(BenchParams{
		Capacity:    32,
		Count:       1000,
		Iterations:  500,
		Subscribers: 4,
		Seed:        42,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(report.RunID)
	require.NoError(t, err)

	assert.Equal(t, 32, report.Pool.Capacity)
	assert.Equal(t, 32, report.Pool.SegmentsFull, "1000 objects in 32-slot segments")
	assert.Less(t, report.Pool.SegmentsAfter, report.Pool.SegmentsFull)
	assert.Equal(t, uint64(500), report.Pool.Stats.Reuses)

	assert.Equal(t, 4*500, report.Signal.Invocations)
	assert.Equal(t, 500, report.Signal.OneShotFired)
}

func TestRunBench_InvalidParams(t *testing.T) {
	_, err := RunBench(BenchParams{Capacity: 32, Count: 0, Iterations: 1})
	require.Error(t, err)
}

func TestBenchCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true

	out, err := captureOutput(t, func() error {
		return runBench(BenchParams{Capacity: 64, Count: 200, Iterations: 100, Subscribers: 2, Seed: 1})
	})
	require.NoError(t, err)
	assertJSON(t, out)
	assertContains(t, out, []string{`"churn_ops_per_sec"`, `"one_shot_fired": 100`})
}

func TestBenchCommand_Text(t *testing.T) {
	resetFlags()

	out, err := captureOutput(t, func() error {
		return runBench(BenchParams{Capacity: 64, Count: 2000, Iterations: 1500, Subscribers: 2, Seed: 1})
	})
	require.NoError(t, err)
	assertContains(t, out, []string{"Fill 2,000 objects", "Reuses: 1,500", "One-shot fired: 1,500"})
}
