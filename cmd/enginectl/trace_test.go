package main

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/enginekit/pool"
)

func loadTrace(t *testing.T, name string) *Trace {
	t.Helper()
	f, err := os.Open(testTracePath(t, name))
	require.NoError(t, err)
	defer f.Close()

	tr, err := ParseTrace(f)
	require.NoError(t, err)
	return tr
}

func TestReplay_LIFO(t *testing.T) {
	tr := loadTrace(t, "lifo.yaml")
	report, err := Replay(tr, 0, true, "run")
	require.NoError(t, err)

	require.Len(t, report.Steps, 9)
	assert.Equal(t, "0:1", report.Steps[4].Handle, "b's slot is reused first")
	assert.Equal(t, "0:0", report.Steps[5].Handle)
	require.NotNil(t, report.Steps[6].Value)
	assert.Equal(t, 10, *report.Steps[6].Value)
	assert.Contains(t, report.Steps[8].Error, "slot not active")

	assert.Equal(t, 1, report.Count)
	assert.Equal(t, 1, report.Segments)
	assert.Equal(t, uint64(2), report.Stats.Reuses)
}

func TestReplay_Signals(t *testing.T) {
	tr := loadTrace(t, "signals.yaml")
	report, err := Replay(tr, 32, false, "run")
	require.NoError(t, err)

	assert.Equal(t, []string{"C(1)", "B(1)", "A(1)"}, report.Steps[3].Fired)
	assert.Equal(t, []string{"B(2)", "A(2)"}, report.Steps[4].Fired)
	assert.NotEmpty(t, report.Steps[6].Error)
	assert.Equal(t, []string{"A(3)"}, report.Steps[7].Fired)
	assert.Empty(t, report.Steps[9].Fired)
	assert.Zero(t, report.Subscriptions)
}

func TestReplay_ShrinkRemapsNames(t *testing.T) {
	var b strings.Builder
	b.WriteString("capacity: 32\nsteps:\n")
	for i := range 32 {
		b.WriteString("  - {op: acquire, value: " + strconv.Itoa(i) + ", as: first" + strconv.Itoa(i) + "}\n")
	}
	b.WriteString("  - {op: acquire, value: 100, as: survivor}\n")
	for i := range 32 {
		b.WriteString("  - {op: release, ref: first" + strconv.Itoa(i) + "}\n")
	}
	b.WriteString("  - {op: shrink}\n")
	b.WriteString("  - {op: get, ref: survivor}\n")

	tr, err := ParseTrace(strings.NewReader(b.String()))
	require.NoError(t, err)

	report, err := Replay(tr, 0, true, "run")
	require.NoError(t, err)

	last := report.Steps[len(report.Steps)-1]
	assert.Equal(t, pool.MakeHandle(0, 0).String(), last.Handle)
	require.NotNil(t, last.Value)
	assert.Equal(t, 100, *last.Value)
	assert.Equal(t, 1, report.Steps[len(report.Steps)-2].Moved)
}

func TestReplay_UnexpectedError(t *testing.T) {
	tr, err := ParseTrace(strings.NewReader(`
steps:
  - {op: acquire, as: a}
  - {op: release, ref: a}
  - {op: release, ref: a}
`))
	require.NoError(t, err)

	report, err := Replay(tr, 32, false, "run")
	require.ErrorIs(t, err, errExpectation)
	require.ErrorIs(t, err, pool.ErrNotActive)
	require.Len(t, report.Steps, 3)
}

func TestReplay_MissingExpectedError(t *testing.T) {
	tr, err := ParseTrace(strings.NewReader(`
steps:
  - {op: acquire, as: a, expect_error: true}
`))
	require.NoError(t, err)

	_, err = Replay(tr, 32, false, "run")
	require.ErrorIs(t, err, errExpectation)
}

func TestReplay_UnboundRef(t *testing.T) {
	tr, err := ParseTrace(strings.NewReader("steps:\n  - {op: get, ref: nope}\n"))
	require.NoError(t, err)

	_, err = Replay(tr, 32, false, "run")
	require.ErrorIs(t, err, errUnboundRef)
}

func TestParseTrace_Errors(t *testing.T) {
	_, err := ParseTrace(strings.NewReader("steps:\n  - {op: explode}\n"))
	require.ErrorIs(t, err, errUnknownOp)

	_, err = ParseTrace(strings.NewReader("steps:\n  - {op: emit, bogus: 1}\n"))
	require.Error(t, err, "unknown fields are rejected")
}
