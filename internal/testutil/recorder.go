package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"testing"
)

// DefaultSeed is the RNG seed used by randomized tests unless ENGINEKIT_SEED is set.
const DefaultSeed = 42

// Recorder collects labelled calls in the order they happen. It is used to
// assert callback ordering.
//
// Example:
//
//	var rec testutil.Recorder
//	sig.Connect(testutil.Hook[int](&rec, "A"))
//	sig.Emit(1)
//	require.Equal(t, []string{"A"}, rec.Calls())
type Recorder struct {
	calls []string
}

// Record appends label to the call log.
func (r *Recorder) Record(label string) {
	r.calls = append(r.calls, label)
}

// Recordf appends a formatted label to the call log.
func (r *Recorder) Recordf(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// Calls returns a copy of the recorded labels.
func (r *Recorder) Calls() []string {
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int { return len(r.calls) }

// Count returns how many times label was recorded.
func (r *Recorder) Count(label string) int {
	n := 0
	for _, c := range r.calls {
		if c == label {
			n++
		}
	}
	return n
}

// Clear empties the call log.
func (r *Recorder) Clear() { r.calls = r.calls[:0] }

// Hook returns a callback that records label each time it is invoked.
func Hook[A any](r *Recorder, label string) func(A) {
	return func(A) { r.Record(label) }
}

// NewRand returns a deterministic RNG for property tests. The seed comes from
// ENGINEKIT_SEED when set and is logged so failures can be replayed.
func NewRand(tb testing.TB) *rand.Rand {
	tb.Helper()
	seed := int64(DefaultSeed)
	if s := os.Getenv("ENGINEKIT_SEED"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			tb.Fatalf("invalid ENGINEKIT_SEED %q: %v", s, err)
		}
		seed = v
	}
	tb.Logf("rng seed: %d", seed)
	return rand.New(rand.NewSource(seed))
}

// Distinct reports the first duplicate in items, if any.
func Distinct[T comparable](items []T) (dup T, ok bool) {
	seen := make(map[T]struct{}, len(items))
	for _, it := range items {
		if _, exists := seen[it]; exists {
			return it, false
		}
		seen[it] = struct{}{}
	}
	var zero T
	return zero, true
}
