package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/enginekit/cmd/enginectl/logger"
	"github.com/joshuapare/enginekit/pool"
	"github.com/joshuapare/enginekit/signal"
)

// Trace is a recorded sequence of pool and signal operations.
//
//	capacity: 32
//	steps:
//	  - {op: acquire, value: 7, as: a}
//	  - {op: connect, as: logger}
//	  - {op: emit, value: 1}
//	  - {op: release, ref: a}
//	  - {op: get, ref: a, expect_error: true}
type Trace struct {
	Capacity int    `yaml:"capacity"`
	Steps    []Step `yaml:"steps"`
}

// Step is one operation. Ref names a handle bound by an earlier step's As.
type Step struct {
	Op          string `yaml:"op"`
	Value       int    `yaml:"value,omitempty"`
	As          string `yaml:"as,omitempty"`
	Ref         string `yaml:"ref,omitempty"`
	ExpectError bool   `yaml:"expect_error,omitempty"`
}

// Trace operations.
const (
	opAcquire     = "acquire"
	opRelease     = "release"
	opGet         = "get"
	opReset       = "reset"
	opShrink      = "shrink"
	opConnect     = "connect"
	opConnectOnce = "connect_once"
	opDisconnect  = "disconnect"
	opEmit        = "emit"
	opClear       = "clear"
)

var (
	errUnknownOp   = errors.New("unknown op")
	errUnboundRef  = errors.New("unbound ref")
	errExpectation = errors.New("expectation failed")
)

// ParseTrace decodes a YAML trace.
func ParseTrace(r io.Reader) (*Trace, error) {
	var t Trace
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to parse trace: %w", err)
	}
	for i, s := range t.Steps {
		if !knownOp(s.Op) {
			return nil, fmt.Errorf("step %d: %w %q", i, errUnknownOp, s.Op)
		}
	}
	return &t, nil
}

func knownOp(op string) bool {
	switch op {
	case opAcquire, opRelease, opGet, opReset, opShrink,
		opConnect, opConnectOnce, opDisconnect, opEmit, opClear:
		return true
	}
	return false
}

// StepResult is the outcome of one replayed step.
type StepResult struct {
	Index  int      `json:"index"`
	Op     string   `json:"op"`
	Handle string   `json:"handle,omitempty"`
	Value  *int     `json:"value,omitempty"`
	Fired  []string `json:"fired,omitempty"`
	Moved  int      `json:"moved,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// ReplayReport summarizes a replay.
type ReplayReport struct {
	RunID         string       `json:"run_id"`
	Steps         []StepResult `json:"steps"`
	Count         int          `json:"count"`
	Segments      int          `json:"segments"`
	Subscriptions int          `json:"subscriptions"`
	Stats         pool.Stats   `json:"stats"`
}

// replayer executes a trace against an int pool and an int signal.
type replayer struct {
	pool     *pool.Pool[int, int]
	sig      *signal.Signal[int]
	handles  map[string]pool.Handle
	conns    map[string]signal.Handle
	fired    []string
	validate bool
}

func newReplayer(capacity int, validate bool) *replayer {
	return &replayer{
		pool:     pool.New(capacity, func(v int) int { return v }, pool.WithLogger[int, int](logger.L)),
		sig:      signal.New[int](),
		handles:  make(map[string]pool.Handle),
		conns:    make(map[string]signal.Handle),
		validate: validate,
	}
}

// Replay runs every step of t. It stops at the first step whose error does not
// match its expect_error flag, or whose pool invariants fail with validate set.
func Replay(t *Trace, capacity int, validate bool, runID string) (*ReplayReport, error) {
	if t.Capacity > 0 {
		capacity = t.Capacity
	}
	r := newReplayer(capacity, validate)
	report := &ReplayReport{RunID: runID}

	for i, step := range t.Steps {
		res, err := r.step(step)
		res.Index = i
		res.Op = step.Op
		if err != nil {
			res.Error = err.Error()
		}
		report.Steps = append(report.Steps, res)
		logger.Debug("replay step", "index", i, "op", step.Op, "handle", res.Handle, "error", res.Error)

		if (err != nil) != step.ExpectError {
			if err == nil {
				return report, fmt.Errorf("step %d (%s): %w: expected an error", i, step.Op, errExpectation)
			}
			return report, fmt.Errorf("step %d (%s): %w: %w", i, step.Op, errExpectation, err)
		}
		if r.validate {
			if verr := r.pool.Validate(); verr != nil {
				return report, fmt.Errorf("step %d (%s): %w", i, step.Op, verr)
			}
		}
	}

	report.Count = r.pool.Count()
	report.Segments = r.pool.SegmentCount()
	report.Subscriptions = r.sig.Size()
	report.Stats = r.pool.Stats()
	return report, nil
}

func (r *replayer) step(s Step) (StepResult, error) {
	var res StepResult

	switch s.Op {
	case opAcquire:
		h := r.pool.Acquire(s.Value)
		r.bind(s.As, h)
		res.Handle = h.String()

	case opRelease, opGet:
		h, err := r.poolRef(s.Ref)
		if err != nil {
			return res, err
		}
		res.Handle = h.String()
		if s.Op == opRelease {
			return res, r.pool.Release(h)
		}
		v, err := r.pool.Get(h)
		if err != nil {
			return res, err
		}
		val := *v
		res.Value = &val

	case opReset:
		r.pool.Reset()

	case opShrink:
		moved := r.pool.Shrink()
		res.Moved = len(moved)
		for name, h := range r.handles {
			for _, m := range moved {
				if m.Old == h {
					r.handles[name] = m.New
					break
				}
			}
		}

	case opConnect, opConnectOnce:
		name := s.As
		if name == "" {
			name = fmt.Sprintf("sub%d", len(r.conns)+1)
		}
		cb := func(v int) { r.fired = append(r.fired, fmt.Sprintf("%s(%d)", name, v)) }
		var h signal.Handle
		if s.Op == opConnectOnce {
			h = r.sig.ConnectOnce(cb)
		} else {
			h = r.sig.Connect(cb)
		}
		r.conns[name] = h
		res.Handle = fmt.Sprintf("sub#%d", h)

	case opDisconnect:
		h, ok := r.conns[s.Ref]
		if !ok {
			return res, fmt.Errorf("%w %q", errUnboundRef, s.Ref)
		}
		res.Handle = fmt.Sprintf("sub#%d", h)
		if !r.sig.Disconnect(h) {
			return res, fmt.Errorf("subscription %q not connected", s.Ref)
		}

	case opEmit:
		r.fired = r.fired[:0]
		r.sig.Emit(s.Value)
		res.Fired = append([]string(nil), r.fired...)

	case opClear:
		r.sig.Clear()

	default:
		return res, fmt.Errorf("%w %q", errUnknownOp, s.Op)
	}
	return res, nil
}

func (r *replayer) bind(name string, h pool.Handle) {
	if name != "" {
		r.handles[name] = h
	}
}

func (r *replayer) poolRef(name string) (pool.Handle, error) {
	h, ok := r.handles[name]
	if !ok {
		return 0, fmt.Errorf("%w %q", errUnboundRef, name)
	}
	return h, nil
}

// describeSteps renders a one-line summary per step for text output.
func describeSteps(steps []StepResult) string {
	var b strings.Builder
	for _, s := range steps {
		fmt.Fprintf(&b, "  %3d %-13s", s.Index, s.Op)
		if s.Handle != "" {
			fmt.Fprintf(&b, " %s", s.Handle)
		}
		if s.Value != nil {
			fmt.Fprintf(&b, " value=%d", *s.Value)
		}
		if len(s.Fired) > 0 {
			fmt.Fprintf(&b, " fired=[%s]", strings.Join(s.Fired, " "))
		}
		if s.Moved > 0 {
			fmt.Fprintf(&b, " moved=%d", s.Moved)
		}
		if s.Error != "" {
			fmt.Fprintf(&b, " error=%q", s.Error)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
