package pool

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joshuapare/enginekit/internal/bounds"
)

// Runtime debug flag for pool logging - controlled by ENGINEKIT_LOG_POOL env var.
var logPool = os.Getenv("ENGINEKIT_LOG_POOL") != ""

const (
	// MinCapacity is the smallest segment capacity; smaller requests are raised to it.
	MinCapacity = 32

	// MaxCapacity is the largest segment capacity that fits the 16-bit slot index.
	MaxCapacity = 0xFFFF

	// DefaultCapacity is a reasonable segment capacity for component storage.
	DefaultCapacity = 256
)

// Resetter is implemented by payload pointers that can reinitialize themselves
// in place from acquire arguments.
type Resetter[A any] interface {
	Reset(args A)
}

// Option configures a Pool.
type Option[T, A any] func(*Pool[T, A])

// WithReset sets the function used to reinitialize a reused payload in place.
// Without it, reuse overwrites the payload with construct(args). If reset
// panics the slot stays free.
func WithReset[T, A any](reset func(item *T, args A)) Option[T, A] {
	return func(p *Pool[T, A]) { p.reset = reset }
}

// WithReleaseHook registers fn to run on a payload when its slot is released,
// either by Release or by Reset.
func WithReleaseHook[T, A any](fn func(item *T)) Option[T, A] {
	return func(p *Pool[T, A]) { p.onRelease = fn }
}

// WithLogger routes the pool's debug logging to l.
func WithLogger[T, A any](l *slog.Logger) Option[T, A] {
	return func(p *Pool[T, A]) {
		if l != nil {
			p.logger = l
		}
	}
}

// Relocation records a slot whose handle changed during Shrink.
type Relocation struct {
	Old Handle
	New Handle
}

// Stats holds lifetime operation counters for a pool.
type Stats struct {
	Acquires      uint64 `json:"acquires"`       // Acquire calls
	Releases      uint64 `json:"releases"`       // successful Release calls
	Reuses        uint64 `json:"reuses"`         // acquisitions served from the free chain
	Grows         uint64 `json:"grows"`          // segments appended
	Resets        uint64 `json:"resets"`         // Reset calls
	Shrinks       uint64 `json:"shrinks"`        // Shrink calls that removed at least one segment
	SegmentsFreed uint64 `json:"segments_freed"` // segments removed by Shrink
}

// Pool is a segmented slot allocator for payloads of type T constructed from
// arguments of type A.
type Pool[T, A any] struct {
	store store[T]
	free  Handle // head of the free chain
	count int

	construct func(A) T
	reset     func(*T, A)
	onRelease func(*T)

	logger *slog.Logger
	stats  Stats
}

// New creates a pool whose segments hold capacity slots each. capacity is
// clamped into [MinCapacity, MaxCapacity]. construct builds the payload of a
// newly appended slot and must not be nil.
func New[T, A any](capacity int, construct func(A) T, opts ...Option[T, A]) *Pool[T, A] {
	if construct == nil {
		panic("pool: nil constructor")
	}

	p := &Pool[T, A]{
		store: store[T]{
			capacity:    bounds.Clamp(capacity, MinCapacity, MaxCapacity),
			maxSegments: MaxSegments,
		},
		free:      NoHandle,
		construct: construct,
		logger:    slog.New(slog.DiscardHandler),
	}
	if logPool {
		p.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.reset == nil {
		p.reset = func(item *T, args A) { *item = construct(args) }
	}
	return p
}

// NewResettable creates a pool for payloads whose pointer type implements
// Resetter. New slots start from the zero value and are passed through Reset,
// as are reused ones.
func NewResettable[T, A any, PT interface {
	*T
	Resetter[A]
}](capacity int, opts ...Option[T, A]) *Pool[T, A] {
	construct := func(args A) T {
		var v T
		PT(&v).Reset(args)
		return v
	}
	reset := WithReset(func(item *T, args A) { PT(item).Reset(args) })
	return New(capacity, construct, append([]Option[T, A]{reset}, opts...)...)
}

// Acquire returns the handle of an active slot initialized from args.
//
// A released slot is reused first (most recently released wins) and its
// payload is reset in place. Otherwise a new slot is appended to the last
// segment, and a new segment is appended when that one is full. Handles and
// payload pointers issued earlier stay valid.
//
// Acquire panics with ErrExhausted when MaxSegments segments are full.
func (p *Pool[T, A]) Acquire(args A) Handle {
	p.stats.Acquires++

	if p.free != NoHandle {
		h := p.free
		s, seg := p.store.at(h)
		// Unlink only after reset returns; a panicking reset leaves h on the chain.
		p.reset(&s.value, args)
		p.free = s.next
		s.next = NoHandle
		s.active = true
		seg.live++
		p.count++
		p.stats.Reuses++
		return h
	}

	seg, si := p.store.tail()
	if seg == nil || seg.full() {
		var err error
		seg, si, err = p.store.grow()
		if err != nil {
			panic(err)
		}
		p.stats.Grows++
		p.logger.Debug("pool: segment appended",
			"segment", si, "capacity", p.store.capacity, "live", p.count)
	}

	value := p.construct(args)
	idx := len(seg.slots)
	seg.slots = append(seg.slots, slot[T]{
		value:  value,
		handle: MakeHandle(si, idx),
		next:   NoHandle,
		active: true,
	})
	seg.live++
	p.count++
	return seg.slots[idx].handle
}

// Release deactivates the slot for h and makes it the next slot Acquire reuses.
// The payload is left as is apart from the release hook. Releasing a slot that
// is not active returns ErrNotActive.
func (p *Pool[T, A]) Release(h Handle) error {
	s, seg, err := p.store.lookup(h)
	if err != nil {
		return err
	}
	if !s.active {
		return fmt.Errorf("%w: %s", ErrNotActive, h)
	}

	if p.onRelease != nil {
		p.onRelease(&s.value)
	}
	s.active = false
	s.next = p.free
	p.free = h
	seg.live--
	p.count--
	p.stats.Releases++
	return nil
}

// Get returns a pointer to the payload for h. The pointer stays valid until h
// is released or the pool is Reset or Shrunk.
func (p *Pool[T, A]) Get(h Handle) (*T, error) {
	s, _, err := p.store.lookup(h)
	if err != nil {
		return nil, err
	}
	if !s.active {
		return nil, fmt.Errorf("%w: %s", ErrNotActive, h)
	}
	return &s.value, nil
}

// MustGet is like Get but panics on an invalid handle.
func (p *Pool[T, A]) MustGet(h Handle) *T {
	v, err := p.Get(h)
	if err != nil {
		panic(err)
	}
	return v
}

// Reset deactivates every slot and relinks the free chain in storage order, so
// the next Acquire returns the first slot of the first segment. Payloads are
// not reconstructed; the release hook runs for each slot that was active.
func (p *Pool[T, A]) Reset() {
	for _, seg := range p.store.segments {
		for i := range seg.slots {
			s := &seg.slots[i]
			if s.active && p.onRelease != nil {
				p.onRelease(&s.value)
			}
			s.active = false
		}
		seg.live = 0
	}
	p.free = p.store.relink()
	p.count = 0
	p.stats.Resets++
	p.logger.Debug("pool: reset", "segments", len(p.store.segments))
}

// Shrink removes every segment that holds no active slot and renumbers the
// remaining segments. It returns one Relocation per active slot whose handle
// changed.
//
// Shrink invalidates handles: any handle into a segment after a removed one
// refers to a different slot afterwards. Callers must not hold handles across
// Shrink other than through the returned relocations.
func (p *Pool[T, A]) Shrink() []Relocation {
	kept := make([]*segment[T], 0, len(p.store.segments))
	for _, seg := range p.store.segments {
		if seg.live > 0 {
			kept = append(kept, seg)
		}
	}
	removed := len(p.store.segments) - len(kept)
	if removed == 0 {
		return nil
	}

	var moved []Relocation
	for si, seg := range kept {
		for i := range seg.slots {
			s := &seg.slots[i]
			nh := MakeHandle(si, i)
			if s.handle == nh {
				continue
			}
			if s.active {
				moved = append(moved, Relocation{Old: s.handle, New: nh})
			}
			s.handle = nh
		}
	}

	p.store.segments = kept
	p.free = p.store.relink()
	p.stats.Shrinks++
	p.stats.SegmentsFreed += uint64(removed)
	p.logger.Debug("pool: shrink",
		"removed", removed, "segments", len(kept), "relocated", len(moved))
	return moved
}

// Each calls fn for every active slot in storage order until fn returns false.
// fn must not Acquire, Release, Reset or Shrink.
func (p *Pool[T, A]) Each(fn func(h Handle, item *T) bool) {
	for _, seg := range p.store.segments {
		if seg.live == 0 {
			continue
		}
		for i := range seg.slots {
			s := &seg.slots[i]
			if s.active && !fn(s.handle, &s.value) {
				return
			}
		}
	}
}

// Count returns the number of active slots.
func (p *Pool[T, A]) Count() int { return p.count }

// SegmentCount returns the number of segments in the pool.
func (p *Pool[T, A]) SegmentCount() int { return len(p.store.segments) }

// Capacity returns the per-segment slot capacity after clamping.
func (p *Pool[T, A]) Capacity() int { return p.store.capacity }

// Reserved returns the number of slots the pool has memory for.
func (p *Pool[T, A]) Reserved() int { return p.store.reserved() }

// Stats returns a copy of the pool's operation counters.
func (p *Pool[T, A]) Stats() Stats { return p.stats }
