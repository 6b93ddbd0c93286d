package pool

import (
	"fmt"

	"github.com/joshuapare/enginekit/internal/bounds"
)

// slot is one storage cell. handle is the slot's own position and only
// changes when Shrink renumbers segments.
type slot[T any] struct {
	value  T
	handle Handle
	next   Handle // free chain link, NoHandle when active or last
	active bool
}

// segment is a fixed-capacity block of slots. slots is allocated once with
// its final capacity and only ever appended to within it, so &slots[i] is
// stable for the life of the segment.
type segment[T any] struct {
	slots []slot[T]
	live  int
}

func newSegment[T any](capacity int) *segment[T] {
	return &segment[T]{slots: make([]slot[T], 0, capacity)}
}

func (s *segment[T]) full() bool { return len(s.slots) == cap(s.slots) }

// store is the append-only list of segments. Segments are held by pointer so
// growing the list never copies slot memory.
type store[T any] struct {
	segments    []*segment[T]
	capacity    int
	maxSegments int
}

// tail returns the last segment and its index, or (nil, -1) for an empty store.
func (st *store[T]) tail() (*segment[T], int) {
	n := len(st.segments)
	if n == 0 {
		return nil, -1
	}
	return st.segments[n-1], n - 1
}

// grow appends an empty segment.
func (st *store[T]) grow() (*segment[T], int, error) {
	if len(st.segments) >= st.maxSegments {
		return nil, 0, fmt.Errorf("%w: %d segments of %d slots", ErrExhausted, len(st.segments), st.capacity)
	}
	seg := newSegment[T](st.capacity)
	st.segments = append(st.segments, seg)
	return seg, len(st.segments) - 1, nil
}

// lookup resolves h to its slot and segment. Only constructed slots resolve;
// reserved but unused capacity at the tail of a segment does not.
func (st *store[T]) lookup(h Handle) (*slot[T], *segment[T], error) {
	if h == NoHandle {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	si := h.Segment()
	if err := bounds.CheckIndex("segment", si, len(st.segments)); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidHandle, err)
	}
	seg := st.segments[si]
	if err := bounds.CheckIndex("slot", h.Slot(), len(seg.slots)); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidHandle, err)
	}
	s := &seg.slots[h.Slot()]
	if s.handle != h {
		return nil, nil, fmt.Errorf("%w: stale handle %s (slot holds %s)", ErrInvalidHandle, h, s.handle)
	}
	return s, seg, nil
}

// at returns the slot for a handle known to be valid (free chain entries).
func (st *store[T]) at(h Handle) (*slot[T], *segment[T]) {
	seg := st.segments[h.Segment()]
	return &seg.slots[h.Slot()], seg
}

// constructed returns the number of slots that have been appended across all
// segments.
func (st *store[T]) constructed() int {
	n := 0
	for _, seg := range st.segments {
		n += len(seg.slots)
	}
	return n
}

// reserved returns segments * capacity, the slot count the store has memory for.
func (st *store[T]) reserved() int {
	n, ok := bounds.MulOverflowSafe(len(st.segments), st.capacity)
	if !ok {
		return 0
	}
	return n
}

// relink rebuilds the free chain from every inactive slot in storage order
// and returns its head.
func (st *store[T]) relink() Handle {
	head := NoHandle
	for si := len(st.segments) - 1; si >= 0; si-- {
		seg := st.segments[si]
		for i := len(seg.slots) - 1; i >= 0; i-- {
			s := &seg.slots[i]
			if s.active {
				s.next = NoHandle
				continue
			}
			s.next = head
			head = s.handle
		}
	}
	return head
}
