package pool

import "fmt"

// Handle identifies a slot by (segment, slot) position.
type Handle uint32

const (
	segmentShift = 16
	slotMask     = 0xFFFF

	// MaxSegments is the number of segments addressable by a Handle.
	MaxSegments = 1 << 16

	// NoHandle terminates the free chain. Slot index 0xFFFF is never issued
	// because MaxCapacity caps indices at 0xFFFE.
	NoHandle Handle = 0xFFFFFFFF
)

// MakeHandle packs a segment and slot index into a Handle.
func MakeHandle(segment, slot int) Handle {
	return Handle(uint32(segment)<<segmentShift | uint32(slot)&slotMask)
}

// Segment returns the segment index encoded in h.
func (h Handle) Segment() int { return int(uint32(h) >> segmentShift) }

// Slot returns the slot index within the segment encoded in h.
func (h Handle) Slot() int { return int(uint32(h) & slotMask) }

func (h Handle) String() string {
	if h == NoHandle {
		return "pool.NoHandle"
	}
	return fmt.Sprintf("%d:%d", h.Segment(), h.Slot())
}
