// Package pool provides a segmented slot allocator that hands out objects of a
// fixed type by stable, reusable handle.
//
// # Overview
//
// A Pool owns an append-only sequence of fixed-capacity segments. Every object
// lives in a slot inside one segment, and a slot never moves once it has been
// constructed: growth appends a new segment instead of reallocating existing
// storage. This lets engine subsystems keep pointers and handles to pooled
// objects across any number of later acquisitions.
//
// # Handles
//
// A Handle is a 32-bit value packing the segment index into the high 16 bits
// and the slot index into the low 16 bits:
//
//	handle = (segment << 16) | slot
//
// Handles are identities of storage positions, not of objects. Releasing a
// slot and acquiring again may return the same handle for a logically
// different object, so callers must drop handles once they release them.
//
// # Operations
//
//   - Acquire(args): pop the free chain head and reset the payload in place,
//     or append a new slot (growing by one segment when the last is full)
//   - Release(h): deactivate the slot and push it onto the free chain head
//   - Get(h): resolve a handle to a payload pointer after bounds, identity and
//     liveness checks
//   - Reset(): deactivate every slot and relink the free chain in storage order
//   - Shrink(): drop segments with no active slots and renumber the rest
//
// Acquire and Release are O(1). Reset and Shrink are O(total slots).
//
// # Reuse Order
//
// The free chain is LIFO: the most recently released slot is the next one
// handed out by Acquire. After Reset or Shrink the chain is rebuilt in storage
// order (segment-major, slot-minor).
//
// # Payload Lifecycle
//
// A payload is constructed once, when its slot is first appended. Later
// acquisitions of the same slot reset it in place through the configured reset
// function; the default reset overwrites the payload with a freshly
// constructed value. Release and Reset never destroy payloads. Payload types
// that own external resources should install a release hook:
//
//	p := pool.New(64, newMesh,
//	    pool.WithReset(func(m *Mesh, spec MeshSpec) { m.Rebuild(spec) }),
//	    pool.WithReleaseHook(func(m *Mesh) { m.FreeBuffers() }),
//	)
//
// # Shrink Invalidates Handles
//
// Shrink is the one operation that relocates slots: removing an empty segment
// renumbers every segment after it, so handles into surviving segments change.
// Shrink returns the list of relocations for active slots so owners can remap
// their references; everything else must treat all handles as invalid after
// the call.
//
// # Thread Safety
//
// Pool instances are not thread-safe. A constructor or reset function must not
// Acquire from the pool it is being called by.
//
// # Debug Logging
//
// Segment growth, Reset and Shrink are logged at debug level through the
// configured slog.Logger. Setting ENGINEKIT_LOG_POOL in the environment routes
// pools without an explicit logger to stderr.
package pool
