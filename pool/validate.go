package pool

import "fmt"

// Validate checks the pool's structural invariants:
//   - every constructed slot's handle matches its position
//   - per-segment and pool-wide live counts match the active flags
//   - the free chain visits every inactive slot exactly once and terminates
//
// It is O(total slots) and intended for tests and diagnostics.
func (p *Pool[T, A]) Validate() error {
	active, inactive := 0, 0
	for si, seg := range p.store.segments {
		if cap(seg.slots) != p.store.capacity {
			return fmt.Errorf("%w: segment %d capacity %d, want %d",
				ErrCorrupt, si, cap(seg.slots), p.store.capacity)
		}
		live := 0
		for i := range seg.slots {
			s := &seg.slots[i]
			if want := MakeHandle(si, i); s.handle != want {
				return fmt.Errorf("%w: slot at %s holds handle %s", ErrCorrupt, want, s.handle)
			}
			if s.active {
				live++
				if s.next != NoHandle {
					return fmt.Errorf("%w: active slot %s has free link %s", ErrCorrupt, s.handle, s.next)
				}
			}
		}
		if live != seg.live {
			return fmt.Errorf("%w: segment %d live count %d, counted %d", ErrCorrupt, si, seg.live, live)
		}
		active += live
		inactive += len(seg.slots) - live
	}

	if n := p.store.constructed(); active+inactive != n {
		return fmt.Errorf("%w: %d constructed slots, counted %d", ErrCorrupt, n, active+inactive)
	}
	if active != p.count {
		return fmt.Errorf("%w: count %d, counted %d active slots", ErrCorrupt, p.count, active)
	}

	seen := make(map[Handle]struct{}, inactive)
	for h := p.free; h != NoHandle; {
		if len(seen) > inactive {
			return fmt.Errorf("%w: free chain longer than %d inactive slots", ErrCorrupt, inactive)
		}
		s, _, err := p.store.lookup(h)
		if err != nil {
			return fmt.Errorf("%w: free chain entry: %w", ErrCorrupt, err)
		}
		if s.active {
			return fmt.Errorf("%w: active slot %s on free chain", ErrCorrupt, h)
		}
		if _, dup := seen[h]; dup {
			return fmt.Errorf("%w: free chain revisits %s", ErrCorrupt, h)
		}
		seen[h] = struct{}{}
		h = s.next
	}
	if len(seen) != inactive {
		return fmt.Errorf("%w: free chain holds %d of %d inactive slots", ErrCorrupt, len(seen), inactive)
	}
	return nil
}
