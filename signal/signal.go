package signal

type subscription[A any] struct {
	handle     Handle
	fn         func(A)
	generation uint64
	valid      bool
	once       bool
}

// Signal broadcasts values of type A to connected callbacks. The zero value is
// ready to use.
type Signal[A any] struct {
	subs       []subscription[A]
	free       []int // recycled indices into subs
	generation uint64
	live       int
	epoch      uint64 // bumped by Clear; a running Emit stops when it changes
	counter    *Counter
}

// New returns a signal configured with opts.
func New[A any](opts ...Option) *Signal[A] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Signal[A]{counter: o.counter}
}

// Connect subscribes fn and returns its handle.
func (s *Signal[A]) Connect(fn func(A)) Handle {
	return s.connect(fn, false)
}

// ConnectOnce subscribes fn for a single invocation. The subscription is
// removed just before fn runs, so inside fn Size and Connected already
// exclude it and a nested Emit cannot invoke it again.
func (s *Signal[A]) ConnectOnce(fn func(A)) Handle {
	return s.connect(fn, true)
}

func (s *Signal[A]) connect(fn func(A), once bool) Handle {
	if fn == nil {
		panic("signal: nil callback")
	}
	if s.counter == nil {
		s.counter = NewCounter()
	}

	s.generation++
	sub := subscription[A]{
		handle:     s.counter.Next(),
		fn:         fn,
		generation: s.generation,
		valid:      true,
		once:       once,
	}

	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		s.subs[idx] = sub
	} else {
		s.subs = append(s.subs, sub)
	}
	s.live++
	return sub.handle
}

// Disconnect removes the subscription for h. It returns false when h is zero,
// unknown or already disconnected.
func (s *Signal[A]) Disconnect(h Handle) bool {
	if h == 0 {
		return false
	}
	for i := range s.subs {
		if s.subs[i].valid && s.subs[i].handle == h {
			s.remove(i)
			return true
		}
	}
	return false
}

// Connected reports whether h refers to a live subscription.
func (s *Signal[A]) Connected(h Handle) bool {
	if h == 0 {
		return false
	}
	for i := range s.subs {
		if s.subs[i].valid && s.subs[i].handle == h {
			return true
		}
	}
	return false
}

func (s *Signal[A]) remove(i int) {
	s.subs[i].valid = false
	s.subs[i].fn = nil
	s.free = append(s.free, i)
	s.live--
}

// Emit invokes every subscription that was connected before the call, most
// recently connected first. Subscriptions added by callbacks during the pass
// are skipped; subscriptions removed during the pass are not invoked once
// removed.
func (s *Signal[A]) Emit(args A) {
	gen := s.generation
	epoch := s.epoch

	for i := len(s.subs) - 1; i >= 0; i-- {
		if s.epoch != epoch {
			return
		}
		if i >= len(s.subs) {
			continue
		}
		sub := s.subs[i]
		if !sub.valid || sub.generation > gen {
			continue
		}
		if sub.once {
			s.remove(i)
		}
		sub.fn(args)
	}
}

// Clear removes all subscriptions and resets generation and free-index state.
// Handles issued before Clear are never reissued. An Emit in progress stops
// after the current callback returns.
func (s *Signal[A]) Clear() {
	clear(s.subs)
	s.subs = s.subs[:0]
	s.free = s.free[:0]
	s.generation = 0
	s.live = 0
	s.epoch++
}

// Size returns the number of live subscriptions.
func (s *Signal[A]) Size() int { return s.live }

// Empty reports whether the signal has no live subscriptions.
func (s *Signal[A]) Empty() bool { return s.live == 0 }
