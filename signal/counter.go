package signal

// Handle identifies a subscription. The zero Handle means no subscription.
type Handle uint64

// Counter issues subscription handles. Handles start at 1 and increase by one
// per call; a counter never returns the same handle twice.
type Counter struct {
	last Handle
}

// NewCounter returns a counter whose first handle is 1.
func NewCounter() *Counter { return &Counter{} }

// Next returns a new handle.
func (c *Counter) Next() Handle {
	c.last++
	return c.last
}

// Last returns the most recently issued handle, or 0 if none.
func (c *Counter) Last() Handle { return c.last }

// Option configures a Signal.
type Option func(*options)

type options struct {
	counter *Counter
}

// WithCounter makes the signal draw handles from c instead of a private
// counter. Signals sharing c never hand out the same handle.
func WithCounter(c *Counter) Option {
	return func(o *options) { o.counter = c }
}
