package signal

// disconnector is the handle-level API a Connection needs from its signal.
type disconnector interface {
	Disconnect(h Handle) bool
	Connected(h Handle) bool
}

// Connection owns one subscription on one signal.
type Connection struct {
	sig    disconnector
	handle Handle
}

// Bind connects fn and returns a Connection owning the subscription.
func (s *Signal[A]) Bind(fn func(A)) *Connection {
	return &Connection{sig: s, handle: s.Connect(fn)}
}

// BindOnce connects fn as a one-shot subscription and returns its Connection.
func (s *Signal[A]) BindOnce(fn func(A)) *Connection {
	return &Connection{sig: s, handle: s.ConnectOnce(fn)}
}

// Handle returns the subscription handle, or 0 after Disconnect.
func (c *Connection) Handle() Handle { return c.handle }

// Connected reports whether the subscription is still live. A one-shot
// subscription reports false once it has fired.
func (c *Connection) Connected() bool {
	return c.handle != 0 && c.sig.Connected(c.handle)
}

// Disconnect removes the subscription. It returns true only for the call that
// actually removed it.
func (c *Connection) Disconnect() bool {
	if c.handle == 0 {
		return false
	}
	ok := c.sig.Disconnect(c.handle)
	c.handle = 0
	return ok
}

// Group collects connections, possibly across signals of different types, so
// they can be torn down together. The zero value is ready to use.
type Group struct {
	conns []*Connection
}

// Add appends connections to the group.
func (g *Group) Add(conns ...*Connection) {
	g.conns = append(g.conns, conns...)
}

// Len returns the number of connections held.
func (g *Group) Len() int { return len(g.conns) }

// DisconnectAll disconnects every connection in the group, empties it, and
// returns how many subscriptions were actually removed.
func (g *Group) DisconnectAll() int {
	n := 0
	for _, c := range g.conns {
		if c.Disconnect() {
			n++
		}
	}
	clear(g.conns)
	g.conns = g.conns[:0]
	return n
}
