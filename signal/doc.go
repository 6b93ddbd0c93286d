// Package signal provides a multi-subscriber callback broadcaster that tolerates
// subscription changes while a broadcast is in progress.
//
// # Overview
//
// A Signal holds an ordered list of subscriptions. Emit invokes every valid
// subscription, most recently connected first. Callbacks may connect,
// disconnect (themselves or others) and emit again on the same signal without
// corrupting the pass that is running.
//
// # Generation Gating
//
// Every Connect increments the signal's generation and stamps the new
// subscription with it. Emit captures the generation once on entry and skips
// subscriptions stamped later, so a subscriber installed by a running callback
// is first invoked by the next Emit:
//
//	sig.Connect(func(e Event) {
//	    sig.Connect(onLater) // not called during this Emit
//	})
//	sig.Emit(e) // runs the first callback only
//	sig.Emit(e) // runs both
//
// # Handles
//
// Connect returns a nonzero Handle that is never reused by the signal, even
// after the subscription's storage slot is recycled. Handle 0 means "no
// subscription". Disconnect is idempotent: unknown, zero and already
// disconnected handles return false.
//
// Handles come from a Counter owned by the signal. Signals that must share one
// handle space can be given a common counter with WithCounter.
//
// # One-shot Subscriptions
//
// ConnectOnce subscribes a callback that is removed the first time it fires.
// The removal happens before the callback runs, so a re-entrant Emit from
// inside it cannot fire it a second time, and Size already excludes it.
//
// # Scoped Connections
//
// Bind and BindOnce wrap a handle in a Connection for owners that tear their
// subscriptions down on close; a Group disconnects many at once:
//
//	var g signal.Group
//	g.Add(doc.Changed.Bind(view.onChange), cfg.Reloaded.Bind(view.onReload))
//	defer g.DisconnectAll()
//
// # Thread Safety
//
// Signals are not thread-safe. Re-entrant use from callbacks on the same
// goroutine is supported; concurrent use is not.
package signal
