// Package component stores engine components in a slot pool and publishes
// their lifecycle through signals.
//
// A Manager is what scene, asset and UI subsystems build on: Create and
// Destroy map onto pool Acquire and Release, and observers subscribe to the
// Created, Destroyed, Relocated and Cleared signals instead of polling.
// Compact shrinks the pool and announces the resulting ID changes on
// Relocated so observers holding IDs can remap them.
package component

import (
	"errors"
	"fmt"

	"github.com/joshuapare/enginekit/pool"
	"github.com/joshuapare/enginekit/signal"
)

// ErrNotFound indicates an ID that does not name a live component.
var ErrNotFound = errors.New("component: not found")

// ID identifies a component within its Manager.
type ID = pool.Handle

// Event is delivered by Created and Destroyed. Item is valid only for the
// duration of the callback.
type Event[T any] struct {
	ID   ID
	Item *T
}

// Manager owns components of type T built from arguments of type A.
type Manager[T, A any] struct {
	items      *pool.Pool[T, A]
	destroying map[ID]struct{} // IDs whose Destroyed emit is running

	Created   *signal.Signal[Event[T]]
	Destroyed *signal.Signal[Event[T]]
	Relocated *signal.Signal[[]pool.Relocation]
	Cleared   *signal.Signal[int] // number of components dropped
}

// NewManager creates a manager whose pool uses segments of capacity slots.
// All four signals draw handles from one counter, so a handle identifies a
// subscription across the whole manager.
func NewManager[T, A any](capacity int, construct func(A) T, opts ...pool.Option[T, A]) *Manager[T, A] {
	ids := signal.NewCounter()
	return &Manager[T, A]{
		items:      pool.New(capacity, construct, opts...),
		destroying: make(map[ID]struct{}),
		Created:    signal.New[Event[T]](signal.WithCounter(ids)),
		Destroyed:  signal.New[Event[T]](signal.WithCounter(ids)),
		Relocated:  signal.New[[]pool.Relocation](signal.WithCounter(ids)),
		Cleared:    signal.New[int](signal.WithCounter(ids)),
	}
}

// Create builds a component from args and emits Created.
func (m *Manager[T, A]) Create(args A) ID {
	id := m.items.Acquire(args)
	m.Created.Emit(Event[T]{ID: id, Item: m.items.MustGet(id)})
	return id
}

// Destroy emits Destroyed while the component is still readable, then releases
// it. Destroying an unknown or already destroyed ID returns ErrNotFound, as
// does destroying an ID from inside its own Destroyed callbacks.
func (m *Manager[T, A]) Destroy(id ID) error {
	if _, busy := m.destroying[id]; busy {
		return fmt.Errorf("%w: %s is being destroyed", ErrNotFound, id)
	}
	item, err := m.items.Get(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	m.emitDestroyed(id, item)
	if err := m.items.Release(id); err != nil {
		// An observer cleared the manager.
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return nil
}

func (m *Manager[T, A]) emitDestroyed(id ID, item *T) {
	m.destroying[id] = struct{}{}
	defer delete(m.destroying, id)
	m.Destroyed.Emit(Event[T]{ID: id, Item: item})
}

// Get returns the component for id.
func (m *Manager[T, A]) Get(id ID) (*T, error) {
	item, err := m.items.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return item, nil
}

// Len returns the number of live components.
func (m *Manager[T, A]) Len() int { return m.items.Count() }

// Each visits live components in storage order until fn returns false.
func (m *Manager[T, A]) Each(fn func(id ID, item *T) bool) { m.items.Each(fn) }

// Clear drops every component without emitting Destroyed and emits Cleared
// with the number dropped.
func (m *Manager[T, A]) Clear() {
	n := m.items.Count()
	m.items.Reset()
	m.Cleared.Emit(n)
}

// Compact releases storage held by fully empty segments. IDs of components in
// later segments change; the changes are returned and emitted on Relocated.
func (m *Manager[T, A]) Compact() []pool.Relocation {
	moved := m.items.Shrink()
	if len(moved) > 0 {
		m.Relocated.Emit(moved)
	}
	return moved
}

// Stats returns the underlying pool's counters and segment count.
func (m *Manager[T, A]) Stats() (pool.Stats, int) {
	return m.items.Stats(), m.items.SegmentCount()
}

// Remap returns the ID that id became after the given relocations, or id
// itself when it did not move.
func Remap(id ID, moved []pool.Relocation) ID {
	for _, r := range moved {
		if r.Old == id {
			return r.New
		}
	}
	return id
}
