package query

import (
	"sync"

	"github.com/google/uuid"
)

// Cell is an externally settable value container independent of the result
// cache, for state that is not fetched. The initial value is immutable: Reset
// always restores it, re-invoking a producer-based initial so it may yield a
// fresh value on every reset.
type Cell[T any] struct {
	mu      sync.Mutex
	value   T
	initial func() T
}

// NewCell creates a cell seeded with a fixed initial value.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value:   initial,
		initial: func() T { return initial },
	}
}

// NewCellFunc creates a cell whose initial value comes from a zero-argument
// producer, invoked once now and again on every Reset.
func NewCellFunc[T any](initial func() T) *Cell[T] {
	return &Cell[T]{
		value:   initial(),
		initial: initial,
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set replaces the current value.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	c.value = value
	c.mu.Unlock()
}

// Reset restores the original initial value and returns it.
func (c *Cell[T]) Reset() T {
	fresh := c.initial()
	c.mu.Lock()
	c.value = fresh
	c.mu.Unlock()
	return fresh
}

// Atom captures a read-only snapshot of the current value, tagged with a
// unique identity token so two atoms never compare as the same even when
// their captured values are equal.
func (c *Cell[T]) Atom() Atom[T] {
	return Atom[T]{
		id:    uuid.NewString(),
		value: c.Get(),
	}
}

// Atom is a read-only capture of a cell's value at a point in time. It is a
// snapshot, not a live reference: later changes to the origin cell are not
// observed.
type Atom[T any] struct {
	id    string
	value T
}

// ID returns the atom's identity token.
func (a Atom[T]) ID() string {
	return a.id
}

// Value returns the captured value.
func (a Atom[T]) Value() T {
	return a.value
}

// FromAtom creates a new independent cell seeded from the atom's captured
// value. The seed is one-time: external changes to the original cell are not
// observed unless a new atom is taken and subscribed again.
func FromAtom[T any](a Atom[T]) *Cell[T] {
	return NewCell(a.Value())
}
