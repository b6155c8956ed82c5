package ordered

import (
	"CourseForge/internal/app_errors"
)

// Collection keeps a sequence of elements with a stable identity and a
// contiguous zero-based order index. Every operation returns a new
// Collection; the receiver is never mutated, so callers can compare
// before/after snapshots.
type Collection[T any, ID comparable] struct {
	items    []T
	identity func(T) ID
	renumber func(T, int) T
}

// New builds a collection over the given elements. Order indices are
// normalized immediately, whatever the inputs carried.
func New[T any, ID comparable](identity func(T) ID, renumber func(T, int) T, items ...T) Collection[T, ID] {
	c := Collection[T, ID]{
		items:    make([]T, len(items)),
		identity: identity,
		renumber: renumber,
	}
	for i, it := range items {
		c.items[i] = renumber(it, i)
	}
	return c
}

func (c Collection[T, ID]) Len() int {
	return len(c.items)
}

// Items returns a copy of the underlying sequence.
func (c Collection[T, ID]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c Collection[T, ID]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(c.items) {
		return zero, app_errors.ErrOutOfRange
	}
	return c.items[i], nil
}

func (c Collection[T, ID]) IndexOf(id ID) (int, bool) {
	for i, it := range c.items {
		if c.identity(it) == id {
			return i, true
		}
	}
	return 0, false
}

// InsertAt places el at position and renumbers everything from position on.
func (c Collection[T, ID]) InsertAt(el T, position int) (Collection[T, ID], error) {
	if position < 0 || position > len(c.items) {
		return c, app_errors.ErrOutOfRange
	}
	items := make([]T, 0, len(c.items)+1)
	items = append(items, c.items[:position]...)
	items = append(items, el)
	items = append(items, c.items[position:]...)
	return c.rebuild(items, position), nil
}

// Append puts el at the end of the sequence.
func (c Collection[T, ID]) Append(el T) Collection[T, ID] {
	next, _ := c.InsertAt(el, len(c.items))
	return next
}

// RemoveByID removes the identified element, renumbers the remainder and
// returns the removed element.
func (c Collection[T, ID]) RemoveByID(id ID) (Collection[T, ID], T, error) {
	var zero T
	pos, ok := c.IndexOf(id)
	if !ok {
		return c, zero, app_errors.ErrNotFound
	}
	removed := c.items[pos]
	items := make([]T, 0, len(c.items)-1)
	items = append(items, c.items[:pos]...)
	items = append(items, c.items[pos+1:]...)
	return c.rebuild(items, pos), removed, nil
}

// MoveWithin extracts the element at from and reinserts it at to. Moving an
// element onto its own position returns the collection unchanged.
func (c Collection[T, ID]) MoveWithin(from, to int) (Collection[T, ID], error) {
	if from < 0 || from >= len(c.items) || to < 0 || to >= len(c.items) {
		return c, app_errors.ErrOutOfRange
	}
	if from == to {
		return c, nil
	}
	items := make([]T, len(c.items))
	copy(items, c.items)
	el := items[from]
	items = append(items[:from], items[from+1:]...)
	rest := make([]T, 0, len(items)+1)
	rest = append(rest, items[:to]...)
	rest = append(rest, el)
	rest = append(rest, items[to:]...)
	lo := from
	if to < lo {
		lo = to
	}
	return c.rebuild(rest, lo), nil
}

// rebuild renumbers items starting at lo; indices below lo are untouched.
func (c Collection[T, ID]) rebuild(items []T, lo int) Collection[T, ID] {
	for i := lo; i < len(items); i++ {
		items[i] = c.renumber(items[i], i)
	}
	return Collection[T, ID]{items: items, identity: c.identity, renumber: c.renumber}
}
