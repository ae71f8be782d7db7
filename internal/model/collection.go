package model

import "sort"

// ProjectLookup resolves a project reference (id or name) against the loaded
// projects. It is a read-only capability; collections never own it.
type ProjectLookup interface {
	LookupProject(ref string) (*Project, bool)
}

// Collection is an ordered sequence of shared entities. Operations return
// new collections that never alias the receiver's backing array, while the
// entities themselves are shared.
type Collection[T any] struct {
	items  []T
	lookup ProjectLookup
}

// Projects is an ordered project list.
type Projects = Collection[*Project]

// Tasks is an ordered task list.
type Tasks = Collection[*Task]

// NewCollection copies items into a new collection bound to lookup, which
// may be nil.
func NewCollection[T any](items []T, lookup ProjectLookup) Collection[T] {
	dup := make([]T, len(items))
	copy(dup, items)
	return Collection[T]{items: dup, lookup: lookup}
}

// Len returns the number of entities.
func (c Collection[T]) Len() int { return len(c.items) }

// At returns the entity at position i.
func (c Collection[T]) At(i int) T { return c.items[i] }

// Items returns a copy of the entity slice.
func (c Collection[T]) Items() []T {
	dup := make([]T, len(c.items))
	copy(dup, c.items)
	return dup
}

// Lookup returns the bound project lookup, or nil.
func (c Collection[T]) Lookup() ProjectLookup { return c.lookup }

// With returns a new collection of items sharing the receiver's lookup.
func (c Collection[T]) With(items []T) Collection[T] {
	return NewCollection(items, c.lookup)
}

// Filter returns the entities for which keep returns true.
func (c Collection[T]) Filter(keep func(T) bool) Collection[T] {
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return Collection[T]{items: out, lookup: c.lookup}
}

// SortStable returns a stably sorted copy ordered by less.
func (c Collection[T]) SortStable(less func(a, b T) bool) Collection[T] {
	out := c.Items()
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return Collection[T]{items: out, lookup: c.lookup}
}

// Each calls fn for every entity in order, stopping at the first error.
func (c Collection[T]) Each(fn func(int, T) error) error {
	for i, item := range c.items {
		if err := fn(i, item); err != nil {
			return err
		}
	}
	return nil
}

// Map returns a new collection of fn applied to each entity.
func Map[T, U any](c Collection[T], fn func(T) U) Collection[U] {
	out := make([]U, len(c.items))
	for i, item := range c.items {
		out[i] = fn(item)
	}
	return Collection[U]{items: out, lookup: c.lookup}
}
