package ecs

import "iter"

// Query is a View bound to a system. The Scheduler calls Execute right
// before the owning system runs; Iter then walks that snapshot. Matching
// archetypes are cached until new archetypes appear.
type Query[T any] struct {
	view       View[T]
	archetypes []*Archetype
	seen       int
	ids        []EntityId
	items      []T
	executed   bool
}

// NewQuery creates a query over storage. Call Execute before reading it.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.bind(storage)
	return q
}

func (q *Query[T]) bind(storage *Storage) {
	q.view.bind(storage)
	q.archetypes = nil
	q.seen = -1
	q.executed = false
}

// Execute snapshots the matching entities. Component pointers in the snapshot
// stay valid until the storage is compacted.
func (q *Query[T]) Execute() {
	order := q.view.storage.order
	if len(order) != q.seen {
		q.archetypes = q.archetypes[:0]
		for _, a := range order {
			if q.view.matches(a) {
				q.archetypes = append(q.archetypes, a)
			}
		}
		q.seen = len(order)
	}

	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for _, a := range q.archetypes {
		for id, item := range q.view.iterArchetype(a) {
			q.ids = append(q.ids, id)
			q.items = append(q.items, item)
		}
	}
	q.executed = true
}

// Len returns the size of the current snapshot.
func (q *Query[T]) Len() int {
	return len(q.ids)
}

// Iter walks the snapshot built by the last Execute.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.executed {
		panic("ecs: Query.Iter called before Query.Execute")
	}
	return func(yield func(EntityId, T) bool) {
		for i, id := range q.ids {
			if !yield(id, q.items[i]) {
				return
			}
		}
	}
}

// Values walks the snapshot without ids.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.executed {
		panic("ecs: Query.Values called before Query.Execute")
	}
	return func(yield func(T) bool) {
		for _, item := range q.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Get reads a single entity through the query's view, outside the snapshot.
func (q *Query[T]) Get(id EntityId) *T {
	return q.view.Get(id)
}
