package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View reads entities through a struct of component pointers, for example
//
//	struct {
//		ecs.EntityId
//		*Transform
//		Coin *Coin `ecs:"optional"`
//	}
//
// Pointer fields name the components an entity must carry. A field tagged
// `ecs:"optional"` is nil when the component is missing. A field of type
// EntityId receives the id of the entity being visited.
type View[T any] struct {
	storage *Storage
	fields  []viewField
	idField int
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// NewView creates a view over storage. T must be a struct of component
// pointers; it panics otherwise.
func NewView[T any](storage *Storage) *View[T] {
	v := &View[T]{}
	v.bind(storage)
	return v
}

func (v *View[T]) bind(storage *Storage) {
	st := reflect.TypeFor[T]()
	if st.Kind() != reflect.Struct {
		panic("ecs: view type must be a struct, got " + st.String())
	}

	v.storage = storage
	v.fields = v.fields[:0]
	v.idField = -1

	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.Type == entityIdType {
			v.idField = int(f.Offset)
			continue
		}
		if f.Type.Kind() != reflect.Pointer {
			panic("ecs: view field " + f.Name + " must be a component pointer or EntityId")
		}

		optional := false
		switch tag := f.Tag.Get("ecs"); tag {
		case "":
		case "optional":
			optional = !f.Anonymous
		default:
			panic("ecs: unknown ecs tag \"" + tag + "\" on field " + f.Name)
		}

		v.fields = append(v.fields, viewField{
			typ:      f.Type.Elem(),
			offset:   f.Offset,
			optional: optional,
		})
	}
}

// matches reports whether a has every required component of the view.
func (v *View[T]) matches(a *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !a.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columnsFor resolves view fields to archetype columns; -1 marks a missing
// optional component.
func (v *View[T]) columnsFor(a *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		col, ok := a.byType[f.typ]
		if !ok {
			col = -1
		}
		cols[i] = col
	}
	return cols
}

func (v *View[T]) fill(out *T, a *Archetype, slot uint32, cols []int) bool {
	base := unsafe.Pointer(out)
	for i, f := range v.fields {
		dst := (*unsafe.Pointer)(unsafe.Add(base, f.offset))
		if cols[i] < 0 {
			if !f.optional {
				return false
			}
			*dst = nil
			continue
		}
		c := a.columns[cols[i]].Get(int(slot))
		if c == nil {
			return false
		}
		*dst = reflect.ValueOf(c).UnsafePointer()
	}
	if v.idField >= 0 {
		*(*EntityId)(unsafe.Add(base, v.idField)) = NewEntityId(a.id, slot)
	}
	return true
}

// Fill populates out for id. It returns false if the entity is dead or lacks a
// required component.
func (v *View[T]) Fill(id EntityId, out *T) bool {
	a, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !a.alive(id.Index()) || !v.matches(a) {
		return false
	}
	return v.fill(out, a, id.Index(), v.columnsFor(a))
}

// Get is Fill returning a fresh value, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var out T
	if !v.Fill(id, &out) {
		return nil
	}
	return &out
}

// GetRef resolves ref and returns its view, or nil if the ref is stale.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) iterArchetype(a *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(a.columns) == 0 {
			return
		}
		cols := v.columnsFor(a)
		var out T
		for slot := range a.columns[0].Slots() {
			if !v.fill(&out, a, uint32(slot), cols) {
				continue
			}
			if !yield(NewEntityId(a.id, uint32(slot)), out) {
				return
			}
		}
	}
}

// Iter walks every matching entity, archetypes in creation order and slots in
// ascending order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, a := range v.storage.order {
			if !v.matches(a) {
				continue
			}
			for id, item := range v.iterArchetype(a) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values is Iter without the ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}
